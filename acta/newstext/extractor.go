// Package newstext pulls full article text for the news items attached to
// each trend, feeding the narration prompt with real source material.
package newstext

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	readability "github.com/go-shiori/go-readability"

	"uqbar/types"
)

const (
	workerCount      = 5
	extractorTimeout = 30 * time.Second
	maxCharsPerItem  = 8000
)

// ExtractAll fetches readable text for every non-paywalled news item of
// every trend using a worker pool. Failures are logged and skipped; a
// trend with no extractable sources keeps an empty NewsText.
func ExtractAll(items []*types.Trend) {
	var wg sync.WaitGroup
	trendChan := make(chan *types.Trend, len(items))

	for i := 0; i < workerCount; i++ {
		go func(workerID int) {
			for trend := range trendChan {
				extractTrend(workerID, trend)
				wg.Done()
			}
		}(i)
	}

	for _, trend := range items {
		wg.Add(1)
		trendChan <- trend
	}

	wg.Wait()
	close(trendChan)
}

func extractTrend(workerID int, trend *types.Trend) {
	var parts []string
	for _, news := range trend.ReadableNews() {
		text, err := extractOne(news.URL)
		if err != nil {
			log.Warn("extraction failed", "worker", workerID, "url", news.URL, "err", err)
			continue
		}
		parts = append(parts, "["+news.Source+"] "+text)
	}

	trend.NewsText = strings.Join(parts, "\n\n")
	if trend.NewsText == "" {
		log.Warn("no extractable sources", "trend", trend.Title)
		return
	}
	log.Info("extracted news text", "trend", trend.Title, "sources", len(parts))
}

func extractOne(url string) (string, error) {
	article, err := readability.FromURL(url, extractorTimeout)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) > maxCharsPerItem {
		text = text[:maxCharsPerItem]
	}
	return text, nil
}
