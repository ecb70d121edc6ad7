// Package trends fetches and parses the Google Trends RSS feed into
// trend records with their related news items.
package trends

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	gfext "github.com/mmcdole/gofeed/extensions"

	"uqbar/config"
	"uqbar/types"
)

// htNS is the extension namespace Google Trends uses for trend metadata.
const htNS = "ht"

// entityRe matches a well-formed XML entity starting at position 0.
var entityRe = regexp.MustCompile(`^&(?:[a-zA-Z]+|#[0-9]+|#x[0-9a-fA-F]+);`)

// rssEnvelopeRe isolates the <rss>..</rss> envelope from any surrounding
// noise (the endpoint occasionally serves wrapped documents).
var rssEnvelopeRe = regexp.MustCompile(`(?s)<rss.*</rss>`)

// Fetch downloads and parses the trending feed, creates per-trend asset
// directories under workDir, and stamps the list's datetimes from the
// first item's publication date.
func Fetch(ctx context.Context, feedURL, workDir string) (*types.TrendList, error) {
	raw, err := download(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch trends feed: %w", err)
	}

	feed, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("trends feed %s returned no items", feedURL)
	}

	tl := &types.TrendList{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}

	for i, item := range feed.Items {
		if i == 0 && item.PublishedParsed != nil {
			tl.SetDatetimes(*item.PublishedParsed)
		}

		trend := itemToTrend(item)
		if err := makeTrendDirs(workDir, i, trend); err != nil {
			return nil, err
		}
		tl.Items = append(tl.Items, trend)
	}

	log.Info("fetched trends", "count", len(tl.Items), "run_id", tl.RunID)
	return tl, nil
}

func download(ctx context.Context, feedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", config.DownloadUA)

	client := &http.Client{Timeout: config.FetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func parse(raw string) (*gofeed.Feed, error) {
	if m := rssEnvelopeRe.FindString(raw); m != "" {
		raw = m
	}
	raw = escapeBareAmps(raw)
	return gofeed.NewParser().ParseString(raw)
}

// escapeBareAmps escapes every '&' that does not begin an XML entity.
// The trends endpoint is known to serve unescaped ampersands in titles.
func escapeBareAmps(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			b.WriteByte(s[i])
			continue
		}
		if loc := entityRe.FindStringIndex(s[i:]); loc != nil {
			b.WriteString(s[i : i+loc[1]])
			i += loc[1] - 1
			continue
		}
		b.WriteString("&amp;")
	}
	return b.String()
}

func itemToTrend(item *gofeed.Item) *types.Trend {
	trend := &types.Trend{
		Title:  strings.TrimSpace(item.Title),
		Volume: config.DefaultVolume,
	}

	ext, ok := item.Extensions[htNS]
	if !ok {
		return trend
	}

	if v := extValue(ext, "approx_traffic"); v != "" {
		trend.Volume = ParseTraffic(v)
	}
	if v := extValue(ext, "picture_source"); v != "" {
		trend.PictureSource = v
	}

	for _, news := range ext["news_item"] {
		n := types.NewsItem{
			Title:  childValue(news.Children, "news_item_title"),
			URL:    childValue(news.Children, "news_item_url"),
			Source: childValue(news.Children, "news_item_source"),
		}
		n.Paywall = IsPaywalled(n.URL)
		trend.AddNews(n)
	}

	return trend
}

func makeTrendDirs(workDir string, index int, trend *types.Trend) error {
	base := filepath.Join(workDir, fmt.Sprintf("%s%02d", config.TrendDirPrefix, index))
	trend.ContentDir = base
	trend.PicsDir = filepath.Join(base, config.PicsSubdir)
	trend.VidsDir = filepath.Join(base, config.VidsSubdir)
	trend.AudioDir = filepath.Join(base, config.AudioSubdir)

	for _, dir := range []string{trend.PicsDir, trend.VidsDir, trend.AudioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create trend dir %s: %w", dir, err)
		}
	}
	return nil
}

func extValue(ext map[string][]gfext.Extension, name string) string {
	for _, e := range ext[name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

func childValue(children map[string][]gfext.Extension, name string) string {
	for _, e := range children[name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}
