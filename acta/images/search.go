// Package images finds, downloads, normalizes, and deduplicates the
// picture set for each trend.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"uqbar/config"
)

const (
	searchBase = "https://duckduckgo.com/"
	resultsAPI = "https://duckduckgo.com/i.js"
)

var vqdRe = regexp.MustCompile(`vqd=["']?([\d-]+)["']?`)

// Searcher queries the DuckDuckGo image vertical over plain HTTP: one
// request to the HTML page to obtain the vqd session token, then the
// JSON results endpoint.
type Searcher struct {
	http   *http.Client
	region string
}

func NewSearcher() *Searcher {
	return &Searcher{
		http:   &http.Client{Timeout: 30 * time.Second},
		region: "us-en",
	}
}

// Links returns up to max direct image URLs for the query. Queries use
// the precision form first; callers fall back to the recall form when
// nothing comes back.
func (s *Searcher) Links(ctx context.Context, query string, max int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("image search: empty query")
	}

	vqd, err := s.token(ctx, query)
	if err != nil {
		return nil, err
	}

	var links []string
	next := fmt.Sprintf("%s?l=%s&o=json&q=%s&vqd=%s&f=size:Large&p=1",
		resultsAPI, s.region, url.QueryEscape(query), url.QueryEscape(vqd))

	for next != "" && len(links) < max {
		page, cont, err := s.page(ctx, next)
		if err != nil {
			if len(links) > 0 {
				log.Warn("image search page failed, keeping partial results", "err", err)
				break
			}
			return nil, err
		}
		links = append(links, page...)
		if cont == "" {
			break
		}
		next = searchBase + strings.TrimPrefix(cont, "/") + "&vqd=" + url.QueryEscape(vqd)
	}

	links = uniqueStrings(links)
	if len(links) > max {
		links = links[:max]
	}
	return links, nil
}

// token fetches the search page and scrapes the vqd session token the
// results endpoint requires.
func (s *Searcher) token(ctx context.Context, query string) (string, error) {
	u := searchBase + "?q=" + url.QueryEscape(query) + "&iar=images"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", config.DownloadUA)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("image search token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", fmt.Errorf("image search token: %w", err)
	}
	m := vqdRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("image search token: vqd not found (status %d)", resp.StatusCode)
	}
	return string(m[1]), nil
}

func (s *Searcher) page(ctx context.Context, pageURL string) (links []string, next string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", config.DownloadUA)
	req.Header.Set("Referer", searchBase)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image search results: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image search results: status %d", resp.StatusCode)
	}

	var parsed struct {
		Results []struct {
			Image string `json:"image"`
		} `json:"results"`
		Next string `json:"next"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, "", fmt.Errorf("image search results: %w", err)
	}

	for _, r := range parsed.Results {
		if link := normalizeLink(r.Image); link != "" {
			links = append(links, link)
		}
	}
	return links, parsed.Next, nil
}

// normalizeLink unwraps redirect-style result URLs and drops trailing
// query strings that only carry tracking parameters.
func normalizeLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	// The unwrapped target must pass the same checks as a direct link.
	if inner := u.Query().Get("iai"); inner != "" {
		if decoded, err := url.QueryUnescape(inner); err == nil {
			return normalizeLink(decoded)
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return raw
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
