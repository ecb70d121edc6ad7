package trends

import (
	"testing"

	"uqbar/config"
)

func TestParseTraffic(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2M+", 2e6},
		{"1.5M+", 1.5e6},
		{"500K+", 5e5},
		{"1B+", 1e9},
		{"20,000+", 20000},
		{"200", 200},
		{"", config.DefaultVolume},
		{"lots", config.DefaultVolume},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := ParseTraffic(c.in)
			if got != c.want {
				t.Fatalf("ParseTraffic(%q) = %v; want %v", c.in, got, c.want)
			}
		})
	}
}

func TestIsPaywalled(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.nytimes.com/2025/01/01/world/story.html", true},
		{"https://archive.nytimes.com/path", true},
		{"https://www.bbc.com/news/story", false},
		{"https://thetimes.co.uk/article", true},
		{"not a url", false},
		{"", false},
	}

	for _, c := range cases {
		t.Run(c.url, func(t *testing.T) {
			if got := IsPaywalled(c.url); got != c.want {
				t.Fatalf("IsPaywalled(%q) = %v; want %v", c.url, got, c.want)
			}
		})
	}
}

func TestEscapeBareAmps(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"already &amp; escaped", "already &amp; escaped"},
		{"numeric &#39;ok&#39;", "numeric &#39;ok&#39;"},
		{"hex &#x27;", "hex &#x27;"},
		{"trailing &", "trailing &amp;"},
	}

	for _, c := range cases {
		if got := escapeBareAmps(c.in); got != c.want {
			t.Fatalf("escapeBareAmps(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:ht="https://trends.google.com/trending/rss">
<channel>
<title>Daily Search Trends</title>
<item>
<title>eagles & chiefs</title>
<pubDate>Mon, 18 Aug 2025 14:00:00 -0700</pubDate>
<ht:approx_traffic>1M+</ht:approx_traffic>
<ht:picture_source>Example Pics</ht:picture_source>
<ht:news_item>
<ht:news_item_title>Big game recap</ht:news_item_title>
<ht:news_item_url>https://www.nytimes.com/recap</ht:news_item_url>
<ht:news_item_source>NYT</ht:news_item_source>
</ht:news_item>
<ht:news_item>
<ht:news_item_title>Open coverage</ht:news_item_title>
<ht:news_item_url>https://example.com/coverage</ht:news_item_url>
<ht:news_item_source>Example</ht:news_item_source>
</ht:news_item>
</item>
</channel>
</rss>`

func TestParseSampleFeed(t *testing.T) {
	feed, err := parse(sampleFeed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(feed.Items))
	}

	trend := itemToTrend(feed.Items[0])
	if trend.Title != "eagles & chiefs" {
		t.Fatalf("title = %q", trend.Title)
	}
	if trend.Volume != 1e6 {
		t.Fatalf("volume = %v; want 1e6", trend.Volume)
	}
	if trend.PictureSource != "Example Pics" {
		t.Fatalf("picture source = %q", trend.PictureSource)
	}
	if len(trend.News) != 2 {
		t.Fatalf("news count = %d; want 2", len(trend.News))
	}
	if !trend.News[0].Paywall {
		t.Fatalf("expected first news item flagged as paywalled")
	}
	if trend.News[1].Paywall {
		t.Fatalf("second news item should not be paywalled")
	}
	readable := trend.ReadableNews()
	if len(readable) != 1 || readable[0].Source != "Example" {
		t.Fatalf("readable news = %+v", readable)
	}
}

func TestTitleHashStable(t *testing.T) {
	a := titleHash("  Eagles   Chiefs ")
	b := titleHash("eagles chiefs")
	if a != b {
		t.Fatalf("normalized hashes differ: %s vs %s", a, b)
	}
	if a == titleHash("other title") {
		t.Fatalf("distinct titles should not collide")
	}
}
