package prompt

import (
	"strings"
	"testing"

	"uqbar/config"
	"uqbar/types"
)

func TestNarrationListsSources(t *testing.T) {
	trend := &types.Trend{
		Title: "example",
		News: []types.NewsItem{
			{URL: "https://a.example/1"},
			{URL: "https://b.example/2"},
		},
	}

	p := Narration(trend)
	if !strings.Contains(p, "1.1. https://a.example/1") {
		t.Fatalf("missing first source:\n%s", p)
	}
	if !strings.Contains(p, "1.3. (no source)") {
		t.Fatalf("missing placeholder for empty slot:\n%s", p)
	}
	if !strings.Contains(p, "triple-backtick") {
		t.Fatalf("missing return-format instruction")
	}
}

func TestTranscriptBanners(t *testing.T) {
	s := Transcript("TREND", "body text", 2, 13)
	if !strings.HasPrefix(s, strings.Repeat("-", config.BigRulerWidth)) {
		t.Fatalf("transcript must start with the big ruler")
	}
	if !strings.Contains(s, "> TREND PROMPTS [02 of 13]") {
		t.Fatalf("banner missing:\n%s", s)
	}
	if !strings.Contains(s, strings.Repeat("-", config.SmallRulerWidth)) {
		t.Fatalf("small ruler missing")
	}

	current, total, ok := ParseHeader("> TREND PROMPTS [02 of 13]")
	if !ok || current != 2 || total != 13 {
		t.Fatalf("ParseHeader = (%d, %d, %v)", current, total, ok)
	}
	if _, _, ok := ParseHeader("not a banner"); ok {
		t.Fatalf("non-banner line should not parse")
	}
}

func TestExtractCodeBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain block", "intro\n```\nthe payload\n```\noutro", "the payload"},
		{"language tag", "```text\nhello world\n```", "hello world"},
		{"no block", "  just text  ", "just text"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractCodeBlock(c.in); got != c.want {
				t.Fatalf("ExtractCodeBlock = %q; want %q", got, c.want)
			}
		})
	}

	blocks := ExtractCodeBlocks("```\na\n```\nmiddle\n```\nb\n```")
	if len(blocks) != 2 || blocks[0] != "a" || blocks[1] != "b" {
		t.Fatalf("ExtractCodeBlocks = %v", blocks)
	}
}

func TestChunkParagraphs(t *testing.T) {
	text := "first paragraph\nstill first\n\nsecond paragraph\n\n\nthird"
	chunks := ChunkParagraphs(text)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d: %v", len(chunks), chunks)
	}
	if chunks[1] != "second paragraph" {
		t.Fatalf("chunks[1] = %q", chunks[1])
	}
}
