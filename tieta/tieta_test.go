package tieta

import (
	"strings"
	"testing"
)

// fakeDoc serves pages from a string slice.
type fakeDoc struct {
	pages []string
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }
func (d *fakeDoc) PageText(i int) (string, error) {
	return d.pages[i], nil
}

func TestFindFirstChapterFromTOC(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"A Book About Things\nby Someone",
		"Contents\nChapter 1 The Beginning ........ 3\nChapter 2 The Middle ........ 5",
		"Chapter 1\nThe Beginning\nIt was a dark and stormy night.",
		"More of the first chapter.",
		"Chapter 2\nThe Middle\nThings happened.",
	}}

	s, err := FindFirstChapter(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("FindFirstChapter: %v", err)
	}
	if s.Start != 2 || s.End != 4 {
		t.Fatalf("slice = [%d, %d); want [2, 4)", s.Start, s.End)
	}
	if !strings.HasPrefix(s.Reason, "toc:") {
		t.Fatalf("reason = %q; want a toc strategy", s.Reason)
	}
}

func TestFindFirstChapterHeadingScan(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"Cover",
		"Chapter 1\nOpening text without any front matter.",
		"Middle of the chapter.",
		"Chapter 2\nNext part.",
	}}

	s, err := FindFirstChapter(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("FindFirstChapter: %v", err)
	}
	if s.Start != 1 || s.End != 3 {
		t.Fatalf("slice = [%d, %d); want [1, 3)", s.Start, s.End)
	}
}

func TestFindFirstChapterConservativeFallback(t *testing.T) {
	pages := make([]string, 50)
	for i := range pages {
		pages[i] = "Body text on an unmarked page without headings of any kind."
	}
	doc := &fakeDoc{pages: pages}

	opts := DefaultOptions()
	s, err := FindFirstChapter(doc, opts)
	if err != nil {
		t.Fatalf("FindFirstChapter: %v", err)
	}
	if s.Start != 0 {
		t.Fatalf("start = %d; want 0", s.Start)
	}
	if s.End != opts.ConservativePages {
		t.Fatalf("end = %d; want %d", s.End, opts.ConservativePages)
	}
}

func TestFindFirstChapterEmptyDocument(t *testing.T) {
	if _, err := FindFirstChapter(&fakeDoc{}, DefaultOptions()); err == nil {
		t.Fatalf("empty document must error")
	}
}

func TestCleanText(t *testing.T) {
	in := "An exam-\nple   of broken    text.\n\n\n\n\nNext paragraph.  "
	want := "An example of broken text.\n\nNext paragraph."
	if got := CleanText(in); got != want {
		t.Fatalf("CleanText = %q; want %q", got, want)
	}
}

func TestChunkWordsPrefersParagraphs(t *testing.T) {
	text := strings.Join([]string{
		strings.Repeat("alpha ", 6),
		strings.Repeat("beta ", 6),
		strings.Repeat("gamma ", 6),
	}, "\n\n")

	chunks := ChunkWords(text, 12)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d; want 2:\n%q", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "alpha") || !strings.Contains(chunks[0], "beta") {
		t.Fatalf("first chunk must merge two paragraphs: %q", chunks[0])
	}
	if !strings.Contains(chunks[1], "gamma") {
		t.Fatalf("second chunk = %q", chunks[1])
	}
}

func TestChunkWordsHardSplitsLongParagraph(t *testing.T) {
	text := strings.Repeat("word ", 25)
	chunks := ChunkWords(text, 10)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d; want 3", len(chunks))
	}
	for i, c := range chunks[:2] {
		if got := len(strings.Fields(c)); got != 10 {
			t.Fatalf("chunk %d has %d words; want 10", i, got)
		}
	}
}

func TestChunkPromptCarriesChunk(t *testing.T) {
	p := ChunkPrompt("book.pdf", "The excerpt body.")
	if !strings.Contains(p, "book.pdf") || !strings.Contains(p, "The excerpt body.") {
		t.Fatalf("prompt missing source or chunk:\n%s", p)
	}
	if !strings.Contains(p, "Major Topic | Subtopic") {
		t.Fatalf("prompt missing format instructions:\n%s", p)
	}
}
