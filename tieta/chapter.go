package tieta

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChapterSlice is a 0-indexed page range, start inclusive and end
// exclusive, with the heuristic that produced it.
type ChapterSlice struct {
	Start  int
	End    int
	Reason string
}

// Options tune the chapter-finding heuristics.
type Options struct {
	// MaxFrontPages bounds the scan for a contents page or a first
	// chapter heading.
	MaxFrontPages int
	// SearchRadius is how far around a printed page number the real
	// heading is looked for.
	SearchRadius int
	// MaxChapterPages bounds the forward scan for the second chapter.
	MaxChapterPages int
	// ConservativePages is the slice length assumed when no second
	// chapter heading is found.
	ConservativePages int
}

// DefaultOptions match born-digital books of ordinary size.
func DefaultOptions() Options {
	return Options{
		MaxFrontPages:     100,
		SearchRadius:      12,
		MaxChapterPages:   250,
		ConservativePages: 30,
	}
}

var (
	// What a first chapter looks like in headings and contents lines.
	// Many books open with "Introduction" instead of "Chapter 1".
	chapter1Re = regexp.MustCompile(`(?i)\bchapter\s*1\b|\bcap[ií]tulo\s*1\b|\b1\s*[.\-:]\s|\bintroduction\b|\bintrodu[cç][aã]o\b`)
	chapter2Re = regexp.MustCompile(`(?i)\bchapter\s*2\b|\bcap[ií]tulo\s*2\b|\b2\s*[.\-:]\s`)
	tocRe      = regexp.MustCompile(`(?i)\b(contents|table of contents|sum[aá]rio)\b`)
	endNumRe   = regexp.MustCompile(`(\d{1,4})\s*$`)
)

// FindFirstChapter locates the first chapter of a document. It tries a
// contents page first, treating printed page numbers as hints validated
// against nearby headings, and falls back to a plain heading scan.
// Text extraction is heuristic, so the result carries its reason.
func FindFirstChapter(doc Document, opts Options) (ChapterSlice, error) {
	n := doc.PageCount()
	if n == 0 {
		return ChapterSlice{}, fmt.Errorf("tieta: document has no pages")
	}

	if s, ok := sliceFromTOC(doc, n, opts); ok {
		return s, nil
	}

	start := scanForHeading(doc, 0, min(n, opts.MaxFrontPages), chapter1Re)
	reason := "fallback: heading scan"
	if start < 0 {
		// Some books start the first chapter on the first page.
		start = 0
		reason = "fallback: assumed document start"
	}
	end := scanForHeading(doc, start+1, min(n, start+opts.MaxChapterPages), chapter2Re)
	if end < 0 {
		end = min(start+opts.ConservativePages, n)
		reason += " / conservative slice"
	}
	return ChapterSlice{Start: start, End: end, Reason: reason}, nil
}

// sliceFromTOC reads a contents page for "chapter 1 ... N" lines and
// validates the printed numbers against the pages around them.
func sliceFromTOC(doc Document, n int, opts Options) (ChapterSlice, bool) {
	tocPage := scanForHeading(doc, 0, min(n, opts.MaxFrontPages), tocRe)
	if tocPage < 0 {
		return ChapterSlice{}, false
	}
	text, err := doc.PageText(tocPage)
	if err != nil {
		return ChapterSlice{}, false
	}

	ch1Num := printedPageFor(text, chapter1Re)
	if ch1Num <= 0 {
		return ChapterSlice{}, false
	}
	// Chapter content always follows the contents page, so never match
	// the contents page itself.
	start := headingNearPrintedPage(doc, n, ch1Num, chapter1Re, opts.SearchRadius, tocPage+1)
	if start < 0 {
		return ChapterSlice{}, false
	}

	if ch2Num := printedPageFor(text, chapter2Re); ch2Num > 0 {
		if end := headingNearPrintedPage(doc, n, ch2Num, chapter2Re, opts.SearchRadius, tocPage+1); end > start {
			return ChapterSlice{Start: start, End: end, Reason: "toc: validated chapter1 -> chapter2"}, true
		}
	}
	if end := scanForHeading(doc, start+1, min(n, start+opts.MaxChapterPages), chapter2Re); end > start {
		return ChapterSlice{Start: start, End: end, Reason: "toc: chapter1 -> chapter2 heading scan"}, true
	}
	return ChapterSlice{
		Start:  start,
		End:    min(start+opts.ConservativePages, n),
		Reason: "toc: chapter1 -> conservative slice",
	}, true
}

// printedPageFor finds the first contents line matching re that ends
// with a page number, and returns that number.
func printedPageFor(tocText string, re *regexp.Regexp) int {
	for _, line := range strings.Split(tocText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !re.MatchString(line) {
			continue
		}
		m := endNumRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return num
	}
	return 0
}

// headingNearPrintedPage maps a printed page number onto a page index.
// Printed numbers ignore front matter, so the naive printed-1 guess is
// checked within a window around it.
func headingNearPrintedPage(doc Document, n, printed int, re *regexp.Regexp, radius, minStart int) int {
	guess := printed - 1
	if guess < 0 {
		guess = 0
	}
	if guess > n-1 {
		guess = n - 1
	}
	lo := max(minStart, guess-radius)
	hi := min(n, guess+radius+1)
	return scanForHeading(doc, lo, hi, re)
}

// scanForHeading returns the first page index in [start, end) whose
// text matches re, or -1.
func scanForHeading(doc Document, start, end int, re *regexp.Regexp) int {
	for i := max(0, start); i < end; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			return i
		}
	}
	return -1
}
