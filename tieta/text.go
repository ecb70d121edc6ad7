package tieta

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// minCharsPerPage is the low-text threshold below which a page is
// flagged as likely scanned or layout-heavy.
const minCharsPerPage = 30

// lowTextRatioWarn triggers a document-level warning when this share
// of extracted pages came back near-empty.
const lowTextRatioWarn = 0.30

var (
	hyphenBreakRe = regexp.MustCompile(`(\pL)-\n(\pL)`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// ExtractText concatenates the text of the pages in slice. Near-empty
// pages are logged; extraction proceeds regardless.
func ExtractText(doc Document, slice ChapterSlice) (string, error) {
	if slice.End <= slice.Start {
		return "", fmt.Errorf("tieta: invalid slice [%d, %d)", slice.Start, slice.End)
	}

	var b strings.Builder
	lowText := 0
	total := 0
	for i := slice.Start; i < slice.End && i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			log.Warn("page extraction failed", "page", i+1, "err", err)
			continue
		}
		total++
		if len(strings.TrimSpace(text)) < minCharsPerPage {
			lowText++
			log.Warn("page has very little text", "page", i+1)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	if total > 0 && float64(lowText)/float64(total) >= lowTextRatioWarn {
		log.Warn("many pages extracted little text; the PDF may be scanned",
			"low_text", lowText, "pages", total)
	}
	return b.String(), nil
}

// CleanText normalizes extracted PDF text: rejoins words hyphenated
// across line breaks, collapses space runs, and limits blank runs to
// one empty line.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = hyphenBreakRe.ReplaceAllString(s, "$1$2")
	s = spaceRunRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// ChunkWords splits text into chunks of at most maxWords words,
// preferring paragraph boundaries. A single oversized paragraph is
// hard-split.
func ChunkWords(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = 1
	}
	var chunks []string
	var current []string
	count := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = nil
			count = 0
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		words := strings.Fields(para)

		if len(words) > maxWords {
			flush()
			for start := 0; start < len(words); start += maxWords {
				end := min(start+maxWords, len(words))
				chunks = append(chunks, strings.Join(words[start:end], " "))
			}
			continue
		}
		if count+len(words) > maxWords {
			flush()
		}
		current = append(current, para)
		count += len(words)
	}
	flush()
	return chunks
}
