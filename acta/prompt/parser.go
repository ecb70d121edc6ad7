package prompt

import (
	"regexp"
	"strings"
)

var (
	codeBlockRe = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_-]+\n)?(.*?)```")
	headerRe    = regexp.MustCompile(`^> [A-Z]+ PROMPTS \[(\d+) of (\d+)\]`)
)

// ExtractCodeBlock returns the content of the first triple-backtick block
// in an LLM response, or the whole trimmed response when no block exists.
func ExtractCodeBlock(response string) string {
	if m := codeBlockRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}

// ExtractCodeBlocks returns all triple-backtick block contents in order.
func ExtractCodeBlocks(response string) []string {
	var out []string
	for _, m := range codeBlockRe.FindAllStringSubmatch(response, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// ChunkParagraphs splits text into paragraphs on blank lines, trimming
// each chunk and dropping empties.
func ChunkParagraphs(text string) []string {
	var out []string
	for _, chunk := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

// ParseHeader reads the banner line of a transcript section, returning
// the one-based index and total. ok is false for non-banner lines.
func ParseHeader(line string) (current, total int, ok bool) {
	m := headerRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, 0, false
	}
	current = atoi(m[1])
	total = atoi(m[2])
	return current, total, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
