package tieta

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"uqbar/acta/prompt"
)

// DefaultChunkWords is the chunk size handed to the LLM scaffolding.
const DefaultChunkWords = 1200

// ChunkPrompt wraps one chapter chunk in the study-notes prompt.
func ChunkPrompt(source, chunk string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "1. Goal: Read the book excerpt below (from %s) and extract the concepts\n", source)
	fmt.Fprintf(&b, "it actually teaches.\n")
	fmt.Fprintf(&b, "\n2. Return the concepts as a list of Major Topic | Subtopic. For example:\n")
	fmt.Fprintf(&b, "  - Statistics | Hidden Markov Models\n")
	fmt.Fprintf(&b, "  - Molecular Biology | Sequence Alignment\n")
	fmt.Fprintf(&b, "\n3. Rules:\n")
	fmt.Fprintf(&b, "  - Only list topics the excerpt explicitly explains, defines, contrasts,\n")
	fmt.Fprintf(&b, "    or derives. Passing mentions do not qualify.\n")
	fmt.Fprintf(&b, "  - Do not invent or generalize concept names absent from the text.\n")
	fmt.Fprintf(&b, "  - Return at most 20 items. Prefer omission over inclusion.\n")
	fmt.Fprintf(&b, "\n4. Excerpt:\n```\n%s\n```\n", chunk)
	fmt.Fprintf(&b, "\n5. Please return the list **only** in a triple-backtick code block.\n")
	return b.String()
}

// Run extracts the first chapter of pdfPath, cleans and chunks it, and
// writes the scaffolded prompts to outPath.
func Run(pdfPath, outPath string, chunkWords int) error {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}

	doc, err := OpenPDF(pdfPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	slice, err := FindFirstChapter(doc, DefaultOptions())
	if err != nil {
		return err
	}
	log.Info("first chapter located",
		"start", slice.Start+1, "end", slice.End, "reason", slice.Reason)

	raw, err := ExtractText(doc, slice)
	if err != nil {
		return err
	}
	chunks := ChunkWords(CleanText(raw), chunkWords)
	if len(chunks) == 0 {
		return fmt.Errorf("tieta: no text extracted from %s", pdfPath)
	}

	var b strings.Builder
	for i, chunk := range chunks {
		body := ChunkPrompt(pdfPath, chunk)
		b.WriteString(prompt.Transcript("BOOK CHAPTER", body, i+1, len(chunks)))
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("tieta: write %s: %w", outPath, err)
	}
	log.Info("prompts written", "path", outPath, "chunks", len(chunks))
	return nil
}
