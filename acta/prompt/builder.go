// Package prompt builds the LLM prompts for narration text, image search
// queries, and mood paragraphs, and parses the responses back out of
// prompt transcript files.
package prompt

import (
	"fmt"
	"strings"

	"uqbar/config"
	"uqbar/types"
)

func bigRuler() string   { return strings.Repeat("-", config.BigRulerWidth) }
func smallRuler() string { return strings.Repeat("-", config.SmallRulerWidth) }

// header renders the "> TREND PROMPTS [NN of NN]" banner line.
func header(kind string, current, total int) string {
	return fmt.Sprintf("> %s PROMPTS [%02d of %02d]", kind, current, total)
}

// Narration returns the narration (TTS) prompt for a trend: a long-form
// news-anchor script synthesized from the trend's news sources.
func Narration(trend *types.Trend) string {
	var urls []string
	for _, n := range trend.News {
		urls = append(urls, n.URL)
	}
	for len(urls) < types.MaxNewsItems {
		urls = append(urls, "(no source)")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "1. Goal: Write a Continuous Prose as a Professional Calm News-Media Narrator,\n")
	fmt.Fprintf(&b, "targeting a General Audience; synthesizing these three news sources, which report\n")
	fmt.Fprintf(&b, "the same facts with minor framing differences:\n")
	for i, u := range urls {
		fmt.Fprintf(&b, "    1.%d. %s\n", i+1, u)
	}
	fmt.Fprintf(&b, "\n2. Length of text: ~%d words (plus or minus 20 percent).\n", config.TTSPromptWords)
	fmt.Fprintf(&b, "\n3. Style: Predominantly in a news-style impersonal voice, hook the reader with\n")
	fmt.Fprintf(&b, "mystery in the first 2 to 3 sentences. Develop the news arc while maintaining mystery.\n")
	fmt.Fprintf(&b, "Release the mystery once the reader's full attention is secured. Fill the remainder\n")
	fmt.Fprintf(&b, "of the report with background and established facts.\n")
	fmt.Fprintf(&b, "\n4. Optimize the textual flow for neural TTS. Keep sentences short to medium in length.\n")
	if trend.NewsText != "" {
		fmt.Fprintf(&b, "\n5. Source material extracted from the articles:\n```\n%s\n```\n", trend.NewsText)
		fmt.Fprintf(&b, "\n6. Please return the text in a triple-backtick code block.")
	} else {
		fmt.Fprintf(&b, "\n5. Please return the text in a triple-backtick code block.")
	}
	return b.String()
}

// ImageQuery returns the prompt asking for a short image search query
// derived from a news piece.
func ImageQuery(newsPiece string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "1. Goal: Give me the most representative ~%d words (plus or minus 5 words),\n", config.ImagePromptWords)
	fmt.Fprintf(&b, "for a 'Google-like' Image Query; synthesizing the following news piece:\n")
	fmt.Fprintf(&b, "```\n%s\n```\n", newsPiece)
	fmt.Fprintf(&b, "\n2. Give me the words separated by spaces.\n")
	fmt.Fprintf(&b, "\n3. Please return the words **only** in a triple-backtick code block.\n")
	return b.String()
}

// Mood returns the prompt asking for a short mood paragraph suited for a
// downstream emotion classifier.
func Mood(newsPiece string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "1. Goal: Write a short paragraph with Continuous Prose as a Professional\n")
	fmt.Fprintf(&b, "Calm News-Media Narrator, targeting a 'Mood Predictor'; based on the\n")
	fmt.Fprintf(&b, "following news piece:\n")
	fmt.Fprintf(&b, "```\n%s\n```\n", newsPiece)
	fmt.Fprintf(&b, "\n2. Length of paragraph: ~%d words (plus or minus 30 percent).\n", config.MoodPromptWords)
	fmt.Fprintf(&b, "\n3. Style: Optimize the textual flow and key words for a neural mood\n")
	fmt.Fprintf(&b, "predictor. Use key words that express the mood of the news piece.\n")
	fmt.Fprintf(&b, "\n4. Avoid wording that may confound the predictor, such as double negatives.\n")
	fmt.Fprintf(&b, "\n5. Please return the text **only** in a triple-backtick code block.\n")
	return b.String()
}

// EmotionScores returns the prompt asking for a dense emotion-score JSON
// object over the given labels for a mood paragraph.
func EmotionScores(paragraph string, labels []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "1. Goal: Score the following paragraph against each emotion label.\n")
	fmt.Fprintf(&b, "Labels: %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "\n2. Paragraph:\n```\n%s\n```\n", paragraph)
	fmt.Fprintf(&b, "\n3. Return a single JSON object mapping every label to a score in [0, 1],\n")
	fmt.Fprintf(&b, "inside a triple-backtick code block, with no other text.\n")
	return b.String()
}

// Transcript wraps a per-trend prompt in the banner layout used when the
// whole batch is written to a single prompt file for manual use.
func Transcript(kind, body string, current, total int) string {
	var b strings.Builder
	b.WriteString(bigRuler())
	b.WriteString("\n\n")
	b.WriteString(header(kind, current, total))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(smallRuler())
	b.WriteString("\n\n")
	if current < total {
		b.WriteString("\n")
	}
	return b.String()
}
