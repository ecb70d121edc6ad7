// Package keywords turns the three news-item titles of a trend into two
// image search queries: a precision query with quoted phrase anchors and
// a broader recall query.
package keywords

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Config tunes tokenization and query assembly.
type Config struct {
	MinTokenLen    int
	MaxKeywords    int
	MaxPhrases     int
	PhraseMinScore float64
}

// DefaultConfig matches the production query tuning.
func DefaultConfig() Config {
	return Config{
		MinTokenLen:    3,
		MaxKeywords:    8,
		MaxPhrases:     3,
		PhraseMinScore: 0.05,
	}
}

// Queries is the result of building search queries from titles.
type Queries struct {
	Precision  string
	Recall     string
	TopPhrases []ScoredTerm
	TopTokens  []ScoredTerm
}

// ScoredTerm pairs a token or phrase with its score.
type ScoredTerm struct {
	Term  string
	Score float64
}

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "at": {}, "for": {},
	"from": {}, "by": {}, "with": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {}, "being": {}, "as": {}, "that": {},
	"this": {}, "these": {}, "those": {}, "it": {}, "its": {},
	"their": {}, "there": {}, "here": {}, "we": {}, "you": {}, "i": {},
	"they": {}, "them": {}, "our": {}, "your": {},
}

// genericPenaltyWords are connective research words that add nothing to
// an image query.
var genericPenaltyWords = map[string]struct{}{
	"toward": {}, "towards": {}, "however": {}, "nevertheless": {},
	"nonetheless": {}, "thus": {}, "conversely": {}, "therefore": {},
	"whereas": {},
}

var (
	tokenRe     = regexp.MustCompile(`[0-9A-Za-z][0-9A-Za-z_\-]*`)
	junkTokenRe = regexp.MustCompile(`^[_\-]+$`)
)

// Build computes both queries from the given titles.
func Build(titles []string, cfg Config) (*Queries, error) {
	var nonEmpty []string
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, fmt.Errorf("build queries: no titles")
	}

	normalized := make([]string, len(nonEmpty))
	for i, t := range nonEmpty {
		normalized[i] = normalizeText(t)
	}

	docs := tokenizeTitles(normalized, cfg)
	tokenScores := scoreTokens(docs)

	topTokens := rankTerms(tokenScores)
	filtered := topTokens[:0:0]
	for _, ts := range topTokens {
		if len(ts.Term) >= cfg.MinTokenLen {
			filtered = append(filtered, ts)
		}
	}
	if len(filtered) > cfg.MaxKeywords {
		filtered = filtered[:cfg.MaxKeywords]
	}

	phrases := extractPhrases(normalized, cfg)
	topPhrases := phrases
	if len(topPhrases) > cfg.MaxPhrases {
		topPhrases = topPhrases[:cfg.MaxPhrases]
	}

	phraseWords := map[string]struct{}{}
	for _, p := range topPhrases {
		for _, w := range strings.Fields(p.Term) {
			phraseWords[w] = struct{}{}
		}
	}

	// Precision: quoted phrases plus top tokens not already in a phrase.
	var precisionParts []string
	for _, p := range topPhrases {
		precisionParts = append(precisionParts, `"`+p.Term+`"`)
	}
	for _, ts := range filtered {
		if _, in := phraseWords[ts.Term]; !in {
			precisionParts = append(precisionParts, ts.Term)
		}
		if len(precisionParts) >= len(topPhrases)+cfg.MaxKeywords {
			break
		}
	}

	// Recall: phrase words and top tokens merged, deduplicated in order.
	seen := map[string]struct{}{}
	var recallSeq []string
	appendWord := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		recallSeq = append(recallSeq, w)
	}
	for _, p := range topPhrases {
		for _, w := range strings.Fields(p.Term) {
			appendWord(w)
		}
	}
	for _, ts := range filtered {
		appendWord(ts.Term)
	}
	recallMax := cfg.MaxKeywords
	if recallMax < 14 {
		recallMax = 14
	}
	if len(recallSeq) > recallMax {
		recallSeq = recallSeq[:recallMax]
	}

	q := &Queries{
		Precision: strings.Join(precisionParts, "+"),
		Recall:    strings.Join(recallSeq, "+"),
	}
	if len(phrases) > 10 {
		q.TopPhrases = phrases[:10]
	} else {
		q.TopPhrases = phrases
	}
	if len(filtered) > 20 {
		q.TopTokens = filtered[:20]
	} else {
		q.TopTokens = filtered
	}
	return q, nil
}

// normalizeText applies NFKC normalization and strips combining marks so
// accented titles tokenize to plain ASCII words.
func normalizeText(s string) string {
	s = norm.NFKC.String(s)
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

func tokenizeTitles(titles []string, cfg Config) [][]string {
	docs := make([][]string, 0, len(titles))
	for _, t := range titles {
		var toks []string
		for _, raw := range tokenRe.FindAllString(t, -1) {
			tok := strings.ToLower(strings.Trim(raw, "-_"))
			if len(tok) < cfg.MinTokenLen {
				continue
			}
			if junkTokenRe.MatchString(tok) {
				continue
			}
			if _, stop := stopwords[tok]; stop {
				continue
			}
			toks = append(toks, tok)
		}
		docs = append(docs, toks)
	}
	return docs
}

// scoreTokens scores each token as document-frequency ratio plus an
// informativeness bonus, a mild term-frequency bonus, and a penalty for
// generic connective words.
func scoreTokens(docs [][]string) map[string]float64 {
	nDocs := len(docs)
	if nDocs == 0 {
		nDocs = 1
	}
	df := map[string]int{}
	tf := map[string]int{}
	for _, toks := range docs {
		seen := map[string]struct{}{}
		for _, tok := range toks {
			tf[tok]++
			if _, ok := seen[tok]; !ok {
				df[tok]++
				seen[tok] = struct{}{}
			}
		}
	}

	scores := make(map[string]float64, len(df))
	for tok, dfi := range df {
		score := float64(dfi) / float64(nDocs)
		if looksInformative(tok) {
			score += 0.30
		}
		score += math.Min(0.20, 0.02*float64(tf[tok]))
		if _, generic := genericPenaltyWords[tok]; generic {
			score -= 0.30
		}
		scores[tok] = score
	}
	return scores
}

// looksInformative marks tokens that carry signal on their own: digits,
// short all-caps codes, hyphenated compounds, or letter-digit mixes.
func looksInformative(tok string) bool {
	hasDigit := strings.IndexFunc(tok, unicode.IsDigit) >= 0
	if hasDigit {
		return true
	}
	if strings.ContainsAny(tok, "-_") {
		return true
	}
	upper := strings.ToUpper(tok)
	if tok == upper && len(tok) >= 2 && strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
		return true
	}
	return false
}

// extractPhrases ranks 2- and 3-grams of the titles by TF-IDF, keeping
// the max score a phrase achieves across titles.
func extractPhrases(titles []string, cfg Config) []ScoredTerm {
	type docGrams map[string]int
	perDoc := make([]docGrams, 0, len(titles))
	dfGram := map[string]int{}

	for _, t := range titles {
		var words []string
		for _, raw := range tokenRe.FindAllString(t, -1) {
			w := strings.ToLower(raw)
			if len(w) < 2 {
				continue
			}
			if _, stop := stopwords[w]; stop {
				continue
			}
			words = append(words, w)
		}
		grams := docGrams{}
		for n := 2; n <= 3; n++ {
			for i := 0; i+n <= len(words); i++ {
				grams[strings.Join(words[i:i+n], " ")]++
			}
		}
		perDoc = append(perDoc, grams)
		for g := range grams {
			dfGram[g]++
		}
	}

	nDocs := float64(len(titles))
	bestScore := map[string]float64{}
	for _, grams := range perDoc {
		var total int
		for _, c := range grams {
			total += c
		}
		if total == 0 {
			continue
		}
		for g, c := range grams {
			tfv := float64(c) / float64(total)
			idf := math.Log((1+nDocs)/(1+float64(dfGram[g]))) + 1
			if s := tfv * idf; s > bestScore[g] {
				bestScore[g] = s
			}
		}
	}

	var out []ScoredTerm
	for g, s := range bestScore {
		if s < cfg.PhraseMinScore {
			continue
		}
		allGeneric := true
		for _, w := range strings.Fields(g) {
			if _, generic := genericPenaltyWords[w]; !generic {
				allGeneric = false
				break
			}
		}
		if allGeneric {
			continue
		}
		out = append(out, ScoredTerm{Term: g, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// rankTerms sorts a score map descending, ties broken alphabetically.
func rankTerms(scores map[string]float64) []ScoredTerm {
	out := make([]ScoredTerm, 0, len(scores))
	for t, s := range scores {
		out = append(out, ScoredTerm{Term: t, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	return out
}
