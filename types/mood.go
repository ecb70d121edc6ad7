package types

import "math"

// MoodLabels is the fixed 28-label emotion taxonomy, in canonical order.
var MoodLabels = []string{
	"admiration", "amusement", "anger", "annoyance", "approval",
	"caring", "confusion", "curiosity", "desire", "disappointment",
	"disapproval", "disgust", "embarrassment", "excitement", "fear",
	"gratitude", "grief", "joy", "love", "nervousness",
	"optimism", "pride", "realization", "relief", "remorse",
	"sadness", "surprise", "neutral",
}

// MoodLevel buckets a score into a coarse intensity band.
type MoodLevel string

const (
	MoodVeryHigh MoodLevel = "VERY_HIGH"
	MoodHigh     MoodLevel = "HIGH"
	MoodAverage  MoodLevel = "AVERAGE"
	MoodLow      MoodLevel = "LOW"
	MoodVeryLow  MoodLevel = "VERY_LOW"
)

// LevelOf buckets a single score.
func LevelOf(score float64) MoodLevel {
	switch {
	case score >= 0.60:
		return MoodVeryHigh
	case score >= 0.35:
		return MoodHigh
	case score >= 0.20:
		return MoodAverage
	case score >= 0.10:
		return MoodLow
	default:
		return MoodVeryLow
	}
}

// MoodItem holds one score per label in MoodLabels order.
type MoodItem struct {
	Scores []float64 `json:"scores"`
}

// NewMoodItem builds a MoodItem from a label->score map; missing labels
// score zero, unknown labels are ignored.
func NewMoodItem(byLabel map[string]float64) *MoodItem {
	scores := make([]float64, len(MoodLabels))
	for i, label := range MoodLabels {
		scores[i] = byLabel[label]
	}
	return &MoodItem{Scores: scores}
}

// Get returns the score for a label, zero if the label is unknown.
func (m *MoodItem) Get(label string) float64 {
	for i, l := range MoodLabels {
		if l == label {
			return m.Scores[i]
		}
	}
	return 0
}

// Map returns the scores as a label->score map.
func (m *MoodItem) Map() map[string]float64 {
	out := make(map[string]float64, len(MoodLabels))
	for i, label := range MoodLabels {
		out[label] = m.Scores[i]
	}
	return out
}

// Softmax normalizes the scores in place so they sum to one.
func (m *MoodItem) Softmax() {
	if len(m.Scores) == 0 {
		return
	}
	max := m.Scores[0]
	for _, s := range m.Scores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	exps := make([]float64, len(m.Scores))
	for i, s := range m.Scores {
		exps[i] = math.Exp(s - max)
		sum += exps[i]
	}
	for i := range m.Scores {
		m.Scores[i] = exps[i] / sum
	}
}

// Level returns the intensity band of the label's score.
func (m *MoodItem) Level(label string) MoodLevel {
	return LevelOf(m.Get(label))
}
