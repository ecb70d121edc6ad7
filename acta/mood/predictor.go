// Package mood maps emotion scores for a news paragraph to one of 22
// background-music categories via a weighted heuristic with editorial
// guard rules.
package mood

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"uqbar/types"
)

// Positive and negative label sets for the valence proxy.
var (
	positiveLabels = []string{
		"joy", "love", "gratitude", "admiration", "approval",
		"optimism", "pride", "relief", "amusement", "excitement",
	}
	negativeLabels = []string{
		"grief", "sadness", "remorse", "fear", "anger",
		"disgust", "disapproval", "annoyance", "disappointment", "nervousness",
	}
)

const (
	neutralGate     = 0.30
	ambiguityMargin = 0.04
)

// Choice is the selected music category with its supporting evidence.
type Choice struct {
	CategoryID   int                 `json:"category_id"`
	CategoryName string              `json:"category_name"`
	AudioBrief   string              `json:"audio_brief"`
	Scores       map[int]float64     `json:"scores,omitempty"`
	TopEmotions  []LabelScore        `json:"top_emotions"`
	Notes        string              `json:"notes"`
}

// LabelScore pairs an emotion label with its score.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ChooseMusicStyle selects a category for the mood vector. Guard rules
// for obituary and crisis coverage run before the weighted scoring.
func ChooseMusicStyle(m *types.MoodItem) Choice {
	get := m.Get
	top := topEmotions(m)

	pos := mean(m, positiveLabels)
	neg := mean(m, negativeLabels)
	valence := pos - neg
	neutral := get("neutral")

	// Obituary or tribute: grief dominates, or sadness dominates with an
	// admiring/grateful undertone.
	if high(get("grief")) || (high(get("sadness")) && get("admiration")+get("gratitude") >= 0.30) {
		return guardChoice(18, top, "grief/sadness is high, obituary treatment")
	}

	// Conflict and crisis: fear with anger, or fear over a sad bed.
	if (high(get("fear")) && high(get("anger"))) || (high(get("fear")) && get("sadness") >= 0.25) {
		return guardChoice(4, top, "fear/anger indicates crisis coverage")
	}

	scores := scoreHeuristics(m, valence, neutral)

	bestID, bestScore, runnerUp := best(scores)

	// When the top categories are too close and nothing is strongly
	// emotional, fall back to absolute neutrality.
	if bestScore-runnerUp <= ambiguityMargin && !strongEmotion(m) {
		bestID = 22
		bestScore = scores[22]
	}

	cat := Categories[bestID]
	ambiguous := top[0].Score-top[1].Score <= ambiguityMargin
	return Choice{
		CategoryID:   bestID,
		CategoryName: cat.Name,
		AudioBrief:   cat.AudioBrief,
		Scores:       scores,
		TopEmotions:  top,
		Notes: fmt.Sprintf("neutral=%.3f, valence=%.3f, ambiguous=%v, best_score=%.3f",
			neutral, valence, ambiguous, bestScore),
	}
}

func scoreHeuristics(m *types.MoodItem, valence, neutral float64) map[int]float64 {
	g := m.Get
	scores := map[int]float64{
		// Breaking news: surprise plus alert tension, not deeply tragic.
		1: 1.20*g("surprise") + 0.50*g("nervousness") + 0.35*g("fear") + 0.25*neutral -
			0.80*g("grief") - 0.50*g("sadness"),
		// Investigative: curiosity and realization over a neutral bed.
		2: 1.10*g("curiosity") + 0.60*g("realization") + 0.50*neutral + 0.25*g("confusion") -
			0.35*g("joy") - 0.20*g("amusement"),
		// Political reform: optimism and approval, low anger.
		3: 1.00*g("optimism") + 0.70*g("approval") + 0.45*g("pride") + 0.35*neutral -
			0.60*g("anger") - 0.40*g("disapproval"),
		// Economic trends: neutral and analytical, low extremes.
		5: 1.20*neutral + 0.55*g("realization") + 0.25*g("curiosity") -
			0.35*g("surprise") - 0.25*g("joy") - 0.25*g("anger"),
		// Environmental crisis: concern and melancholy.
		6: 0.95*g("sadness") + 0.75*g("fear") + 0.70*g("remorse") + 0.55*g("disappointment") +
			0.25*g("curiosity") + 0.10*neutral,
		// Scientific breakthrough: wonder.
		7: 1.00*g("curiosity") + 0.70*g("surprise") + 0.65*g("admiration") + 0.45*g("excitement") +
			0.35*g("joy") - 0.25*g("fear"),
		// Humanitarian profile: empathy and resilience.
		8: 1.00*g("caring") + 0.75*g("gratitude") + 0.55*g("admiration") + 0.45*g("optimism") +
			0.25*g("sadness") - 0.30*g("amusement"),
		// Social justice: tension with conviction.
		9: 1.05*g("anger") + 0.80*g("disapproval") + 0.55*g("annoyance") + 0.35*g("pride") +
			0.20*g("optimism") + 0.10*neutral,
		// Technology and future: innovation pace.
		10: 0.95*g("curiosity") + 0.75*g("excitement") + 0.60*g("optimism") + 0.35*neutral +
			0.20*g("surprise") - 0.25*g("sadness"),
		// Health and wellness: reassurance, low fear.
		11: 1.00*g("caring") + 0.85*g("relief") + 0.60*g("optimism") + 0.35*neutral -
			0.60*g("fear"),
		// Local community: neighborly, low extremes.
		12: 0.90*neutral + 0.55*g("approval") + 0.45*g("caring") + 0.20*g("gratitude") -
			0.35*g("anger") - 0.25*g("fear"),
		// Sports commentary: energy and achievement.
		13: 1.10*g("excitement") + 0.85*g("joy") + 0.70*g("pride") + 0.45*g("admiration") -
			0.35*g("sadness"),
		// Global summits: formal and procedural, low surprise.
		14: 1.05*neutral + 0.55*g("approval") + 0.50*g("realization") + 0.20*g("curiosity") -
			0.35*g("surprise"),
		// Arts and culture: sophistication with whimsy.
		15: 0.90*g("admiration") + 0.75*g("amusement") + 0.55*g("surprise") + 0.35*g("joy") +
			0.15*g("curiosity"),
		// Crime and justice: judgment and caution.
		16: 0.95*g("fear") + 0.80*g("disgust") + 0.70*g("disapproval") + 0.65*g("anger") +
			0.20*neutral,
		// Education and youth: potential.
		17: 0.95*g("optimism") + 0.75*g("curiosity") + 0.60*g("approval") + 0.40*g("joy") +
			0.20*neutral,
		// Weather and nature: movement and awe.
		19: 0.95*g("surprise") + 0.60*neutral + 0.55*g("curiosity") + 0.25*g("fear"),
		// Opinion and editorial: dialogue.
		20: 0.90*g("realization") + 0.45*neutral + 0.35*g("approval") + 0.35*g("disapproval") +
			0.20*g("curiosity"),
		// Fallback 1: valence generalization.
		21: 0.50*abs(valence) + 0.25*(1.00-neutral),
		// Fallback 2: absolute neutrality.
		22: 1.10 * neutral,
	}

	// High neutrality biases the analytic and procedural categories.
	if neutral >= neutralGate {
		scores[5] += 0.20
		scores[14] += 0.20
		scores[2] += 0.10
		scores[22] += 0.20
	}

	return scores
}

func guardChoice(id int, top []LabelScore, reason string) Choice {
	cat := Categories[id]
	return Choice{
		CategoryID:   id,
		CategoryName: cat.Name,
		AudioBrief:   cat.AudioBrief,
		TopEmotions:  top,
		Notes:        "guard triggered: " + reason,
	}
}

// high reports whether a score lands in the HIGH or VERY_HIGH band.
func high(score float64) bool {
	level := types.LevelOf(score)
	return level == types.MoodHigh || level == types.MoodVeryHigh
}

func strongEmotion(m *types.MoodItem) bool {
	for _, label := range append(append([]string{}, positiveLabels...), negativeLabels...) {
		if high(m.Get(label)) {
			return true
		}
	}
	return false
}

func mean(m *types.MoodItem, labels []string) float64 {
	var sum float64
	for _, l := range labels {
		sum += m.Get(l)
	}
	return sum / float64(len(labels))
}

func topEmotions(m *types.MoodItem) []LabelScore {
	out := make([]LabelScore, 0, len(types.MoodLabels))
	for _, label := range types.MoodLabels {
		out = append(out, LabelScore{Label: label, Score: m.Get(label)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > 6 {
		return out[:6]
	}
	return out
}

func best(scores map[int]float64) (bestID int, bestScore, runnerUp float64) {
	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	bestScore = -1e18
	runnerUp = -1e18
	for _, id := range ids {
		s := scores[id]
		if s > bestScore {
			runnerUp = bestScore
			bestScore = s
			bestID = id
		} else if s > runnerUp {
			runnerUp = s
		}
	}
	return bestID, bestScore, runnerUp
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ParseScores reads a JSON object of label->score pairs (the format the
// scoring prompt asks the LLM to return) into a MoodItem.
func ParseScores(jsonText string) (*types.MoodItem, error) {
	var byLabel map[string]float64
	dec := json.NewDecoder(strings.NewReader(jsonText))
	if err := dec.Decode(&byLabel); err != nil {
		return nil, fmt.Errorf("parse mood scores: %w", err)
	}
	if len(byLabel) == 0 {
		return nil, fmt.Errorf("mood scores empty")
	}
	return types.NewMoodItem(byLabel), nil
}
