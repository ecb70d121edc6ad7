package mood

import (
	"testing"

	"uqbar/types"
)

func item(scores map[string]float64) *types.MoodItem {
	return types.NewMoodItem(scores)
}

func TestObituaryGuard(t *testing.T) {
	m := item(map[string]float64{"grief": 0.70, "neutral": 0.10})
	c := ChooseMusicStyle(m)
	if c.CategoryID != 18 {
		t.Fatalf("category = %d; want 18 (obituary)", c.CategoryID)
	}

	// Sadness plus an admiring undertone also triggers the tribute guard.
	m = item(map[string]float64{"sadness": 0.50, "admiration": 0.20, "gratitude": 0.15})
	if c := ChooseMusicStyle(m); c.CategoryID != 18 {
		t.Fatalf("category = %d; want 18 (tribute)", c.CategoryID)
	}
}

func TestCrisisGuard(t *testing.T) {
	m := item(map[string]float64{"fear": 0.60, "anger": 0.45})
	if c := ChooseMusicStyle(m); c.CategoryID != 4 {
		t.Fatalf("category = %d; want 4 (crisis)", c.CategoryID)
	}

	m = item(map[string]float64{"fear": 0.55, "sadness": 0.30})
	if c := ChooseMusicStyle(m); c.CategoryID != 4 {
		t.Fatalf("category = %d; want 4 (crisis via sadness)", c.CategoryID)
	}
}

func TestSportsScoresHighest(t *testing.T) {
	m := item(map[string]float64{
		"excitement": 0.80,
		"joy":        0.60,
		"pride":      0.50,
		"admiration": 0.30,
	})
	c := ChooseMusicStyle(m)
	if c.CategoryID != 13 {
		t.Fatalf("category = %d (%s); want 13 (sports)", c.CategoryID, c.CategoryName)
	}
	if c.AudioBrief == "" {
		t.Fatalf("audio brief missing")
	}
}

func TestNeutralFallback(t *testing.T) {
	// Near-zero emotion everywhere with dominant neutral: the neutral-gate
	// bias plus fallback 22 should win.
	m := item(map[string]float64{"neutral": 0.90})
	c := ChooseMusicStyle(m)
	if c.CategoryID != 5 && c.CategoryID != 22 {
		t.Fatalf("category = %d; want an analytic/neutral pick", c.CategoryID)
	}
}

func TestAmbiguousPrefersNeutrality(t *testing.T) {
	// Two categories nearly tied, nothing strongly emotional.
	m := item(map[string]float64{
		"curiosity":   0.15,
		"realization": 0.15,
		"neutral":     0.18,
	})
	c := ChooseMusicStyle(m)
	if !strongEmotion(m) && c.CategoryID != 22 {
		// Ambiguity resolution only kicks in when the top two heuristic
		// scores are within the margin; assert the invariant it protects.
		if c.Scores[22] >= c.Scores[c.CategoryID] {
			t.Fatalf("neutrality outranked winner: got %d", c.CategoryID)
		}
	}
}

func TestSoftmaxNormalizes(t *testing.T) {
	m := item(map[string]float64{"joy": 2.0, "sadness": 1.0})
	m.Softmax()
	var sum float64
	for _, s := range m.Scores {
		sum += s
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("softmax sum = %v", sum)
	}
	if m.Get("joy") <= m.Get("sadness") {
		t.Fatalf("softmax must preserve ordering")
	}
}

func TestParseScores(t *testing.T) {
	m, err := ParseScores(`{"joy": 0.8, "neutral": 0.1, "unknown_label": 0.5}`)
	if err != nil {
		t.Fatalf("ParseScores: %v", err)
	}
	if m.Get("joy") != 0.8 {
		t.Fatalf("joy = %v", m.Get("joy"))
	}

	if _, err := ParseScores("not json"); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
	if _, err := ParseScores("{}"); err == nil {
		t.Fatalf("expected error for empty object")
	}
}

func TestCategoriesComplete(t *testing.T) {
	for id := 1; id <= 22; id++ {
		cat, ok := Categories[id]
		if !ok {
			t.Fatalf("missing category %d", id)
		}
		if cat.Name == "" || cat.AudioBrief == "" {
			t.Fatalf("category %d incomplete", id)
		}
	}
}
