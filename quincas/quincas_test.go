package quincas

import (
	"math"
	"testing"
	"time"
)

func TestAtempoChain(t *testing.T) {
	tests := []struct {
		ratio float64
		want  []float64
	}{
		{1.0, []float64{1.0}},
		{0.94, []float64{0.94}},
		{2.0, []float64{2.0}},
		{0.5, []float64{0.5}},
		{3.0, []float64{2.0, 1.5}},
		{5.0, []float64{2.0, 2.0, 1.25}},
		{0.25, []float64{0.5, 0.5}},
		{0.2, []float64{0.5, 0.5, 0.8}},
	}
	for _, tt := range tests {
		got, err := AtempoChain(tt.ratio)
		if err != nil {
			t.Fatalf("AtempoChain(%g): %v", tt.ratio, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("AtempoChain(%g) = %v; want %v", tt.ratio, got, tt.want)
		}
		product := 1.0
		for i, f := range got {
			if math.Abs(f-tt.want[i]) > 1e-9 {
				t.Fatalf("AtempoChain(%g) = %v; want %v", tt.ratio, got, tt.want)
			}
			if f < atempoMin || f > atempoMax {
				t.Fatalf("AtempoChain(%g) factor %g out of atempo range", tt.ratio, f)
			}
			product *= f
		}
		if math.Abs(product-tt.ratio) > 1e-9 {
			t.Fatalf("AtempoChain(%g) product = %g", tt.ratio, product)
		}
	}
}

func TestAtempoChainRejectsNonPositive(t *testing.T) {
	for _, ratio := range []float64{0, -1.5} {
		if _, err := AtempoChain(ratio); err == nil {
			t.Fatalf("AtempoChain(%g) must error", ratio)
		}
	}
}

func TestCutRejectsBadSpan(t *testing.T) {
	tests := []struct {
		start, end time.Duration
	}{
		{-time.Second, time.Second},
		{2 * time.Second, time.Second},
		{time.Second, time.Second},
	}
	for _, tt := range tests {
		if err := Cut("in.wav", "out.wav", tt.start, tt.end); err == nil {
			t.Fatalf("Cut with span [%s, %s) must error", tt.start, tt.end)
		}
	}
}

func TestTimelineTotalDuration(t *testing.T) {
	var tl Timeline
	if got := tl.TotalDuration(); got != 0 {
		t.Fatalf("empty timeline duration = %s; want 0", got)
	}

	tl.Add("a.wav", 0, 4*time.Second)
	tl.Add("b.wav", 10*time.Second, 2*time.Second)
	tl.Add("c.wav", 3*time.Second, 5*time.Second)

	if got, want := tl.TotalDuration(), 12*time.Second; got != want {
		t.Fatalf("TotalDuration = %s; want %s", got, want)
	}
}

func TestTimelineRenderRejectsEmpty(t *testing.T) {
	var tl Timeline
	if err := tl.Render("out.mp3"); err == nil {
		t.Fatalf("empty timeline must not render")
	}
}

func TestSecondsFormat(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.000"},
		{880 * time.Millisecond, "0.880"},
		{12*time.Second + 752*time.Millisecond, "12.752"},
	}
	for _, tt := range tests {
		if got := seconds(tt.d); got != tt.want {
			t.Fatalf("seconds(%s) = %q; want %q", tt.d, got, tt.want)
		}
	}
}
