package video

import (
	"strings"
	"testing"

	"uqbar/config"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.defaults()
	if o.TimeEachPic != config.TimeEachPic {
		t.Fatalf("TimeEachPic = %v", o.TimeEachPic)
	}
	if o.TotalSecs != config.TotalDuration {
		t.Fatalf("TotalSecs = %v", o.TotalSecs)
	}
	if o.Width != 1920 || o.Height != 1080 || o.FPS != 30 {
		t.Fatalf("geometry defaults = %dx%d@%d", o.Width, o.Height, o.FPS)
	}

	o = Options{TimeEachPic: 5.0}
	o.defaults()
	if o.TimeEachPic != 5.0 {
		t.Fatalf("explicit TimeEachPic overridden: %v", o.TimeEachPic)
	}
}

func TestTransitionCycle(t *testing.T) {
	if TransitionFor(0) != "fade" {
		t.Fatalf("first transition = %s", TransitionFor(0))
	}
	if TransitionFor(9) != "smoothright" {
		t.Fatalf("tenth transition = %s", TransitionFor(9))
	}
	if TransitionFor(10) != "fade" {
		t.Fatalf("cycle must wrap, got %s", TransitionFor(10))
	}
	for i := 0; i < 10; i++ {
		if strings.TrimSpace(TransitionFor(i)) == "" {
			t.Fatalf("empty transition at %d", i)
		}
	}
}

func TestCreateRejectsTooFewImages(t *testing.T) {
	err := Create([]string{"one.png"}, "audio.m4a", "out.mp4", Options{})
	if err == nil {
		t.Fatalf("expected error for a single image")
	}
}
