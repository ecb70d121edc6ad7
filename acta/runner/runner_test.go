package runner

import (
	"context"
	"strings"
	"testing"

	"uqbar/config"
	"uqbar/types"
)

func TestRunMissingCheckpoint(t *testing.T) {
	cfg := &config.Config{WorkDir: t.TempDir()}
	r := New(cfg, Deps{})

	tg := AllOn()
	tg.Run[1] = false // load a checkpoint that was never written

	err := r.Run(context.Background(), tg)
	if err == nil {
		t.Fatalf("expected error for missing checkpoint")
	}
	if !strings.Contains(err.Error(), "trends_1.json") {
		t.Fatalf("error must name the checkpoint file: %v", err)
	}
}

func TestRunLoadsCheckpointAndContinues(t *testing.T) {
	cfg := &config.Config{WorkDir: t.TempDir()}

	tl := &types.TrendList{
		RunID: "run-test",
		Items: []*types.Trend{{Title: "quiet day", News: []types.NewsItem{
			{Title: "a calm report", URL: "", Source: "test"},
		}}},
	}
	if err := types.SaveCheckpoint(cfg.WorkDir, "1", tl); err != nil {
		t.Fatal(err)
	}

	r := New(cfg, Deps{})
	tg, err := FromRange(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	tg.Run[1] = false

	// Stage 2 extracts nothing (no reachable URLs) but must still build
	// the narration prompts and write its checkpoint.
	if err := r.Run(context.Background(), tg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := types.LoadCheckpoint(cfg.WorkDir, "2")
	if err != nil {
		t.Fatalf("stage 2 checkpoint missing: %v", err)
	}
	if got.Items[0].TTSQuery == "" {
		t.Fatalf("narration prompt not built")
	}
}

func TestNarrationFallsBackToNewsText(t *testing.T) {
	cfg := &config.Config{WorkDir: t.TempDir()}

	tl := &types.TrendList{
		RunID: "run-test",
		Items: []*types.Trend{{
			Title:    "quiet day",
			NewsText: "[test] a calm report about nothing in particular",
		}},
	}
	for _, stage := range []string{"1", "2"} {
		if err := types.SaveCheckpoint(cfg.WorkDir, stage, tl); err != nil {
			t.Fatal(err)
		}
	}

	r := New(cfg, Deps{})
	tg, err := FromRange(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Run(context.Background(), tg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := types.LoadCheckpoint(cfg.WorkDir, "3")
	if err != nil {
		t.Fatalf("stage 3 checkpoint missing: %v", err)
	}
	if got.Items[0].TTSResponse != tl.Items[0].NewsText {
		t.Fatalf("TTSResponse = %q; want the news text", got.Items[0].TTSResponse)
	}
}
