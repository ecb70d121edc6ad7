// Package audio renders the narration track with piper and mixes the
// background music bed under it.
package audio

import (
	"context"
	"fmt"
	"strings"

	"uqbar/config"
	"uqbar/internal/execx"
)

// Synthesize runs piper over the narration text, writing a wav file.
// The text arrives on stdin so long scripts never hit argv limits.
func Synthesize(ctx context.Context, text, wavPath string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("tts: empty narration text")
	}
	if !execx.LookPath("piper") {
		return fmt.Errorf("tts: piper not found in PATH")
	}

	args := []string{"--model", config.PiperModel, "--output_file", wavPath}
	if _, err := execx.Run(ctx, "piper", args, execx.Options{Stdin: strings.NewReader(text)}); err != nil {
		return fmt.Errorf("tts: piper: %w", err)
	}
	return nil
}
