// Package execx wraps external tool invocation. Every subprocess the
// toolkit launches (wget, ffmpeg, magick, piper, yt-dlp, git, sips) goes
// through Run so commands are logged and output is captured uniformly.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Result carries the captured output of a finished command.
type Result struct {
	Stdout string
	Stderr string
}

// Options tweak how a command is run.
type Options struct {
	Dir   string
	Stdin io.Reader
	// Quiet suppresses the command log line.
	Quiet bool
}

// Run executes name with args, waiting for completion. Output is captured
// and returned; on failure the error includes the trailing stderr.
func Run(ctx context.Context, name string, args []string, opts Options) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if !opts.Quiet {
		log.Debug("exec", "cmd", name, "args", strings.Join(args, " "))
	}

	err := cmd.Run()
	res := &Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w: %s", name, err, tail(res.Stderr, 400))
	}
	return res, nil
}

// LookPath reports whether the named tool is on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
