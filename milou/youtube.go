package milou

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"uqbar/internal/execx"
)

// downloadPause spaces out consecutive YouTube downloads.
const downloadPause = 3410 * time.Millisecond

// audioFormat prefers a native m4a stream and falls back to the best
// audio available; ffmpeg extracts m4a either way.
const audioFormat = "bestaudio[ext=m4a]/bestaudio[ext=mp4]/bestaudio"

// DownloadAudio fetches the audio of one YouTube URL into outDir as
// m4a at 192 kbps. Playlist links download only the named video.
func DownloadAudio(ctx context.Context, url, outDir string) error {
	if !execx.LookPath("yt-dlp") {
		return fmt.Errorf("milou: yt-dlp is not on PATH")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("milou: create %s: %w", outDir, err)
	}

	args := []string{
		"-f", audioFormat,
		"--no-playlist",
		"-x",
		"--audio-format", "m4a",
		"--audio-quality", "192",
		"-o", outDir + "/%(title)s.%(ext)s",
		url,
	}
	if _, err := execx.Run(ctx, "yt-dlp", args, execx.Options{}); err != nil {
		return fmt.Errorf("milou: download %s: %w", url, err)
	}
	return nil
}

// DownloadAudioList downloads each URL in turn with a pause between
// them. Failures are logged and counted, not fatal.
func DownloadAudioList(ctx context.Context, urls []string, outDir string) (int, error) {
	if len(urls) == 0 {
		return 0, fmt.Errorf("milou: no URLs to download")
	}

	done := 0
	for i, u := range urls {
		if err := DownloadAudio(ctx, u, outDir); err != nil {
			log.Warn("audio download failed", "url", u, "err", err)
		} else {
			done++
		}
		if i < len(urls)-1 {
			select {
			case <-ctx.Done():
				return done, ctx.Err()
			case <-time.After(downloadPause):
			}
		}
	}
	log.Info("audio downloads finished", "requested", len(urls), "done", done)
	return done, nil
}
