package images

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"uqbar/config"
	"uqbar/internal/execx"
)

// Download fetches each image link into dir with wget. Individual
// failures are logged and skipped; the pipeline only needs some of the
// links to land.
func Download(ctx context.Context, links []string, dir string) int {
	if !execx.LookPath("wget") {
		log.Error("wget not found in PATH, skipping image download")
		return 0
	}

	var ok int
	for _, link := range links {
		if err := wget(ctx, link, dir); err != nil {
			log.Warn("image download failed", "url", link, "err", err)
			continue
		}
		ok++
	}
	return ok
}

func wget(ctx context.Context, link, dir string) error {
	args := []string{
		"-c",
		"--tries=" + strconv.Itoa(config.WgetTries),
		"-T", strconv.Itoa(config.WgetTimeoutSecs),
		"--span-hosts",
		"--user-agent=" + config.DownloadUA,
		"-P", dir,
		link,
	}
	if _, err := execx.Run(ctx, "wget", args, execx.Options{Quiet: true}); err != nil {
		return fmt.Errorf("wget %s: %w", link, err)
	}
	return nil
}
