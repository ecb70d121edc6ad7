package milou

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const downloadUserAgent = "Mozilla/5.0 (compatible; uqbar-milou/1.0)"

// Downloader fetches files over HTTP, preserving the remote filename
// when possible.
type Downloader struct {
	http *http.Client
}

// NewDownloader builds a Downloader with a 60s request timeout.
func NewDownloader() *Downloader {
	return &Downloader{http: &http.Client{Timeout: 60 * time.Second}}
}

// Fetch downloads rawURL into outDir. The filename comes from the URL
// path, then the Content-Disposition header, then "downloaded_file";
// a missing extension is inferred from the Content-Type. Existing
// files are never overwritten. Returns the saved path and a note
// describing any fallback taken ("" on a clean run).
func (d *Downloader) Fetch(ctx context.Context, rawURL, outDir string) (string, string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", fmt.Errorf("milou: create %s: %w", outDir, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("milou: %w", err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := d.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("milou: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("milou: fetch %s: status %d", rawURL, resp.StatusCode)
	}

	var notes []string
	name := GuessNameFromURL(rawURL)
	if name == "" {
		if server := dispositionFilename(resp.Header.Get("Content-Disposition")); server != "" {
			name = SafeFilename(server)
			notes = append(notes, "filename taken from content disposition")
		}
	}
	if name == "" {
		name = "downloaded_file"
		notes = append(notes, "filename could not be determined; using downloaded_file")
	}
	if !strings.Contains(filepath.Base(name), ".") {
		if ext := GuessExtFromContentType(resp.Header.Get("Content-Type")); ext != "" {
			name += ext
			notes = append(notes, "extension inferred from content type")
		}
	}

	dest, err := UniquePath(filepath.Join(outDir, name))
	if err != nil {
		return "", "", err
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", "", fmt.Errorf("milou: create %s: %w", dest, err)
	}
	written, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", "", fmt.Errorf("milou: write %s: %w", dest, err)
	}
	if written == 0 {
		notes = append(notes, "warning downloaded file is empty")
	}

	log.Info("downloaded", "url", rawURL, "path", dest, "bytes", written)
	return dest, strings.Join(notes, "; "), nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
