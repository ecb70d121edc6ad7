// Package milou downloads things: YouTube audio as m4a via yt-dlp,
// arbitrary files over HTTP with filename derivation, and GitHub
// repositories via git clone.
package milou

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Path separators and control characters are never allowed in a
	// derived filename.
	invalidCharsRe = regexp.MustCompile(`[\\/\x00-\x1f\x7f]+`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

const maxFilenameLen = 240

// SafeFilename sanitizes a candidate filename, keeping unicode letters
// and digits. Returns "" when nothing usable remains.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = invalidCharsRe.ReplaceAllString(name, "_")
	name = whitespaceRe.ReplaceAllString(name, " ")
	name = strings.Trim(name, " .")
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}
	return name
}

// GuessNameFromURL derives a filename from the last path segment of a
// URL, percent-decoded and sanitized.
func GuessNameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segs := strings.Split(u.Path, "/")
	last := strings.TrimSpace(segs[len(segs)-1])
	if dec, err := url.PathUnescape(last); err == nil {
		last = dec
	}
	return SafeFilename(last)
}

// contentTypeExts maps media types onto filename extensions for names
// that arrive without one.
var contentTypeExts = map[string]string{
	"text/plain":        ".txt",
	"text/html":         ".html",
	"application/pdf":   ".pdf",
	"application/json":  ".json",
	"text/csv":          ".csv",
	"image/png":         ".png",
	"image/jpeg":        ".jpg",
	"image/webp":        ".webp",
	"application/zip":   ".zip",
	"application/gzip":  ".gz",
	"application/x-tar": ".tar",
}

// GuessExtFromContentType returns the extension for a Content-Type
// header value, or "" when unknown.
func GuessExtFromContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return contentTypeExts[ct]
}

// UniquePath appends " (n)" before the suffix until the path does not
// exist yet.
func UniquePath(dest string) (string, error) {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest, nil
	}
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for i := 1; i < 10000; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("milou: could not find a unique filename for %s", dest)
}
