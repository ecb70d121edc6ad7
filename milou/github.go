package milou

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"uqbar/internal/execx"
)

// blobRe matches GitHub web URLs pointing at a file on a branch.
var blobRe = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+)/blob/([^/]+)/(.+)$`)

// Blob identifies a file inside a GitHub repository.
type Blob struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// ParseBlobURL extracts the blob coordinates from a github.com URL, or
// returns false when the URL is not a blob link.
func ParseBlobURL(raw string) (Blob, bool) {
	m := blobRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Blob{}, false
	}
	return Blob{Owner: m[1], Repo: m[2], Branch: m[3], Path: m[4]}, true
}

// RawURL is the direct-download address of the blob.
func (b Blob) RawURL() string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s",
		b.Owner, b.Repo, b.Branch, b.Path)
}

// CloneRepo shallow-clones a repository into outDir. The destination
// directory is named after the repository; an existing clone is an
// error rather than a silent reuse.
func CloneRepo(ctx context.Context, repoURL, outDir string) (string, error) {
	if !execx.LookPath("git") {
		return "", fmt.Errorf("milou: git is not on PATH")
	}
	name := RepoName(repoURL)
	if name == "" {
		return "", fmt.Errorf("milou: cannot derive a repository name from %q", repoURL)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("milou: create %s: %w", outDir, err)
	}

	dest := filepath.Join(outDir, name)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("milou: %s already exists", dest)
	}

	args := []string{"clone", "--depth", "1", repoURL, dest}
	if _, err := execx.Run(ctx, "git", args, execx.Options{}); err != nil {
		return "", fmt.Errorf("milou: clone %s: %w", repoURL, err)
	}
	return dest, nil
}

// RepoName derives a directory name from a repository URL, dropping a
// trailing .git.
func RepoName(repoURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(repoURL), "/"), ".git")
	segs := strings.Split(trimmed, "/")
	return SafeFilename(segs[len(segs)-1])
}
