package conformance

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher checks out suite repositories into a local cache laid out as
// <CacheDir>/<sanitized url>/<commit>. Checkouts are immutable once created
// and are reused on later fetches of the same commit.
type GitFetcher struct {
	CacheDir string
}

// NewGitFetcher returns a fetcher caching under cacheDir, or nil when
// cacheDir is empty.
func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{CacheDir: cacheDir}
}

// DefaultCacheDir is $LOX_CACHE, falling back to the user cache directory.
func DefaultCacheDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("LOX_CACHE")); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("conformance: cache dir: %w", err)
	}
	return filepath.Join(base, "lox", "suites"), nil
}

var commitPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Fetch clones url, resolves ref (tag, branch, commit, or HEAD when empty)
// and returns the checkout directory and the resolved commit.
func (g *GitFetcher) Fetch(url, ref string) (string, string, error) {
	if g == nil {
		return "", "", errors.New("git fetcher unavailable")
	}
	url = strings.TrimSpace(url)
	ref = strings.TrimSpace(ref)
	if url == "" {
		return "", "", errors.New("conformance: git URL required")
	}

	baseDir := filepath.Join(g.CacheDir, sanitizePathSegment(url))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	if commitPattern.MatchString(ref) {
		existing := filepath.Join(baseDir, ref)
		if _, err := os.Stat(existing); err == nil {
			return existing, ref, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := resolveRef(repo, ref)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	commit := hash.String()
	targetDir := filepath.Join(baseDir, commit)
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", commit, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, commit, nil
}

// resolveRef tries ref as a tag, then a remote branch, then any revision
// go-git understands.
func resolveRef(repo *git.Repository, ref string) (*plumbing.Hash, error) {
	if ref == "" {
		ref = "HEAD"
	}
	candidates := []plumbing.Revision{
		plumbing.Revision("refs/tags/" + ref),
		plumbing.Revision("refs/remotes/origin/" + ref),
		plumbing.Revision("refs/heads/" + ref),
		plumbing.Revision(ref),
	}
	if ref == "HEAD" || commitPattern.MatchString(ref) {
		candidates = candidates[3:]
	}
	var lastErr error
	for _, rev := range candidates {
		hash, err := repo.ResolveRevision(rev)
		if err == nil {
			return hash, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("resolve revision %s: %w", ref, lastErr)
}

// DirChecksum hashes every file under path, in walk order, by name and
// contents. The .git directory is skipped.
func DirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
