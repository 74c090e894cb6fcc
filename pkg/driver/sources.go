package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// HomeEnv overrides the cache root for fetched sources.
const HomeEnv = "PSEUDO_HOME"

// ResolveHome returns $PSEUDO_HOME, or ~/.pseudo when it is unset.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve %s %q: %w", HomeEnv, home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".pseudo"), nil
}

// FetchedSource is a checked-out source ready to read programs from.
type FetchedSource struct {
	Name    string
	Version string
	Commit  string
	Dir     string
	Cached  bool
}

// Fetcher clones git sources into <cache>/sources/<name>/<version>.
type Fetcher struct {
	cacheDir string
}

func NewFetcher(cacheDir string) *Fetcher {
	return &Fetcher{cacheDir: cacheDir}
}

// Fetch makes sure spec is checked out locally. A source pinned to a rev
// that is already in the cache is not cloned again.
func (f *Fetcher) Fetch(name string, spec *SourceSpec) (*FetchedSource, error) {
	if f == nil || f.cacheDir == "" {
		return nil, errors.New("source fetcher unavailable")
	}
	if spec == nil || strings.TrimSpace(spec.Git) == "" {
		return nil, fmt.Errorf("source %q: git URL required", name)
	}
	baseDir := filepath.Join(f.cacheDir, "sources", sanitizePathSegment(name))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}

	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return &FetchedSource{Name: name, Version: rev, Commit: rev, Dir: existing, Cached: true}, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return nil, err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return nil, err
	}

	opts := &git.CloneOptions{URL: strings.TrimSpace(spec.Git)}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	if spec.Tag != "" {
		opts.Tags = git.AllTags
	}
	repo, err := git.PlainClone(tmpDir, false, opts)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("git clone %s: %w", spec.Git, err)
	}

	revision, descriptor := revisionFromSpec(spec)
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	version := pinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return &FetchedSource{Name: name, Version: version, Commit: hash.String(), Dir: targetDir, Cached: true}, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, err
	}
	return &FetchedSource{Name: name, Version: version, Commit: hash.String(), Dir: targetDir}, nil
}

// SplitSourceRef splits "name:path" into its parts. Anything without a
// colon, or with a one-letter name (a Windows drive), is a plain path.
func SplitSourceRef(arg string) (name, path string, ok bool) {
	name, path, found := strings.Cut(arg, ":")
	if !found || len(name) < 2 || path == "" {
		return "", arg, false
	}
	return name, path, true
}

// ResolveProgram maps a command-line program argument to a file on disk.
// "name:path" refers to path inside the configured source name, which is
// fetched on demand; everything else is returned unchanged.
func (f *Fetcher) ResolveProgram(cfg *Config, arg string) (string, error) {
	name, rel, ok := SplitSourceRef(arg)
	if !ok || cfg == nil {
		return arg, nil
	}
	spec, known := cfg.Sources[name]
	if !known {
		return arg, nil
	}
	fetched, err := f.Fetch(name, spec)
	if err != nil {
		return "", err
	}
	full := filepath.Join(fetched.Dir, filepath.FromSlash(rel))
	inside, err := filepath.Rel(fetched.Dir, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("source %q: path %q escapes the checkout", name, rel)
	}
	return full, nil
}

func revisionFromSpec(spec *SourceSpec) (plumbing.Revision, string) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch
	}
	return plumbing.Revision(plumbing.HEAD), ""
}

func pinnedVersion(descriptor, commit string) string {
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
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
