// Package git drives the local repository with go-git, a pure Go
// implementation that does not need the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"

	"secretariat/internal/domain"
)

const allFiles = "."

// Options configures the adapter.
type Options struct {
	// AuthorName and AuthorEmail sign commits. When either is empty
	// go-git falls back to the user's git configuration.
	AuthorName  string
	AuthorEmail string
	// SSHKeyPath overrides agent and default key lookup for SSH remotes.
	SSHKeyPath string
	// DefaultBranch is the branch created by Init.
	DefaultBranch string
}

// Adapter implements domain.LocalVCS for one working directory.
type Adapter struct {
	workDir string
	opts    Options
	logger  *slog.Logger

	mu   sync.Mutex
	repo *git.Repository
}

// NewAdapter creates an adapter rooted at workDir.
func NewAdapter(workDir string, opts Options, logger *slog.Logger) *Adapter {
	if opts.DefaultBranch == "" {
		opts.DefaultBranch = "main"
	}
	return &Adapter{
		workDir: workDir,
		opts:    opts,
		logger:  logger,
	}
}

// IsRepository reports whether the working directory already holds a repository.
func (a *Adapter) IsRepository(ctx context.Context) (bool, error) {
	_, err := git.PlainOpen(a.workDir)
	switch {
	case err == nil:
		a.logger.DebugContext(ctx, "Found existing repository", "dir", a.workDir)
		return true, nil
	case errors.Is(err, git.ErrRepositoryNotExists):
		return false, nil
	default:
		return false, fmt.Errorf("failed to open repository at %s: %w", a.workDir, err)
	}
}

// Init creates a new repository whose HEAD points at the default branch.
func (a *Adapter) Init(ctx context.Context) error {
	repo, err := git.PlainInitWithOptions(a.workDir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(a.opts.DefaultBranch),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}

	a.mu.Lock()
	a.repo = repo
	a.mu.Unlock()

	a.logger.DebugContext(ctx, "Initialized repository", "dir", a.workDir, "branch", a.opts.DefaultBranch)
	return nil
}

// Add stages path. "." stages every file not excluded by .gitignore.
func (a *Adapter) Add(ctx context.Context, path string) error {
	w, err := a.worktree()
	if err != nil {
		return err
	}

	if path == allFiles {
		patterns, readErr := gitignore.ReadPatterns(w.Filesystem, nil)
		if readErr != nil {
			return fmt.Errorf("failed to read ignore patterns: %w", readErr)
		}
		w.Excludes = append(w.Excludes, patterns...)
		err = w.AddWithOptions(&git.AddOptions{All: true})
	} else {
		_, err = w.Add(path)
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	a.logger.DebugContext(ctx, "Staged files", "path", path)
	return nil
}

// Commit records the staged changes.
func (a *Adapter) Commit(ctx context.Context, message string) error {
	w, err := a.worktree()
	if err != nil {
		return err
	}

	commitOpts := &git.CommitOptions{}
	if a.opts.AuthorName != "" && a.opts.AuthorEmail != "" {
		commitOpts.Author = &object.Signature{
			Name:  a.opts.AuthorName,
			Email: a.opts.AuthorEmail,
			When:  time.Now(),
		}
	}

	hash, err := w.Commit(message, commitOpts)
	if err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}

	a.logger.DebugContext(ctx, "Created commit", "hash", hash.String())
	return nil
}

// AddRemote registers a remote.
func (a *Adapter) AddRemote(ctx context.Context, name, url string) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	}); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}

	a.logger.DebugContext(ctx, "Added remote", "name", name, "url", url)
	return nil
}

// Push sends branch to the remote under the same name.
func (a *Adapter) Push(ctx context.Context, remoteName, branch string) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", remoteName, err)
	}

	var remoteURL string
	if urls := remote.Config().URLs; len(urls) > 0 {
		remoteURL = urls[0]
	}

	auth, err := resolveAuth(remoteURL, a.opts.SSHKeyPath)
	if err != nil {
		return fmt.Errorf("failed to resolve authentication: %w", err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))

	a.logger.DebugContext(ctx, "Pushing to remote",
		"remote", remoteName,
		"branch", branch,
		"auth", describeAuth(auth))

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remoteName, err)
	}

	return nil
}

func (a *Adapter) repository() (*git.Repository, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.repo != nil {
		return a.repo, nil
	}

	repo, err := git.PlainOpen(a.workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", a.workDir, err)
	}
	a.repo = repo
	return repo, nil
}

func (a *Adapter) worktree() (*git.Worktree, error) {
	repo, err := a.repository()
	if err != nil {
		return nil, err
	}

	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	return w, nil
}

var _ domain.LocalVCS = (*Adapter)(nil)
