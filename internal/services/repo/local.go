package repo

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"secretariat/internal/domain"
	"secretariat/internal/errors"
)

const (
	gitignoreFile   = ".gitignore"
	gitignorePerm   = 0o644
	initialCommit   = "Initial commit"
	remoteName      = "origin"
	defaultBranch   = "main"
	setupTitle      = "Initializing local repository and pushing to remote..."
	ignoreFilesText = "Select the files and/or folders you wish to ignore:"
)

// excludedEntries are never offered for the ignore file.
var excludedEntries = []string{".git", gitignoreFile}

// LocalService writes the ignore file and pushes the first commit.
type LocalService struct {
	vcs            domain.LocalVCS
	fs             domain.FileSystemAdapter
	prompter       domain.Prompter
	progress       domain.Progress
	workDir        string
	ignoreDefaults []string
	logger         *slog.Logger
}

// NewLocalService creates a local repository service for workDir.
// ignoreDefaults are pre-selected in the ignore prompt when present.
func NewLocalService(
	vcs domain.LocalVCS,
	fs domain.FileSystemAdapter,
	prompter domain.Prompter,
	progress domain.Progress,
	workDir string,
	ignoreDefaults []string,
	logger *slog.Logger,
) *LocalService {
	return &LocalService{
		vcs:            vcs,
		fs:             fs,
		prompter:       prompter,
		progress:       progress,
		workDir:        workDir,
		ignoreDefaults: ignoreDefaults,
		logger:         logger,
	}
}

// IgnoreCandidates lists the working directory entries that may be ignored.
func (s *LocalService) IgnoreCandidates(ctx context.Context) ([]string, error) {
	names, err := s.fs.ReadDirNames(s.workDir)
	if err != nil {
		return nil, errors.NewFilesystemError("read directory", s.workDir, err)
	}

	candidates := slices.DeleteFunc(names, func(name string) bool {
		return slices.Contains(excludedEntries, name)
	})
	s.logger.DebugContext(ctx, "Found ignore candidates", "count", len(candidates))
	return candidates, nil
}

// CreateGitignore asks which entries to ignore and writes .gitignore. An
// empty file is written when nothing is offered or chosen.
func (s *LocalService) CreateGitignore(ctx context.Context) error {
	candidates, err := s.IgnoreCandidates(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.workDir, gitignoreFile)

	var selected []string
	if len(candidates) > 0 {
		defaults := slices.DeleteFunc(slices.Clone(s.ignoreDefaults), func(d string) bool {
			return !slices.Contains(candidates, d)
		})
		selected, err = s.prompter.MultiSelect(ctx, ignoreFilesText, candidates, defaults)
		if err != nil {
			return err
		}
	}

	if len(selected) == 0 {
		if touchErr := s.fs.Touch(path); touchErr != nil {
			return errors.NewFilesystemError("create", path, touchErr)
		}
		s.logger.DebugContext(ctx, "Created empty ignore file", "path", path)
		return nil
	}

	if writeErr := s.fs.WriteFile(path, []byte(strings.Join(selected, "\n")), gitignorePerm); writeErr != nil {
		return errors.NewFilesystemError("write", path, writeErr)
	}
	s.logger.DebugContext(ctx, "Wrote ignore file", "path", path, "entries", len(selected))
	return nil
}

// SetupRepo initializes the repository, commits everything and pushes it to
// remoteURL. The first failing step aborts; nothing is rolled back.
func (s *LocalService) SetupRepo(ctx context.Context, remoteURL string) error {
	steps := []struct {
		name string
		run  func(ctx context.Context) error
	}{
		{"init", s.vcs.Init},
		{"add", func(ctx context.Context) error { return s.vcs.Add(ctx, gitignoreFile) }},
		{"add", func(ctx context.Context) error { return s.vcs.Add(ctx, ".") }},
		{"commit", func(ctx context.Context) error { return s.vcs.Commit(ctx, initialCommit) }},
		{"remote add", func(ctx context.Context) error { return s.vcs.AddRemote(ctx, remoteName, remoteURL) }},
		{"push", func(ctx context.Context) error { return s.vcs.Push(ctx, remoteName, defaultBranch) }},
	}

	return s.progress.Run(ctx, setupTitle, func(ctx context.Context) error {
		for _, step := range steps {
			if err := step.run(ctx); err != nil {
				s.logger.DebugContext(ctx, "Local repository setup failed", "step", step.name, "error", err)
				return errors.NewLocalVCSError(step.name, err)
			}
		}
		s.logger.InfoContext(ctx, "Pushed initial commit", "remote", remoteName, "branch", defaultBranch)
		return nil
	})
}
