// Package repo creates the remote repository and initializes the local one.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"secretariat/internal/domain"
)

const (
	creatingRemoteTitle = "Creating remote repository..."

	namePrompt        = "Enter a name for the repository:"
	nameRequired      = "Please enter a name for the repository."
	descriptionPrompt = "Optionally enter a description of the repository:"
	visibilityPrompt  = "Public or private:"
)

// ClientProvider hands out the authenticated provider client.
type ClientProvider interface {
	Client() (domain.RepositoryCreator, error)
}

// RemoteService asks for repository details and creates the repository.
type RemoteService struct {
	clients  ClientProvider
	prompter domain.Prompter
	progress domain.Progress
	fs       domain.FileSystemAdapter
	workDir  string
	logger   *slog.Logger
}

// NewRemoteService creates a remote repository service for workDir.
func NewRemoteService(
	clients ClientProvider,
	prompter domain.Prompter,
	progress domain.Progress,
	fs domain.FileSystemAdapter,
	workDir string,
	logger *slog.Logger,
) *RemoteService {
	return &RemoteService{
		clients:  clients,
		prompter: prompter,
		progress: progress,
		fs:       fs,
		workDir:  workDir,
		logger:   logger,
	}
}

// PromptRepoDetails asks for the name, description and visibility. args are
// the positional command line arguments [name] [description] used as defaults.
func (s *RemoteService) PromptRepoDetails(ctx context.Context, args []string) (domain.RepoDetails, error) {
	defaultName, err := s.defaultName(args)
	if err != nil {
		return domain.RepoDetails{}, err
	}

	var defaultDescription string
	if len(args) > 1 {
		defaultDescription = args[1]
	}

	name, err := s.prompter.Input(ctx, domain.Question{
		Title:    namePrompt,
		Default:  defaultName,
		Required: nameRequired,
	})
	if err != nil {
		return domain.RepoDetails{}, err
	}

	description, err := s.prompter.Input(ctx, domain.Question{
		Title:   descriptionPrompt,
		Default: defaultDescription,
	})
	if err != nil {
		return domain.RepoDetails{}, err
	}

	visibility, err := s.prompter.Select(ctx, visibilityPrompt,
		[]string{string(domain.VisibilityPublic), string(domain.VisibilityPrivate)},
		string(domain.VisibilityPublic))
	if err != nil {
		return domain.RepoDetails{}, err
	}

	return domain.RepoDetails{
		Name:        name,
		Description: description,
		Visibility:  domain.Visibility(visibility),
	}, nil
}

// CreateRemoteRepo creates the repository and returns its SSH clone URL.
func (s *RemoteService) CreateRemoteRepo(ctx context.Context, details domain.RepoDetails) (string, error) {
	client, err := s.clients.Client()
	if err != nil {
		return "", err
	}

	var created domain.RemoteRepository
	err = s.progress.Run(ctx, creatingRemoteTitle, func(ctx context.Context) error {
		var createErr error
		created, createErr = client.CreateRepository(ctx, details)
		return createErr
	})
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "Created remote repository",
		"name", created.Name,
		"url", created.HTMLURL,
		"private", details.Private())
	return created.SSHURL, nil
}

func (s *RemoteService) defaultName(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	dir := s.workDir
	if dir == "" {
		wd, err := s.fs.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	return filepath.Base(dir), nil
}
