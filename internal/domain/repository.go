package domain

import "context"

// Visibility of a remote repository.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// RepoDetails describes the remote repository to create.
type RepoDetails struct {
	Name        string
	Description string
	Visibility  Visibility
}

// Private reports whether the repository should be created private.
func (d RepoDetails) Private() bool {
	return d.Visibility == VisibilityPrivate
}

// RemoteRepository is what the provider hands back after creation.
type RemoteRepository struct {
	Name     string
	HTMLURL  string
	CloneURL string
	SSHURL   string
}

// RepositoryCreator creates repositories for the authenticated user.
type RepositoryCreator interface {
	CreateRepository(ctx context.Context, details RepoDetails) (RemoteRepository, error)
}

// RepositoryClientFactory binds a RepositoryCreator to an access token.
type RepositoryClientFactory func(token string) RepositoryCreator

// LocalVCS drives the local version-control working directory.
type LocalVCS interface {
	IsRepository(ctx context.Context) (bool, error)
	Init(ctx context.Context) error
	Add(ctx context.Context, path string) error
	Commit(ctx context.Context, message string) error
	AddRemote(ctx context.Context, name, url string) error
	Push(ctx context.Context, remote, branch string) error
}
