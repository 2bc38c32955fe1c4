package commands

import (
	"context"
	"fmt"
	"log/slog"

	"secretariat/internal/domain"
	"secretariat/internal/errors"
)

// Stage is a step of the bootstrap run.
type Stage string

const (
	StageStart                 Stage = "start"
	StagePreconditionCheck     Stage = "precondition_check"
	StageResolvingCredentials  Stage = "resolving_credentials"
	StageAuthenticating        Stage = "authenticating"
	StageCreatingRemote        Stage = "creating_remote"
	StageWritingIgnoreFile     Stage = "writing_ignore_file"
	StageInitializingLocalRepo Stage = "initializing_local_repo"
	StagePushed                Stage = "pushed"
	StageFailed                Stage = "failed"
)

const (
	msgAlreadyRepository = "Already a Git repository!"
	msgLoginFailed       = "Couldn't log you in. Please provide correct credentials/token."
	msgConflict          = "There is already a remote repository or token with the same name"
	msgDone              = "All done!"
)

// TokenResolver returns an access token for the provider.
type TokenResolver interface {
	GetToken(ctx context.Context) (string, error)
}

// Authenticator binds the provider session to a token.
type Authenticator interface {
	Auth(token string)
}

// RemoteCreator asks for repository details and creates the remote.
type RemoteCreator interface {
	PromptRepoDetails(ctx context.Context, args []string) (domain.RepoDetails, error)
	CreateRemoteRepo(ctx context.Context, details domain.RepoDetails) (string, error)
}

// LocalInitializer prepares and pushes the local repository.
type LocalInitializer interface {
	CreateGitignore(ctx context.Context) error
	SetupRepo(ctx context.Context, remoteURL string) error
}

// BootstrapCommand turns the working directory into a repository pushed to
// a freshly created GitHub remote.
type BootstrapCommand struct {
	vcs      domain.LocalVCS
	resolver TokenResolver
	session  Authenticator
	remote   RemoteCreator
	local    LocalInitializer
	reporter domain.Reporter
	logger   *slog.Logger
}

// NewBootstrapCommand creates a new bootstrap command.
func NewBootstrapCommand(
	vcs domain.LocalVCS,
	resolver TokenResolver,
	session Authenticator,
	remote RemoteCreator,
	local LocalInitializer,
	reporter domain.Reporter,
	logger *slog.Logger,
) *BootstrapCommand {
	return &BootstrapCommand{
		vcs:      vcs,
		resolver: resolver,
		session:  session,
		remote:   remote,
		local:    local,
		reporter: reporter,
		logger:   logger,
	}
}

// BootstrapRequest contains the parameters for the bootstrap command.
type BootstrapRequest struct {
	// Args are the positional arguments: [name] [description].
	Args []string
}

// Result is the terminal state of a run.
type Result struct {
	Stage Stage
	// FailedAt is the stage that failed when Stage is StageFailed.
	FailedAt Stage
	Kind     errors.Kind
	Err      error
}

// OK reports whether the run reached StagePushed.
func (r Result) OK() bool {
	return r.Stage == StagePushed
}

// Execute runs the stages in order and stops at the first failure.
func (c *BootstrapCommand) Execute(ctx context.Context, req BootstrapRequest) Result {
	stage := StageStart
	fail := func(err error) Result {
		kind := errors.KindOf(err)
		c.logger.DebugContext(ctx, "Bootstrap failed", "stage", string(stage), "kind", string(kind), "error", err)
		c.reporter.Error(Message(err))
		return Result{Stage: StageFailed, FailedAt: stage, Kind: kind, Err: err}
	}

	stage = StagePreconditionCheck
	isRepo, err := c.vcs.IsRepository(ctx)
	if err != nil {
		return fail(errors.NewLocalVCSError("status", err))
	}
	if isRepo {
		return fail(errors.ErrAlreadyRepository)
	}

	stage = StageResolvingCredentials
	token, err := c.resolver.GetToken(ctx)
	if err != nil {
		return fail(err)
	}

	stage = StageAuthenticating
	c.session.Auth(token)

	stage = StageCreatingRemote
	details, err := c.remote.PromptRepoDetails(ctx, req.Args)
	if err != nil {
		return fail(err)
	}
	remoteURL, err := c.remote.CreateRemoteRepo(ctx, details)
	if err != nil {
		return fail(err)
	}

	stage = StageWritingIgnoreFile
	if err := c.local.CreateGitignore(ctx); err != nil {
		return fail(err)
	}

	stage = StageInitializingLocalRepo
	if err := c.local.SetupRepo(ctx, remoteURL); err != nil {
		return fail(err)
	}

	c.logger.InfoContext(ctx, "Bootstrap complete", "remote", remoteURL)
	c.reporter.Success(msgDone)
	return Result{Stage: StagePushed, Kind: errors.KindNone}
}

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.KindOf(err) == errors.KindPrecondition:
		return msgAlreadyRepository
	case errors.IsUnauthorized(err):
		return msgLoginFailed
	case errors.IsConflict(err):
		return msgConflict
	default:
		return err.Error()
	}
}

// String renders the result for logs.
func (r Result) String() string {
	if r.Err == nil {
		return string(r.Stage)
	}
	return fmt.Sprintf("%s at %s (%s): %v", r.Stage, r.FailedAt, r.Kind, r.Err)
}
