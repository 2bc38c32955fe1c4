package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/internal/testutil"
)

var testOptions = Options{
	AuthorName:  "Secretariat Test",
	AuthorEmail: "test@example.com",
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	adapter := NewAdapter(dir, testOptions, testutil.Logger())

	ok, err := adapter.IsRepository(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, adapter.Init(ctx))

	ok, err = adapter.IsRepository(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInit_UsesDefaultBranch(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	adapter := NewAdapter(dir, testOptions, testutil.Logger())

	require.NoError(t, adapter.Init(ctx))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Storer.Reference(plumbing.HEAD)
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), head.Target())
}

func TestInit_FailsOnExistingRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	err = NewAdapter(dir, testOptions, testutil.Logger()).Init(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize repository")
}

func TestSetupAndPushToBareRemote(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	remoteDir := t.TempDir()

	_, err := git.PlainInit(remoteDir, true)
	require.NoError(t, err)

	writeFile(t, dir, "a.txt", "hello\n")
	writeFile(t, dir, "node_modules/left-pad/index.js", "module.exports = 1\n")
	writeFile(t, dir, ".gitignore", "node_modules")

	adapter := NewAdapter(dir, testOptions, testutil.Logger())
	require.NoError(t, adapter.Init(ctx))
	require.NoError(t, adapter.Add(ctx, ".gitignore"))
	require.NoError(t, adapter.Add(ctx, "."))
	require.NoError(t, adapter.Commit(ctx, "Initial commit"))
	require.NoError(t, adapter.AddRemote(ctx, "origin", remoteDir))
	require.NoError(t, adapter.Push(ctx, "origin", "main"))

	bare, err := git.PlainOpen(remoteDir)
	require.NoError(t, err)

	ref, err := bare.Reference(plumbing.NewBranchReferenceName("main"), true)
	require.NoError(t, err)

	commit, err := bare.CommitObject(ref.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Initial commit", commit.Message)
	assert.Equal(t, "Secretariat Test", commit.Author.Name)

	tree, err := commit.Tree()
	require.NoError(t, err)

	_, err = tree.File("a.txt")
	require.NoError(t, err)
	_, err = tree.File(".gitignore")
	require.NoError(t, err)
	_, err = tree.File("node_modules/left-pad/index.js")
	assert.Error(t, err, "ignored files must not be committed")

	// Pushing again is a no-op, not a failure.
	require.NoError(t, adapter.Push(ctx, "origin", "main"))
}

func TestAddRemote_Duplicate(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(t.TempDir(), testOptions, testutil.Logger())
	require.NoError(t, adapter.Init(ctx))
	require.NoError(t, adapter.AddRemote(ctx, "origin", "git@github.com:octocat/hello-world.git"))

	err := adapter.AddRemote(ctx, "origin", "git@github.com:octocat/other.git")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add remote origin")
}

func TestPush_UnknownRemote(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(t.TempDir(), testOptions, testutil.Logger())
	require.NoError(t, adapter.Init(ctx))

	err := adapter.Push(ctx, "origin", "main")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get remote origin")
}

func TestOperationsWithoutRepository(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(t.TempDir(), testOptions, testutil.Logger())

	require.Error(t, adapter.Add(ctx, "."))
	require.Error(t, adapter.Commit(ctx, "Initial commit"))
	require.Error(t, adapter.AddRemote(ctx, "origin", "/tmp/remote"))
}
