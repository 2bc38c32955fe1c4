// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	"secretariat/internal/domain"
)

type cleanuper interface {
	mock.TestingT
	Cleanup(func())
}

// MockCredentialStore is a mock of domain.CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

// NewMockCredentialStore creates a mock that asserts its expectations on cleanup.
func NewMockCredentialStore(t cleanuper) *MockCredentialStore {
	m := &MockCredentialStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCredentialStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCredentialStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockTokenExchanger is a mock of domain.TokenExchanger.
type MockTokenExchanger struct {
	mock.Mock
}

// NewMockTokenExchanger creates a mock that asserts its expectations on cleanup.
func NewMockTokenExchanger(t cleanuper) *MockTokenExchanger {
	m := &MockTokenExchanger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenExchanger) Exchange(ctx context.Context, credential domain.Credential) (domain.ExchangeResult, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(domain.ExchangeResult), args.Error(1)
}

func (m *MockTokenExchanger) Resume(
	ctx context.Context,
	challenge domain.SecondFactorChallenge,
	code string,
) (domain.ExchangeResult, error) {
	args := m.Called(ctx, challenge, code)
	return args.Get(0).(domain.ExchangeResult), args.Error(1)
}

// MockPrompter is a mock of domain.Prompter.
type MockPrompter struct {
	mock.Mock
}

// NewMockPrompter creates a mock that asserts its expectations on cleanup.
func NewMockPrompter(t cleanuper) *MockPrompter {
	m := &MockPrompter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPrompter) Input(ctx context.Context, q domain.Question) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) Password(ctx context.Context, q domain.Question) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) Select(ctx context.Context, title string, options []string, defaultValue string) (string, error) {
	args := m.Called(ctx, title, options, defaultValue)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) MultiSelect(ctx context.Context, title string, options, defaults []string) ([]string, error) {
	args := m.Called(ctx, title, options, defaults)
	selected, _ := args.Get(0).([]string)
	return selected, args.Error(1)
}

// MockRepositoryCreator is a mock of domain.RepositoryCreator.
type MockRepositoryCreator struct {
	mock.Mock
}

// NewMockRepositoryCreator creates a mock that asserts its expectations on cleanup.
func NewMockRepositoryCreator(t cleanuper) *MockRepositoryCreator {
	m := &MockRepositoryCreator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepositoryCreator) CreateRepository(
	ctx context.Context,
	details domain.RepoDetails,
) (domain.RemoteRepository, error) {
	args := m.Called(ctx, details)
	return args.Get(0).(domain.RemoteRepository), args.Error(1)
}

// MockLocalVCS is a mock of domain.LocalVCS.
type MockLocalVCS struct {
	mock.Mock
}

// NewMockLocalVCS creates a mock that asserts its expectations on cleanup.
func NewMockLocalVCS(t cleanuper) *MockLocalVCS {
	m := &MockLocalVCS{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLocalVCS) IsRepository(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocalVCS) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLocalVCS) Add(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockLocalVCS) Commit(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockLocalVCS) AddRemote(ctx context.Context, name, url string) error {
	return m.Called(ctx, name, url).Error(0)
}

func (m *MockLocalVCS) Push(ctx context.Context, remote, branch string) error {
	return m.Called(ctx, remote, branch).Error(0)
}

// MockFileSystemAdapter is a mock of domain.FileSystemAdapter.
type MockFileSystemAdapter struct {
	mock.Mock
}

// NewMockFileSystemAdapter creates a mock that asserts its expectations on cleanup.
func NewMockFileSystemAdapter(t cleanuper) *MockFileSystemAdapter {
	m := &MockFileSystemAdapter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileSystemAdapter) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockFileSystemAdapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return m.Called(path, data, perm).Error(0)
}

func (m *MockFileSystemAdapter) Touch(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockFileSystemAdapter) ReadDirNames(path string) ([]string, error) {
	args := m.Called(path)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockFileSystemAdapter) MkdirAll(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) Stat(path string) (os.FileInfo, error) {
	args := m.Called(path)
	info, _ := args.Get(0).(os.FileInfo)
	return info, args.Error(1)
}

func (m *MockFileSystemAdapter) UserHomeDir() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockFileSystemAdapter) Getwd() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

var (
	_ domain.CredentialStore    = (*MockCredentialStore)(nil)
	_ domain.TokenExchanger     = (*MockTokenExchanger)(nil)
	_ domain.Prompter           = (*MockPrompter)(nil)
	_ domain.RepositoryCreator  = (*MockRepositoryCreator)(nil)
	_ domain.LocalVCS           = (*MockLocalVCS)(nil)
	_ domain.FileSystemAdapter  = (*MockFileSystemAdapter)(nil)
)
