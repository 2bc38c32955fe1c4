// Package errors provides custom error types and utilities for secretariat.
//
// This package provides error handling for the bootstrap pipeline including:
// - Credential errors
// - Authorization errors
// - Remote repository and conflict errors
// - Local VCS errors
// - Filesystem errors
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error categories for secretariat operations
var (
	ErrCredential        = errors.New("credential error")
	ErrAuthorization     = errors.New("authorization error")
	ErrRemoteConflict    = errors.New("remote conflict")
	ErrRemoteRepository  = errors.New("remote repository error")
	ErrLocalVCS          = errors.New("local vcs error")
	ErrFilesystem        = errors.New("filesystem error")
	ErrAlreadyRepository = errors.New("already a git repository")
)

// CredentialError represents a failed credential exchange
type CredentialError struct {
	Username string
	Message  string
	Err      error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

func (e *CredentialError) Is(target error) bool {
	return target == ErrCredential
}

// NewCredentialError creates a new credential error
func NewCredentialError(username, message string, err error) *CredentialError {
	return &CredentialError{
		Username: username,
		Message:  message,
		Err:      err,
	}
}

// AuthorizationError represents a rejected or unauthenticated remote call
type AuthorizationError struct {
	Operation string
	Err       error
}

func (e *AuthorizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not authorized to %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("not authorized to %s", e.Operation)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}

func (e *AuthorizationError) Is(target error) bool {
	return target == ErrAuthorization
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(operation string, err error) *AuthorizationError {
	return &AuthorizationError{
		Operation: operation,
		Err:       err,
	}
}

// RemoteConflictError represents a name or token collision on the provider
type RemoteConflictError struct {
	Resource string
	Name     string
	Err      error
}

func (e *RemoteConflictError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Resource, e.Name)
}

func (e *RemoteConflictError) Unwrap() error {
	return e.Err
}

func (e *RemoteConflictError) Is(target error) bool {
	return target == ErrRemoteConflict
}

// NewRemoteConflictError creates a new conflict error
func NewRemoteConflictError(resource, name string, err error) *RemoteConflictError {
	return &RemoteConflictError{
		Resource: resource,
		Name:     name,
		Err:      err,
	}
}

// RemoteRepositoryError represents any other failed remote call
type RemoteRepositoryError struct {
	Operation string
	Err       error
}

func (e *RemoteRepositoryError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Operation, e.Err)
}

func (e *RemoteRepositoryError) Unwrap() error {
	return e.Err
}

func (e *RemoteRepositoryError) Is(target error) bool {
	return target == ErrRemoteRepository
}

// NewRemoteRepositoryError creates a new remote repository error
func NewRemoteRepositoryError(operation string, err error) *RemoteRepositoryError {
	return &RemoteRepositoryError{
		Operation: operation,
		Err:       err,
	}
}

// LocalVCSError represents a failed step of the local repository setup
type LocalVCSError struct {
	Step string
	Err  error
}

func (e *LocalVCSError) Error() string {
	return fmt.Sprintf("git %s failed: %v", e.Step, e.Err)
}

func (e *LocalVCSError) Unwrap() error {
	return e.Err
}

func (e *LocalVCSError) Is(target error) bool {
	return target == ErrLocalVCS
}

// NewLocalVCSError creates a new local VCS error
func NewLocalVCSError(step string, err error) *LocalVCSError {
	return &LocalVCSError{
		Step: step,
		Err:  err,
	}
}

// FilesystemError represents a failed filesystem operation
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}

// NewFilesystemError creates a new filesystem error
func NewFilesystemError(op, path string, err error) *FilesystemError {
	return &FilesystemError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// HTTPError represents an HTTP-related error
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d %s %s: %s", e.StatusCode, e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d %s %s", e.StatusCode, e.Method, e.URL)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, method, url, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Message:    message,
	}
}

// NewHTTPErrorWithCause creates a new HTTP error with an underlying cause
func NewHTTPErrorWithCause(statusCode int, method, url, message string, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Message:    message,
		Err:        err,
	}
}

// IsHTTPStatus checks if an error represents a specific HTTP status
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}

// Kind classifies an error for reporting.
type Kind string

const (
	KindNone             Kind = ""
	KindPrecondition     Kind = "precondition"
	KindCredential       Kind = "credential"
	KindAuthorization    Kind = "authorization"
	KindRemoteConflict   Kind = "remote_conflict"
	KindRemoteRepository Kind = "remote_repository"
	KindLocalVCS         Kind = "local_vcs"
	KindFilesystem       Kind = "filesystem"
	KindUnknown          Kind = "unknown"
)

// KindOf returns the taxonomy kind of err. Typed errors win over raw HTTP
// statuses so a wrapped 401 inside a CredentialError stays a credential failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAlreadyRepository):
		return KindPrecondition
	case errors.Is(err, ErrCredential):
		return KindCredential
	case errors.Is(err, ErrAuthorization):
		return KindAuthorization
	case errors.Is(err, ErrRemoteConflict):
		return KindRemoteConflict
	case errors.Is(err, ErrRemoteRepository):
		return KindRemoteRepository
	case errors.Is(err, ErrLocalVCS):
		return KindLocalVCS
	case errors.Is(err, ErrFilesystem):
		return KindFilesystem
	case IsHTTPStatus(err, http.StatusUnauthorized):
		return KindAuthorization
	case IsHTTPStatus(err, http.StatusUnprocessableEntity):
		return KindRemoteConflict
	default:
		return KindUnknown
	}
}

// IsCredential checks if an error is credential-related
func IsCredential(err error) bool {
	return errors.Is(err, ErrCredential)
}

// IsUnauthorized checks if an error represents an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrAuthorization) || IsHTTPStatus(err, http.StatusUnauthorized)
}

// IsConflict checks if an error represents a name or token collision
func IsConflict(err error) bool {
	return errors.Is(err, ErrRemoteConflict) || IsHTTPStatus(err, http.StatusUnprocessableEntity)
}
