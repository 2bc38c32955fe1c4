package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

const sshUser = "git"

// errNoToken means no HTTPS token is available in the environment.
var errNoToken = errors.New("no GitHub token found (set GITHUB_TOKEN or GH_TOKEN)")

// resolveAuth picks the push credentials for remoteURL. Local paths and
// file URLs need none.
//
// SSH remotes try the agent first, then the configured key, then the
// default keys under ~/.ssh. HTTPS remotes use GITHUB_TOKEN or GH_TOKEN
// when set and otherwise push anonymously.
func resolveAuth(remoteURL, sshKeyPath string) (transport.AuthMethod, error) {
	switch {
	case isSSHURL(remoteURL):
		return resolveSSHAuth(sshKeyPath)
	case strings.HasPrefix(remoteURL, "https://"), strings.HasPrefix(remoteURL, "http://"):
		auth, err := resolveTokenAuth()
		if errors.Is(err, errNoToken) {
			return nil, nil
		}
		return auth, err
	default:
		return nil, nil
	}
}

func isSSHURL(remoteURL string) bool {
	if strings.HasPrefix(remoteURL, "ssh://") {
		return true
	}
	// scp-like syntax: git@github.com:owner/repo.git
	at := strings.Index(remoteURL, "@")
	colon := strings.Index(remoteURL, ":")
	return at > 0 && colon > at && !strings.Contains(remoteURL[:colon], "/")
}

func resolveSSHAuth(sshKeyPath string) (transport.AuthMethod, error) {
	if sshKeyPath == "" {
		if auth, err := ssh.NewSSHAgentAuth(sshUser); err == nil {
			return auth, nil
		}
	}

	keyPath := sshKeyPath
	if keyPath == "" {
		var err error
		keyPath, err = findDefaultSSHKey()
		if err != nil {
			return nil, fmt.Errorf("SSH key not found: %w", err)
		}
	}

	if strings.HasPrefix(keyPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		keyPath = filepath.Join(homeDir, keyPath[1:])
	}

	publicKeys, err := ssh.NewPublicKeysFromFile(sshUser, keyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from %s: %w", keyPath, err)
	}
	return publicKeys, nil
}

func resolveTokenAuth() (transport.AuthMethod, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}
	if token == "" {
		return nil, errNoToken
	}

	// GitHub ignores the username for token auth but it must be non-empty.
	return &http.BasicAuth{
		Username: "secretariat",
		Password: token,
	}, nil
}

func findDefaultSSHKey() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	keyTypes := []string{"id_ed25519", "id_rsa", "id_ecdsa"}
	for _, keyType := range keyTypes {
		keyPath := filepath.Join(homeDir, ".ssh", keyType)
		if _, err := os.Stat(keyPath); err == nil {
			return keyPath, nil
		}
	}

	return "", fmt.Errorf("no SSH keys found in ~/.ssh/ (tried: %v)", keyTypes)
}

// describeAuth names the auth method for logs without exposing secrets.
func describeAuth(auth transport.AuthMethod) string {
	switch auth.(type) {
	case nil:
		return "none"
	case *ssh.PublicKeys:
		return "SSH key"
	case *ssh.PublicKeysCallback:
		return "SSH agent"
	case *http.BasicAuth:
		return "HTTPS token"
	default:
		return auth.Name()
	}
}
