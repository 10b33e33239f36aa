package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringUser  = "api-token"
	credFileName = ".credentials"

	// TokenEnv overrides any stored API token.
	TokenEnv = "BUBBLY_TOKEN"
)

// TokenSource names where an API token was found.
type TokenSource string

const (
	TokenSourceNone    TokenSource = ""
	TokenSourceEnv     TokenSource = "env"
	TokenSourceKeyring TokenSource = "keyring"
	TokenSourceFile    TokenSource = "file"
)

// DataDir returns the path to the data directory for logs and credentials.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/bubbly-todo/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, AppName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// GetToken retrieves the optional server API token.
// Priority: env var, system keyring, credentials file. An empty token with a
// nil error means none is configured; the server accepts anonymous requests.
func GetToken() (string, TokenSource, error) {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		return token, TokenSourceEnv, nil
	}

	if token, err := keyring.Get(AppName, keyringUser); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), TokenSourceKeyring, nil
	}

	credPath, err := credentialsPath()
	if err != nil {
		return "", TokenSourceNone, err
	}

	data, err := os.ReadFile(credPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", TokenSourceNone, nil
		}
		return "", TokenSourceNone, fmt.Errorf("failed to read credentials file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", TokenSourceNone, nil
	}
	return token, TokenSourceFile, nil
}

// SaveToken stores the API token in the system keyring, falling back to a
// owner-only credentials file when no keyring is available.
func SaveToken(token string) (TokenSource, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenSourceNone, fmt.Errorf("token cannot be empty")
	}

	if err := keyring.Set(AppName, keyringUser, token); err == nil {
		return TokenSourceKeyring, nil
	}

	credPath, err := credentialsPath()
	if err != nil {
		return TokenSourceNone, err
	}
	if err := os.WriteFile(credPath, []byte(token), 0600); err != nil {
		return TokenSourceNone, fmt.Errorf("failed to write credentials file: %w", err)
	}

	return TokenSourceFile, nil
}

// ClearToken removes the stored API token from the keyring and the credentials file.
func ClearToken() error {
	_ = keyring.Delete(AppName, keyringUser)

	credPath, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}

	return nil
}

func credentialsPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}
