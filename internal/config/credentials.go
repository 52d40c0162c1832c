package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name for OS credential store
	credentialService = "legalcn"
	// Key for the Tianyancha background-check API key
	tianyanchaKeyName = "tianyancha_api_key"

	// Env var override; env always wins over the credential store so
	// containerized deployments work without a keyring daemon.
	tianyanchaEnvVar = "TIANYANCHA_API_KEY"
)

// CredentialManager handles secure storage and retrieval of the external
// background-check API key.
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a new credential manager instance
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{
		service: credentialService,
	}
}

// StoreAPIKey securely stores the background-check API key in the OS
// credential store.
func (cm *CredentialManager) StoreAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	// Tianyancha keys are opaque tokens; length is the only sanity check.
	if len(strings.TrimSpace(key)) < 10 {
		return fmt.Errorf("API key looks too short to be valid")
	}

	if err := keyring.Set(cm.service, tianyanchaKeyName, key); err != nil {
		return fmt.Errorf("failed to store API key in credential store: %w", err)
	}

	return nil
}

// GetAPIKey retrieves the stored background-check API key from the OS
// credential store.
func (cm *CredentialManager) GetAPIKey() (string, error) {
	key, err := keyring.Get(cm.service, tianyanchaKeyName)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no API key stored")
		}
		return "", fmt.Errorf("failed to retrieve API key from credential store: %w", err)
	}

	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("stored API key is empty")
	}

	return key, nil
}

// DeleteAPIKey removes the stored API key. Useful for key rotation.
// Returns nil if no key is stored.
func (cm *CredentialManager) DeleteAPIKey() error {
	err := keyring.Delete(cm.service, tianyanchaKeyName)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete API key from credential store: %w", err)
	}
	return nil
}

// HasAPIKey checks if an API key is available without returning it.
func (cm *CredentialManager) HasAPIKey() bool {
	if os.Getenv(tianyanchaEnvVar) != "" {
		return true
	}
	_, err := cm.GetAPIKey()
	return err == nil
}

// ResolveAPIKey returns the background-check API key from the environment
// first, then the OS credential store. Empty string means unconfigured,
// which is a fully supported mode: only external enrichment is disabled.
func ResolveAPIKey() string {
	if key := os.Getenv(tianyanchaEnvVar); key != "" {
		return key
	}

	key, err := NewCredentialManager().GetAPIKey()
	if err != nil {
		return ""
	}
	return key
}
