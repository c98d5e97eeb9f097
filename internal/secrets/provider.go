// Package secrets abstracts where credential values come from so that
// configuration can be loaded from externally managed stores in production
// and from fixed maps in tests.
package secrets

import (
	"fmt"
	"os"
)

// Provider returns the plaintext value for a logical secret name.
type Provider interface {
	Get(name string) (string, error)
}

// EnvProvider resolves secrets from the process environment.
type EnvProvider struct{}

// Get returns the environment value for name, or an error if unset.
func (EnvProvider) Get(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("secret not found: %s", name)
	}
	return value, nil
}

// StaticProvider is a map-backed provider for tests.
type StaticProvider map[string]string

// Get returns the stored value for name, or an error if absent.
func (p StaticProvider) Get(name string) (string, error) {
	value, ok := p[name]
	if !ok {
		return "", fmt.Errorf("secret not found: %s", name)
	}
	return value, nil
}
