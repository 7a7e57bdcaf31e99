// Package auth stores LLM API keys in the OS keychain, with environment
// variables taking precedence so CI and scripts never touch the keychain.
package auth

import (
	"errors"
	"os"

	"vmops/internal/util"
)

const ServiceName = "vmops"

var ErrKeyNotFound = errors.New("api key not found")

type Store interface {
	SetKey(backend string, key string) error
	GetKey(backend string) (string, error)
	DeleteKey(backend string) error
}

// DefaultStore returns the standard key store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeBackend normalizes a backend name for consistent key lookup.
func NormalizeBackend(backend string) string {
	return util.NormalizeKey(backend)
}

// envVars maps backend names to the environment variable consulted
// before the keychain.
var envVars = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"gemini":     "GEMINI_API_KEY",
}

// EnvVar returns the environment variable name for a backend, or ""
// when the backend has none.
func EnvVar(backend string) string {
	return envVars[NormalizeBackend(backend)]
}

// ResolveKey returns the API key for a backend. The backend's
// environment variable wins when set; otherwise the store is consulted.
func ResolveKey(store Store, backend string) (string, error) {
	if env := EnvVar(backend); env != "" {
		if key := os.Getenv(env); key != "" {
			return key, nil
		}
	}
	return store.GetKey(backend)
}
