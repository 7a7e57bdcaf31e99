package auth

import (
	"errors"
	"testing"
)

func TestResolveKey_EnvWins(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	store := NewMockStore()
	store.SetKey("openrouter", "stored-key")

	key, err := ResolveKey(store, "openrouter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "env-key" {
		t.Errorf("expected env key to win, got %q", key)
	}
}

func TestResolveKey_FallsBackToStore(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	store := NewMockStore()
	store.SetKey("openrouter", "stored-key")

	key, err := ResolveKey(store, "openrouter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "stored-key" {
		t.Errorf("expected stored key, got %q", key)
	}
}

func TestResolveKey_NotFound(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := ResolveKey(NewMockStore(), "gemini")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("OpenRouter"); got != "OPENROUTER_API_KEY" {
		t.Errorf("unexpected env var %q", got)
	}
	if got := EnvVar("exec"); got != "" {
		t.Errorf("expected no env var for exec backend, got %q", got)
	}
}

func TestMockStore_Delete(t *testing.T) {
	store := NewMockStore()
	store.SetKey("openrouter", "k")

	if err := store.DeleteKey("openrouter"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteKey("openrouter"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound on second delete, got %v", err)
	}
}
