package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetKey(backend string, key string) error {
	backendKey := NormalizeBackend(backend)
	return keyring.Set(k.serviceName, backendKey, key)
}

func (k *KeyringStore) GetKey(backend string) (string, error) {
	backendKey := NormalizeBackend(backend)
	key, err := keyring.Get(k.serviceName, backendKey)
	if err == nil {
		return key, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteKey(backend string) error {
	backendKey := NormalizeBackend(backend)
	err := keyring.Delete(k.serviceName, backendKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	return err
}
