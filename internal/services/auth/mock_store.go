package auth

// MockStore is an in-memory key store for testing.
type MockStore struct {
	keys map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{keys: make(map[string]string)}
}

func (m *MockStore) SetKey(backend string, key string) error {
	m.keys[backend] = key
	return nil
}

func (m *MockStore) GetKey(backend string) (string, error) {
	key, ok := m.keys[backend]
	if !ok {
		return "", ErrKeyNotFound
	}
	return key, nil
}

func (m *MockStore) DeleteKey(backend string) error {
	if _, ok := m.keys[backend]; !ok {
		return ErrKeyNotFound
	}
	delete(m.keys, backend)
	return nil
}
