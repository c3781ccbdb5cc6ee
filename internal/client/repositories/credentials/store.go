// Package credentials persists the one remembered account used for silent
// re-login. The password is sealed with a key derived from a per-install
// secret kept in the metadata table.
package credentials

import (
	"context"
	"errors"
	"sync"
)

// ErrCorrupted is returned by Load when a record exists but cannot be opened.
var ErrCorrupted = errors.New("stored credentials are unreadable")

// StoredCredentials is the remembered account.
type StoredCredentials struct {
	Username string
	Password string
}

// Store is read once at startup, written only when the user opts in, and
// erased on logout or on a failed silent login.
type Store interface {
	// Load returns nil, nil when nothing is stored.
	Load(ctx context.Context) (*StoredCredentials, error)
	Save(ctx context.Context, creds StoredCredentials) error
	Erase(ctx context.Context) error
}

// MemoryStore keeps credentials for the life of the process. It is used when
// no database path is configured.
type MemoryStore struct {
	mu    sync.Mutex
	creds *StoredCredentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (*StoredCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, creds StoredCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}

func (s *MemoryStore) Erase(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
