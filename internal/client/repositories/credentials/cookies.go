package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/medmate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/medmate/internal/common"
	"github.com/dmitrijs2005/medmate/internal/cryptox"
	"github.com/dmitrijs2005/medmate/internal/dbx"
)

const sessionCookiesKey = "session_cookies"

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoadCookies returns the session cookies saved by the last process, or nil
// when there are none. The value is salt followed by the sealed cookie list.
func (s *SQLiteStore) LoadCookies(ctx context.Context) ([]*http.Cookie, error) {
	repo := metadata.NewSQLiteRepository(s.db)
	blob, err := repo.Get(ctx, sessionCookiesKey)
	if err != nil || blob == nil {
		return nil, err
	}
	if len(blob) <= saltSize {
		return nil, fmt.Errorf("%w: session cookies truncated", ErrCorrupted)
	}

	secret, err := repo.Get(ctx, installSecretKey)
	if err != nil {
		return nil, err
	}
	if secret == nil {
		return nil, fmt.Errorf("%w: install secret missing", ErrCorrupted)
	}

	key, err := cryptox.DeriveKey(secret, blob[:saltSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer common.WipeByteArray(key)

	plaintext, err := cryptox.Open(key, blob[saltSize:], []byte(sessionCookiesKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer common.WipeByteArray(plaintext)

	var stored []storedCookie
	if err := json.Unmarshal(plaintext, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}

// SaveCookies replaces the saved session cookies. An empty list removes them,
// which is what a logout response leaves in the jar.
func (s *SQLiteStore) SaveCookies(ctx context.Context, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return metadata.NewSQLiteRepository(s.db).Delete(ctx, sessionCookiesKey)
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	plaintext, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode session cookies: %w", err)
	}
	defer common.WipeByteArray(plaintext)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		secret, err := installSecret(ctx, repo)
		if err != nil {
			return err
		}

		salt := common.GenerateRandByteArray(saltSize)
		key, err := cryptox.DeriveKey(secret, salt)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(key)

		sealed, err := cryptox.Seal(key, plaintext, []byte(sessionCookiesKey))
		if err != nil {
			return err
		}
		return repo.Set(ctx, sessionCookiesKey, append(salt, sealed...))
	})
}
