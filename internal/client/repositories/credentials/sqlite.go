package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medmate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/medmate/internal/common"
	"github.com/dmitrijs2005/medmate/internal/cryptox"
	"github.com/dmitrijs2005/medmate/internal/dbx"
)

const (
	installSecretKey  = "install_secret"
	installSecretSize = 32
	saltSize          = 16
)

// SQLiteStore keeps StoredCredentials in the stored_credentials table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (*StoredCredentials, error) {
	var (
		username     string
		salt, sealed []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT username, salt, sealed_password FROM stored_credentials WHERE id = 1`,
	).Scan(&username, &salt, &sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stored credentials: %w", err)
	}

	secret, err := metadata.NewSQLiteRepository(s.db).Get(ctx, installSecretKey)
	if err != nil {
		return nil, err
	}
	if secret == nil {
		return nil, fmt.Errorf("%w: install secret missing", ErrCorrupted)
	}

	key, err := cryptox.DeriveKey(secret, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer common.WipeByteArray(key)

	password, err := cryptox.Open(key, sealed, []byte(username))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer common.WipeByteArray(password)

	return &StoredCredentials{Username: username, Password: string(password)}, nil
}

// Save replaces any stored record. The install secret is created on first use.
func (s *SQLiteStore) Save(ctx context.Context, creds StoredCredentials) error {
	if creds.Username == "" || creds.Password == "" {
		return errors.New("username and password are required")
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		secret, err := installSecret(ctx, metadata.NewSQLiteRepository(tx))
		if err != nil {
			return err
		}

		salt := common.GenerateRandByteArray(saltSize)
		key, err := cryptox.DeriveKey(secret, salt)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(key)

		plaintext := []byte(creds.Password)
		defer common.WipeByteArray(plaintext)

		sealed, err := cryptox.Seal(key, plaintext, []byte(creds.Username))
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO stored_credentials (id, username, salt, sealed_password, saved_at)
			VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET
				username = excluded.username,
				salt = excluded.salt,
				sealed_password = excluded.sealed_password,
				saved_at = excluded.saved_at
		`, creds.Username, salt, sealed)
		if err != nil {
			return fmt.Errorf("failed to save stored credentials: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) Erase(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM stored_credentials`); err != nil {
		return fmt.Errorf("failed to erase stored credentials: %w", err)
	}
	return nil
}

func installSecret(ctx context.Context, repo metadata.Repository) ([]byte, error) {
	return repo.GetOrCreate(ctx, installSecretKey, func() ([]byte, error) {
		return common.GenerateRandByteArray(installSecretSize), nil
	})
}
