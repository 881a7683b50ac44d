package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/dbx"
)

const (
	keyToken    = "token"
	keySalt     = "salt"
	keyVerifier = "verifier"
)

var sessionKeys = []string{keyToken, keySalt, keyVerifier}

// SessionStore implements vault.SessionStore on the metadata table. Other
// keys in the table are left alone.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns the zero record when no token is stored.
func (s *SessionStore) Load(ctx context.Context) (models.SessionData, error) {
	values, err := NewSQLiteRepository(s.db).Get(ctx, sessionKeys...)
	if err != nil {
		return models.SessionData{}, err
	}
	if len(values[keyToken]) == 0 {
		return models.SessionData{}, nil
	}
	return models.SessionData{
		Token:    string(values[keyToken]),
		Salt:     values[keySalt],
		Verifier: values[keyVerifier],
	}, nil
}

// Save replaces the record in one transaction. An empty verifier removes
// any previous one.
func (s *SessionStore) Save(ctx context.Context, data models.SessionData) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)

		values := map[string][]byte{
			keyToken: []byte(data.Token),
			keySalt:  data.Salt,
		}
		if len(data.Verifier) == 0 {
			if err := repo.Delete(ctx, keyVerifier); err != nil {
				return err
			}
		} else {
			values[keyVerifier] = data.Verifier
		}
		return repo.Put(ctx, values)
	})
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return NewSQLiteRepository(s.db).Delete(ctx, sessionKeys...)
}
