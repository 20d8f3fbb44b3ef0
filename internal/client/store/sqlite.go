package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/sightpass/sightpass/internal/client/migrations"
	"github.com/sightpass/sightpass/internal/client/models"
	"github.com/sightpass/sightpass/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore keeps the session in a local sqlite database, one row per key.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the sqlite database at dsn and brings the schema up to
// date. The returned handle is owned by the caller.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	value, err := get(ctx, s.db, keyToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *SQLiteStore) User(ctx context.Context) (*models.User, error) {
	value, err := get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(value, &u); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) SaveToken(ctx context.Context, token string) error {
	return set(ctx, s.db, keyToken, []byte(token))
}

func (s *SQLiteStore) SaveUser(ctx context.Context, u *models.User) error {
	value, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return set(ctx, s.db, keyUser, value)
}

// SaveSession writes token and user in a single transaction so a crash can
// never leave one key updated without the other.
func (s *SQLiteStore) SaveSession(ctx context.Context, token string, u *models.User) error {
	value, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, value)
	})
}

// Clear removes both keys in a single transaction. The token and the cached
// user are never deleted independently.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM session`)
		if err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}
