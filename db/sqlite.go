package db

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type SqliteStore struct {
	DB *sqlx.DB
}

func NewSqliteStore(dsn string) (*SqliteStore, error) {
	database, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &SqliteStore{
		DB: database,
	}, nil
}

func (s *SqliteStore) ApplyMigrations(migrations embed.FS) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return err
	}

	if err := goose.Up(s.DB.DB, "."); err != nil {
		return err
	}

	return nil
}

func (s *SqliteStore) GetValue(key string) (string, error) {
	var value string
	err := s.DB.Get(&value, "SELECT value FROM keyvalue WHERE id = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SqliteStore) SetValue(key, value string) error {
	query := `
	INSERT INTO keyvalue (id, value)
	VALUES (?, ?)
	ON CONFLICT (id) DO UPDATE SET
	value = excluded.value
	WHERE id = ?
	`
	_, err := s.DB.Exec(query, key, value, key)
	return err
}

func (s *SqliteStore) DeleteValue(key string) error {
	_, err := s.DB.Exec("DELETE FROM keyvalue WHERE id = ?", key)
	return err
}

func (s *SqliteStore) Close() error {
	return s.DB.Close()
}
