package settings

import (
	"context"
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/pageplayer/internal/db"
)

// SQLiteStore keeps settings in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// Verify SQLiteStore implements Store at compile time.
var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the settings database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &SQLiteStore{db: conn}, nil
}

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);
	`)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return dbutil.NullStringValue(value), true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

func (s *SQLiteStore) SetMany(kv map[string]string) error {
	return dbutil.WithTx(context.Background(), s.db, func(tx *sql.Tx) error {
		for k, v := range kv {
			_, err := tx.Exec(`
				INSERT INTO settings (key, value, updated_at)
				VALUES (?, ?, strftime('%s', 'now'))
				ON CONFLICT(key) DO UPDATE SET
					value = excluded.value,
					updated_at = excluded.updated_at
			`, k, v)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
