// internal/store/sqlite.go
package store

import (
	"database/sql"
	"encoding/json"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore is the durable gateway implementation, one row per logical key.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLite(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(key Key, v any) error {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", string(key)).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

// Set writes a key. On failure it evicts the non-essential preference keys
// and retries once; a repeat failure is returned to the caller, which treats
// it as best-effort (the session keeps running, resume-later may not work).
func (s *SQLiteStore) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if err := s.put(key, raw); err != nil {
		s.logger.Warn("write failed, evicting preferences and retrying", "key", key, "error", err)
		for _, k := range nonEssential {
			if k == key {
				continue
			}
			if _, delErr := s.db.Exec("DELETE FROM kv WHERE key = ?", string(k)); delErr != nil {
				s.logger.Warn("preference eviction failed", "key", k, "error", delErr)
			}
		}
		return s.put(key, raw)
	}
	return nil
}

func (s *SQLiteStore) put(key Key, raw []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		string(key), string(raw),
	)
	return err
}

func (s *SQLiteStore) Delete(key Key) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", string(key))
	return err
}
