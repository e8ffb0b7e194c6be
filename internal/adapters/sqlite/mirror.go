package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"slackgraph/internal/application"
	"slackgraph/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion stamps a mirror store at first initialization. It never
// changes for the life of that store file; a store carrying any other
// version is incompatible and refused.
const SchemaVersion = "slack_mirror_v0"

// metaConfig is the stable-serialized payload of the meta singleton row.
type metaConfig struct {
	Version string `json:"version"`
}

// contentSchema holds the mirrored-entity tables, created once on a
// pristine store inside the initialization transaction.
const contentSchema = `
	CREATE TABLE channels (
		channel_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL
	);
	CREATE TABLE members (
		user_id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT NOT NULL
	);
	CREATE TABLE messages (
		channel_id TEXT NOT NULL,
		timestamp_ms TEXT NOT NULL,
		author_id TEXT NOT NULL,
		message_body TEXT,
		thread BOOLEAN,
		in_reply_to TEXT,
		PRIMARY KEY (channel_id, timestamp_ms),
		FOREIGN KEY (author_id) REFERENCES members (user_id)
	);
	CREATE TABLE message_reactions (
		message_id TEXT NOT NULL,
		reaction_name TEXT,
		reactor TEXT,
		FOREIGN KEY (reactor) REFERENCES members (user_id)
	);
	CREATE TABLE message_mentions (
		message_id TEXT NOT NULL,
		mentioned_user_id TEXT NOT NULL
	);
`

// Mirror owns one exclusively-held SQLite store of mirrored workspace
// entities. Rows are written by the import path and read-only everywhere
// else. Implements ports.Mirror.
type Mirror struct {
	db   *sql.DB
	path string
	inTx bool
}

var _ ports.Mirror = (*Mirror)(nil)

// New wraps an existing database handle. The mirror must be the handle's
// only user; no concurrent access is protected against.
func New(db *sql.DB, path string) (*Mirror, error) {
	if db == nil {
		return nil, errors.New("sqlite: missing database handle")
	}
	m := &Mirror{db: db, path: path}
	if err := m.initialize(); err != nil {
		return nil, err
	}
	return m, nil
}

// Open opens (creating if needed) the mirror store at path and guarantees
// it is either pristine or stamped with the expected schema version.
func Open(path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	m, err := New(db, path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// Close closes the database connection
func (m *Mirror) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// initialize brings the store to the Ready state within one atomic
// transaction: stamp and create tables on a pristine store, no-op on a
// store already at the expected version, fail on anything else.
func (m *Mirror) initialize() error {
	return m.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS meta (
				zero INTEGER PRIMARY KEY,
				config TEXT NOT NULL
			)
		`); err != nil {
			return fmt.Errorf("failed to create meta table: %w", err)
		}

		var stored string
		err := tx.QueryRow(`SELECT config FROM meta WHERE zero = 0`).Scan(&stored)
		if err == sql.ErrNoRows {
			return m.bootstrap(tx)
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		var cfg metaConfig
		if err := json.Unmarshal([]byte(stored), &cfg); err != nil {
			return fmt.Errorf("failed to parse meta config: %w", err)
		}
		if cfg.Version != SchemaVersion {
			return &application.VersionMismatchError{
				Path:     m.path,
				Stored:   cfg.Version,
				Expected: SchemaVersion,
			}
		}
		// Already initialized at the expected version.
		return nil
	})
}

// bootstrap stamps the version and creates the content tables. Runs only
// on a pristine store.
func (m *Mirror) bootstrap(tx *sql.Tx) error {
	config, err := json.Marshal(metaConfig{Version: SchemaVersion})
	if err != nil {
		return fmt.Errorf("failed to serialize meta config: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO meta (zero, config) VALUES (0, ?)`, string(config)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}
	if _, err := tx.Exec(contentSchema); err != nil {
		return fmt.Errorf("failed to create content tables: %w", err)
	}
	return nil
}
