package modules

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache is the on-disk object-file cache of §B: a single-table SQLite
// database keyed by module path, storing the modification time the
// cached blob was built against and the encoded signature.Encode
// bytes. A cache hit at an unchanged mtime lets the loader skip
// recompiling a module's transitive dependencies across process runs.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) the SQLite cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("modules: opening cache %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS signatures (
		path TEXT PRIMARY KEY,
		mtime INTEGER NOT NULL,
		blob BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("modules: creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Get returns the cached blob for path if its stored mtime matches.
func (c *Cache) Get(path string, mtime int64) (blob []byte, ok bool, err error) {
	row := c.db.QueryRow(`SELECT blob FROM signatures WHERE path = ? AND mtime = ?`, path, mtime)
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("modules: reading cache entry for %s: %w", path, err)
	}
	return blob, true, nil
}

// Put stores or replaces the cached blob for path.
func (c *Cache) Put(path string, mtime int64, blob []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO signatures (path, mtime, blob) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET mtime = excluded.mtime, blob = excluded.blob`,
		path, mtime, blob,
	)
	if err != nil {
		return fmt.Errorf("modules: writing cache entry for %s: %w", path, err)
	}
	return nil
}
