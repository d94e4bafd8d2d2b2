package dlog

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import go-sqlite3 library
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/group"
)

// ErrBadSnapshot is returned by Load when the stored table is not a contiguous
// run of powers of G.
var ErrBadSnapshot = errors.New("Invalid discrete log snapshot")

// SQLiteStore keeps a snapshot of a Cache on disk so that a large table does not
// have to be rebuilt every time the process starts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the snapshot database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS dlog (
			exponent INTEGER NOT NULL PRIMARY KEY, -- i
			value BLOB NOT NULL                    -- G^i mod P, fixed width
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Count is the number of stored entries.
func (s *SQLiteStore) Count() (uint64, error) {
	var n uint64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM dlog`).Scan(&n)
	return n, err
}

// Save writes every entry of the cache that is not already stored.
func (s *SQLiteStore) Save(c *Cache) error {
	values := c.entries()
	stored, err := s.Count()
	if err != nil {
		return err
	}
	if stored >= uint64(len(values)) {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO dlog (exponent, value) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i := stored; i < uint64(len(values)); i++ {
		if _, err := stmt.Exec(i, values[i].Bytes()); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Uint64("from", stored).Int("to", len(values)).Msg("saved discrete log entries")
	return nil
}

// Load reads the snapshot into the cache. Entries past the cache maximum are
// ignored. Entry i must be G^i for every i with no gaps, otherwise nothing is
// loaded.
func (s *SQLiteStore) Load(c *Cache) error {
	rows, err := s.db.Query(`SELECT exponent, value FROM dlog WHERE exponent <= ? ORDER BY exponent ASC`, c.Max())
	if err != nil {
		return err
	}
	defer rows.Close()

	var values []*group.ElementModP
	expected := group.OneModP()
	var exponent uint64
	var raw []byte
	for rows.Next() {
		if err := rows.Scan(&exponent, &raw); err != nil {
			return err
		}
		if exponent != uint64(len(values)) {
			return fmt.Errorf("%w: expected exponent %d, found %d", ErrBadSnapshot, len(values), exponent)
		}
		if len(raw) != group.PBytes {
			return fmt.Errorf("%w: entry %d has %d bytes", ErrBadSnapshot, exponent, len(raw))
		}
		v, err := group.ElementModPFromBytes(raw)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrBadSnapshot, exponent, err)
		}
		if !v.Equal(expected) {
			return fmt.Errorf("%w: entry %d is not G^%d", ErrBadSnapshot, exponent, exponent)
		}
		values = append(values, v)
		expected = group.MulModP(expected, group.G())
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	c.restore(values)
	log.Debug().Uint64("frontier", c.Frontier()).Msg("loaded discrete log snapshot")
	return nil
}
