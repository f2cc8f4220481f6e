// sqliteindex.go — optional SQLite mirror of the scenario index, used by
// Search for text/tag queries at scale. Never the source of truth: it is
// rebuilt from the authoritative JSON index on every write and by Validate.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

type sqliteIndex struct {
	db *sql.DB
}

// EnableSearchIndex opens (creating if absent) a SQLite mirror of the index
// at path and wires it into s. Call after NewStore; safe to skip entirely,
// in which case Search uses the in-memory linear scan.
func (s *Store) EnableSearchIndex(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return ioError("open_search_index_failed", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS scenarios (
		name TEXT PRIMARY KEY,
		description TEXT,
		tags TEXT,
		dependencies TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return ioError("create_search_index_schema_failed", err)
	}
	s.searchIndex = &sqliteIndex{db: db}
	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	return s.searchIndex.rebuild(idx)
}

// CloseSearchIndex releases the SQLite handle, if one is open.
func (s *Store) CloseSearchIndex() error {
	if s.searchIndex == nil {
		return nil
	}
	err := s.searchIndex.db.Close()
	s.searchIndex = nil
	return err
}

func (si *sqliteIndex) rebuild(idx scenario.ScenarioIndex) error {
	tx, err := si.db.Begin()
	if err != nil {
		return ioError("search_index_tx_failed", err)
	}
	if _, err := tx.Exec("DELETE FROM scenarios"); err != nil {
		tx.Rollback()
		return ioError("search_index_clear_failed", err)
	}
	for _, e := range idx.Entries {
		_, err := tx.Exec(
			"INSERT INTO scenarios (name, description, tags, dependencies) VALUES (?, ?, ?, ?)",
			e.Name, e.Description, strings.Join(e.Tags, ","), strings.Join(e.Dependencies, ","),
		)
		if err != nil {
			tx.Rollback()
			return ioError("search_index_insert_failed", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return ioError("search_index_commit_failed", err)
	}
	return nil
}

// matchNames runs a LIKE-based substring search over name/description and
// returns the matching scenario names. Used by Search when a SQLite mirror
// is configured, purely as a candidate-narrowing step; final filtering
// (tags, depends_on) is still applied by the caller against the JSON index.
func (si *sqliteIndex) matchNames(text string) ([]string, error) {
	like := "%" + strings.ToLower(text) + "%"
	rows, err := si.db.Query(
		"SELECT name FROM scenarios WHERE lower(name) LIKE ? OR lower(description) LIKE ?",
		like, like,
	)
	if err != nil {
		return nil, fmt.Errorf("search_index_query_failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("search_index_scan_failed: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
