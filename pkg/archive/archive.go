// Package archive keeps named snapshot versions in a local sqlite database,
// so a diagram can be rolled back to any archived state.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is the project-relative directory holding the archive database.
const DefaultDir = ".trialflow"

// ErrNoEntry is returned when an archive id does not exist.
var ErrNoEntry = errors.New("archive entry not found")

// Entry is one archived snapshot version. Snapshot is only populated by
// Show; List returns metadata alone.
type Entry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	CreatedAt time.Time `json:"createdAt"`
	Snapshot  []byte    `json:"snapshot,omitempty"`
}

// Store handles archive persistence.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the archive database path under a project directory.
func DefaultPath(projectDir string) string {
	return filepath.Join(projectDir, DefaultDir, "archive.db")
}

// Open opens or creates the archive database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		nodes INTEGER NOT NULL DEFAULT 0,
		snapshot BLOB NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save archives a snapshot blob under a name and returns its id. Nodes is
// display metadata captured at save time.
func (s *Store) Save(name string, snapshot []byte, nodes int) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO snapshots (name, nodes, snapshot, created_at)
		VALUES (?, ?, ?, ?)
	`, name, nodes, snapshot, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	return result.LastInsertId()
}

// List returns all archived versions, newest first, without blobs.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, name, nodes, created_at
		FROM snapshots
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Nodes, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Show loads one archived version including its snapshot blob.
func (s *Store) Show(id int64) (*Entry, error) {
	var e Entry
	err := s.db.QueryRow(`
		SELECT id, name, nodes, snapshot, created_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Nodes, &e.Snapshot, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNoEntry, id)
	}
	if err != nil {
		return nil, fmt.Errorf("show snapshot %d: %w", id, err)
	}
	return &e, nil
}

// Latest loads the most recent version saved under a name.
func (s *Store) Latest(name string) (*Entry, error) {
	var e Entry
	err := s.db.QueryRow(`
		SELECT id, name, nodes, snapshot, created_at
		FROM snapshots
		WHERE name = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, name).Scan(&e.ID, &e.Name, &e.Nodes, &e.Snapshot, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNoEntry, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return &e, nil
}

// Delete removes an archived version.
func (s *Store) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNoEntry, id)
	}
	return nil
}
