// SPDX-License-Identifier: MIT

// Package store persists built simplex trees in SQLite so that a complex can
// be exported, listed and reloaded without re-running construction.
//
// A saved complex is its node order plus the flat list of simplices from
// Tree.Simplices; Load reassembles the tree and verifies closure and contents
// before handing it back. The database file is guarded by a sibling ".lock"
// file, so only one process holds a Store at a time.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/simplicial/contents"
	"github.com/katalvlaran/simplicial/simplextree"
)

var (
	// ErrNotFound indicates that no complex has the requested id.
	ErrNotFound = errors.New("store: complex not found")

	// ErrLocked indicates that another process holds the database lock.
	ErrLocked = errors.New("store: database is locked by another process")

	// ErrTreeNil indicates that Save received a nil tree.
	ErrTreeNil = errors.New("store: tree is nil")
)

const (
	// lockPoll is the interval between lock attempts.
	lockPoll = 50 * time.Millisecond

	// timeLayout is fixed-width so created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Info describes one saved complex. DimensionLimit is the cap the tree was
// built with, -1 for a full complex.
type Info struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	NodeCount      int       `json:"node_count" yaml:"node_count"`
	SimplexCount   int       `json:"simplex_count" yaml:"simplex_count"`
	MaxDimension   int       `json:"max_dimension" yaml:"max_dimension"`
	DimensionLimit int       `json:"dimension_limit" yaml:"dimension_limit"`
}

// Store is a SQLite-backed catalog of complexes.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	logger *slog.Logger
}

// Open opens (or creates) the database at path and takes its lock file.
func Open(path string, options ...Option) (*Store, error) {
	o := DefaultOptions()
	for _, fn := range options {
		fn(&o)
	}

	lock, err := acquire(path+".lock", o.LockTimeout)
	if err != nil {
		return nil, err
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err = migrate(db); err != nil {
		db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db, lock: lock, logger: o.Logger}, nil
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	err := s.db.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}

	return err
}

// acquire polls for the exclusive lock on path until timeout elapses.
func acquire(path string, timeout time.Duration) (*flock.Flock, error) {
	l := flock.New(path)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("store: cannot acquire lock %s: %w", path, err)
		}
		if locked {
			return l, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
		time.Sleep(lockPoll)
	}
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS complexes (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	node_count    INTEGER NOT NULL,
	simplex_count INTEGER NOT NULL,
	max_dimension INTEGER NOT NULL,
	dim_limit     INTEGER NOT NULL DEFAULT -1
);
CREATE TABLE IF NOT EXISTS nodes (
	complex_id TEXT NOT NULL REFERENCES complexes(id) ON DELETE CASCADE,
	rank       INTEGER NOT NULL,
	node       TEXT NOT NULL,
	PRIMARY KEY (complex_id, rank)
);
CREATE TABLE IF NOT EXISTS simplices (
	complex_id TEXT NOT NULL REFERENCES complexes(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	dimension  INTEGER NOT NULL,
	nodes      TEXT NOT NULL,
	contents   TEXT NOT NULL,
	PRIMARY KEY (complex_id, seq)
);
CREATE INDEX IF NOT EXISTS simplices_dimension ON simplices(complex_id, dimension);
`)

	return err
}

// Save writes tree under a fresh id and returns that id.
func (s *Store) Save(ctx context.Context, name string, tree *simplextree.Tree[string, string]) (string, error) {
	if tree == nil {
		return "", ErrTreeNil
	}
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO complexes (id, name, created_at, node_count, simplex_count, max_dimension, dim_limit) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, time.Now().UTC().Format(timeLayout), tree.NodeCount(), tree.Len(), tree.MaxDimension(), tree.DimensionLimit(),
	); err != nil {
		return "", fmt.Errorf("store: insert complex: %w", err)
	}

	for rank, node := range tree.Nodes() {
		if _, err = tx.ExecContext(ctx, `INSERT INTO nodes (complex_id, rank, node) VALUES (?, ?, ?)`, id, rank, node); err != nil {
			return "", fmt.Errorf("store: insert node %q: %w", node, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO simplices (complex_id, seq, dimension, nodes, contents) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	seq := 0
	for sx := range tree.Simplices() {
		nodes, _ := json.Marshal(sx.Nodes)
		points, _ := json.Marshal(contents.Natural(sx.Contents))
		if _, err = stmt.ExecContext(ctx, id, seq, sx.Dimension(), string(nodes), string(points)); err != nil {
			return "", fmt.Errorf("store: insert simplex %v: %w", sx.Nodes, err)
		}
		seq++
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	s.logger.Info("store: complex saved", "id", id, "name", name, "simplices", seq)

	return id, nil
}

// Load reads the complex saved under id, reassembles its tree and verifies it.
func (s *Store) Load(ctx context.Context, id string) (Info, *simplextree.Tree[string, string], error) {
	info, err := s.info(ctx, id)
	if err != nil {
		return Info{}, nil, err
	}

	ids, err := s.nodes(ctx, id)
	if err != nil {
		return Info{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT nodes, contents FROM simplices WHERE complex_id = ? ORDER BY seq`, id)
	if err != nil {
		return Info{}, nil, fmt.Errorf("store: query simplices: %w", err)
	}
	defer rows.Close()

	simplices := make([]simplextree.Simplex[string, string], 0, info.SimplexCount)
	var nodesJSON, pointsJSON string
	for rows.Next() {
		if err = rows.Scan(&nodesJSON, &pointsJSON); err != nil {
			return Info{}, nil, fmt.Errorf("store: scan simplex: %w", err)
		}
		var sx simplextree.Simplex[string, string]
		var points []string
		if err = json.Unmarshal([]byte(nodesJSON), &sx.Nodes); err != nil {
			return Info{}, nil, fmt.Errorf("store: simplex nodes: %w", err)
		}
		if err = json.Unmarshal([]byte(pointsJSON), &points); err != nil {
			return Info{}, nil, fmt.Errorf("store: simplex contents: %w", err)
		}
		sx.Contents = contents.Of(points...)
		simplices = append(simplices, sx)
	}
	if err = rows.Err(); err != nil {
		return Info{}, nil, fmt.Errorf("store: iterate simplices: %w", err)
	}

	var opts []simplextree.Option
	if info.DimensionLimit >= 0 {
		opts = append(opts, simplextree.WithMaxDimension(info.DimensionLimit))
	}
	tree, err := simplextree.Assemble(ids, simplices, opts...)
	if err != nil {
		return Info{}, nil, fmt.Errorf("store: complex %s: %w", id, err)
	}
	if err = tree.Verify(); err != nil {
		return Info{}, nil, fmt.Errorf("store: complex %s: %w", id, err)
	}
	s.logger.Debug("store: complex loaded", "id", id, "simplices", tree.Len())

	return info, tree, nil
}

// List returns every saved complex, newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, node_count, simplex_count, max_dimension, dim_limit FROM complexes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}

	return out, rows.Err()
}

// Delete removes the complex saved under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM simplices WHERE complex_id = ?`,
		`DELETE FROM nodes WHERE complex_id = ?`,
	} {
		if _, err = tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("store: delete: %w", err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM complexes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

func (s *Store) info(ctx context.Context, id string) (Info, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, node_count, simplex_count, max_dimension, dim_limit FROM complexes WHERE id = ?`, id)
	info, err := scanInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return info, err
}

func (s *Store) nodes(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT node FROM nodes WHERE complex_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("store: query nodes: %w", err)
	}
	defer rows.Close()

	var ids []string
	var node string
	for rows.Next() {
		if err = rows.Scan(&node); err != nil {
			return nil, fmt.Errorf("store: scan node: %w", err)
		}
		ids = append(ids, node)
	}

	return ids, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(r scanner) (Info, error) {
	var info Info
	var created string
	if err := r.Scan(&info.ID, &info.Name, &created, &info.NodeCount, &info.SimplexCount, &info.MaxDimension, &info.DimensionLimit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Info{}, err
		}
		return Info{}, fmt.Errorf("store: scan complex: %w", err)
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Info{}, fmt.Errorf("store: complex %s created_at: %w", info.ID, err)
	}
	info.CreatedAt = t

	return info, nil
}
