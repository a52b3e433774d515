// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives pipeline run outcomes in a SQLite database.
// Archival is write-only history; no pipeline stage reads it back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintelligence/drugpipe/pkg/types"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating the schema and the
// parent directory if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			sequence TEXT NOT NULL,
			seed TEXT NOT NULL,
			structure_path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS molecules (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			ligand_index INTEGER NOT NULL,
			smiles TEXT NOT NULL,
			score REAL NOT NULL,
			accepted INTEGER NOT NULL,
			skip_reason TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS poses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			ligand_index INTEGER NOT NULL,
			pose_rank INTEGER NOT NULL,
			confidence REAL,
			pose TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_molecules_run_id ON molecules(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_poses_run_id ON poses(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun archives one run record in a single transaction.
func (s *Store) SaveRun(ctx context.Context, rec types.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, sequence, seed, structure_path, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Sequence, rec.Seed, rec.StructurePath, rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", rec.ID, err)
	}

	molStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO molecules (run_id, ligand_index, smiles, score, accepted, skip_reason) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing molecule insert: %w", err)
	}
	defer molStmt.Close()

	for i, m := range rec.Molecules {
		accepted := 0
		if m.Accepted {
			accepted = 1
		}
		if _, err := molStmt.ExecContext(ctx, rec.ID, i, m.SMILES, m.Score, accepted, m.SkipReason); err != nil {
			return fmt.Errorf("inserting molecule %d: %w", i, err)
		}
	}

	poseStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO poses (run_id, ligand_index, pose_rank, confidence, pose) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing pose insert: %w", err)
	}
	defer poseStmt.Close()

	for _, p := range rec.Poses {
		if _, err := poseStmt.ExecContext(ctx, rec.ID, p.LigandIndex, p.Rank, p.Confidence, p.Pose); err != nil {
			return fmt.Errorf("inserting pose %d/%d: %w", p.LigandIndex, p.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", rec.ID, err)
	}
	return nil
}

// ListRuns returns archived runs newest-first.
func (s *Store) ListRuns(ctx context.Context) ([]types.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, length(r.sequence),
			count(m.rowid),
			coalesce(sum(m.accepted), 0)
		FROM runs r
		LEFT JOIN molecules m ON m.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunSummary
	for rows.Next() {
		var sum types.RunSummary
		var created string
		if err := rows.Scan(&sum.ID, &created, &sum.SequenceLen, &sum.NumMolecules, &sum.NumAccepted); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			sum.CreatedAt = t
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Poses returns the archived poses for one run, ordered by ligand then rank.
func (s *Store) Poses(ctx context.Context, runID string) ([]types.PoseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ligand_index, pose_rank, coalesce(confidence, 0), pose
		 FROM poses WHERE run_id = ? ORDER BY ligand_index, pose_rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying poses for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []types.PoseRecord
	for rows.Next() {
		var p types.PoseRecord
		if err := rows.Scan(&p.LigandIndex, &p.Rank, &p.Confidence, &p.Pose); err != nil {
			return nil, fmt.Errorf("scanning pose row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
