// Package storage keeps finished runs on disk: a metadata file and a
// compressed grid snapshot per run, indexed in a sqlite database.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	gridFile     = "grid.zst"
	indexFile    = "index.db"
)

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Source    string             `json:"source,omitempty"`
	Thickness float64            `json:"coating_thickness"`
	ExtentX   float64            `json:"extent_x"`
	ExtentY   float64            `json:"extent_y"`
	Density   float64            `json:"density"`
	Radius    float64            `json:"pointer_radius"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Commands  int                `json:"commands"`
	Steps     int                `json:"steps"`
	TotalMass float64            `json:"total_mass"`
	ElapsedMS int64              `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

type Store struct {
	baseDir string
	db      *sql.DB
	logger  *slog.Logger
}

// Open prepares baseDir and its run index. The index uses a single
// connection; callers share one Store.
func Open(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("empty storage directory")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(baseDir, indexFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init index: %w", err)
	}

	return &Store{baseDir: baseDir, db: db, logger: slog.Default()}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			commands INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			total_mass REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_created ON runs(created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) SetLogger(l *slog.Logger) { s.logger = l }
func (s *Store) Dir() string              { return s.baseDir }

func (s *Store) Close() error {
	return s.db.Close()
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Save writes meta and grid as a new run and returns its ID. ID and
// Timestamp are assigned here when empty.
func (s *Store) Save(ctx context.Context, meta RunMetadata, grid [][]float64) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Name == "" {
		meta.Name = "run"
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", unsafeName.ReplaceAllString(meta.Name, "_"), meta.Timestamp.UnixNano())
	}
	if len(grid) > 0 {
		meta.Width, meta.Height = len(grid), len(grid[0])
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0o644); err != nil {
		return "", err
	}
	if err := writeGrid(filepath.Join(runDir, gridFile), grid); err != nil {
		return "", fmt.Errorf("write grid: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs(id, name, created_at, commands, steps, total_mass) VALUES(?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Name, meta.Timestamp.UnixNano(), meta.Commands, meta.Steps, meta.TotalMass,
	)
	if err != nil {
		return "", fmt.Errorf("index run: %w", err)
	}

	s.logger.Info("run saved", "id", meta.ID, "dir", runDir)
	return meta.ID, nil
}

// List returns the indexed runs, newest first. Runs whose metadata has
// gone missing are skipped.
func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(ids))
	for _, id := range ids {
		meta, err := s.Load(id)
		if err != nil {
			s.logger.Warn("skipping indexed run", "id", id, "err", err)
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.runPath(runID, metadataFile))
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata of %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadGrid(runID string) ([][]float64, error) {
	grid, err := readGrid(s.runPath(runID, gridFile))
	if err != nil {
		return nil, notFound(runID, err)
	}
	return grid, nil
}

// Delete removes a run from the index and the disk.
func (s *Store) Delete(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, filepath.Base(runID)))
}

func (s *Store) runPath(runID, name string) string {
	return filepath.Join(s.baseDir, filepath.Base(runID), name)
}

func notFound(runID string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}
