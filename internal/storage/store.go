// Package storage keeps run records in a SQLite database under the data
// directory. Records describe finished runs; no simulation state is
// restored from them.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/hexwave/internal/experiment"
	"github.com/san-kum/hexwave/internal/lattice"
)

const dbName = "runs.db"

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix matches several runs")
)

type Store struct {
	conn *sqlx.DB
	dir  string
}

// Run is the metadata of one stored run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string
	Colormap  string
	Rows      int
	Cols      int
	Interior  int
	Steps     int
	Speed     float64
	TimeStep  float64
	Spacing   float64
	Elapsed   time.Duration
	Metrics   map[string]float64
}

type runRow struct {
	ID          string  `db:"id"`
	CreatedAt   int64   `db:"created_at"`
	Source      string  `db:"source"`
	Colormap    string  `db:"colormap"`
	Rows        int     `db:"grid_rows"`
	Cols        int     `db:"grid_cols"`
	Interior    int     `db:"interior"`
	Steps       int     `db:"steps"`
	Speed       float64 `db:"speed"`
	TimeStep    float64 `db:"time_step"`
	Spacing     float64 `db:"spacing"`
	ElapsedNS   int64   `db:"elapsed_ns"`
	MetricsJSON string  `db:"metrics_json"`
}

type sampleRow struct {
	Step  int     `db:"step"`
	Name  string  `db:"name"`
	Value float64 `db:"value"`
}

// Open creates dir if needed and opens the run database inside it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, dbName)
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn, dir: dir}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		source TEXT NOT NULL,
		colormap TEXT NOT NULL,
		grid_rows INTEGER NOT NULL,
		grid_cols INTEGER NOT NULL,
		interior INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		speed REAL NOT NULL,
		time_step REAL NOT NULL,
		spacing REAL NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		metrics_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		step INTEGER NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, step);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun stores the run and its metric trace in one transaction and
// returns the new run ID.
func (s *Store) SaveRun(run Run, trace []experiment.Sample) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return "", err
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	row := runRow{
		ID:          run.ID,
		CreatedAt:   run.CreatedAt.UnixNano(),
		Source:      run.Source,
		Colormap:    run.Colormap,
		Rows:        run.Rows,
		Cols:        run.Cols,
		Interior:    run.Interior,
		Steps:       run.Steps,
		Speed:       run.Speed,
		TimeStep:    run.TimeStep,
		Spacing:     run.Spacing,
		ElapsedNS:   int64(run.Elapsed),
		MetricsJSON: string(metricsJSON),
	}
	if _, err := tx.NamedExec(`INSERT INTO runs
		(id, created_at, source, colormap, grid_rows, grid_cols, interior, steps,
		 speed, time_step, spacing, elapsed_ns, metrics_json)
		VALUES (:id, :created_at, :source, :colormap, :grid_rows, :grid_cols, :interior, :steps,
		 :speed, :time_step, :spacing, :elapsed_ns, :metrics_json)`, row); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex("INSERT INTO samples (run_id, step, name, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, sample := range trace {
		for name, v := range sample.Values {
			if _, err := stmt.Exec(run.ID, sample.Step, name, v); err != nil {
				return "", fmt.Errorf("insert sample: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns every run, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	var rows []runRow
	if err := s.conn.Select(&rows, "SELECT * FROM runs ORDER BY created_at DESC"); err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		run, err := r.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// LoadRun accepts a full ID or a unique prefix of one.
func (s *Store) LoadRun(id string) (*Run, error) {
	var rows []runRow
	if err := s.conn.Select(&rows, "SELECT * FROM runs WHERE id LIKE ? || '%' LIMIT 2", id); err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
	run, err := rows[0].toRun()
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LoadSamples returns the stored trace ordered by step.
func (s *Store) LoadSamples(id string) ([]experiment.Sample, error) {
	run, err := s.LoadRun(id)
	if err != nil {
		return nil, err
	}

	var rows []sampleRow
	if err := s.conn.Select(&rows,
		"SELECT step, name, value FROM samples WHERE run_id = ? ORDER BY step",
		run.ID,
	); err != nil {
		return nil, err
	}

	byStep := make(map[int]map[string]float64)
	for _, r := range rows {
		if byStep[r.Step] == nil {
			byStep[r.Step] = make(map[string]float64)
		}
		byStep[r.Step][r.Name] = r.Value
	}
	samples := make([]experiment.Sample, 0, len(byStep))
	for step, values := range byStep {
		samples = append(samples, experiment.Sample{Step: step, Values: values})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Step < samples[j].Step })
	return samples, nil
}

// DeleteRun removes a run and its samples.
func (s *Store) DeleteRun(id string) error {
	run, err := s.LoadRun(id)
	if err != nil {
		return err
	}
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM samples WHERE run_id = ?", run.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", run.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r runRow) toRun() (Run, error) {
	run := Run{
		ID:        r.ID,
		CreatedAt: time.Unix(0, r.CreatedAt),
		Source:    r.Source,
		Colormap:  r.Colormap,
		Rows:      r.Rows,
		Cols:      r.Cols,
		Interior:  r.Interior,
		Steps:     r.Steps,
		Speed:     r.Speed,
		TimeStep:  r.TimeStep,
		Spacing:   r.Spacing,
		Elapsed:   time.Duration(r.ElapsedNS),
	}
	if err := json.Unmarshal([]byte(r.MetricsJSON), &run.Metrics); err != nil {
		return Run{}, fmt.Errorf("run %s metrics: %w", r.ID, err)
	}
	return run, nil
}

// RunFrom fills the metadata of a finished experiment.
func RunFrom(exp *experiment.Experiment, result *experiment.Result) Run {
	cfg := exp.Config()
	grid := exp.Grid()
	return Run{
		Source:   exp.Source(),
		Colormap: cfg.Colormap,
		Rows:     grid.Rows,
		Cols:     grid.Cols,
		Interior: grid.Count(lattice.Interior),
		Steps:    result.Steps,
		Speed:    cfg.Speed,
		TimeStep: cfg.TimeStep,
		Spacing:  cfg.Spacing,
		Elapsed:  result.Elapsed,
		Metrics:  result.Metrics,
	}
}
