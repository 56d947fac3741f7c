package history

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"loopsched/internal/config"
	"loopsched/internal/domain"
)

// Store records RunResults into a MySQL `runs` table, one row per
// benchmark invocation. Where the teacher's DatabaseManager created one
// database per worker, Store keeps a single table of run history.
type Store struct {
	db *sql.DB
}

// Open loads .env from projectPath (if present) and connects using
// config.GetHistoryDSN's DB_HOST/DB_PORT/DB_USERNAME/DB_PASSWORD
// environment convention.
func Open(projectPath string) (*Store, error) {
	envPath := filepath.Join(projectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		_ = err // .env is optional; environment variables may be set directly
	}

	db, err := sql.Open("mysql", config.GetHistoryDSN())
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the `runs` table if it does not already exist.
func (s *Store) EnsureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	policy VARCHAR(16) NOT NULL,
	start_val BIGINT NOT NULL,
	end_val BIGINT NOT NULL,
	incr BIGINT NOT NULL,
	chunk_size BIGINT NOT NULL,
	workers INT NOT NULL,
	total_iterations BIGINT NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	max_imbalance DOUBLE NOT NULL,
	recorded_at DATETIME NOT NULL
)`
	_, err := s.db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("ensure runs schema: %w", err)
	}
	return nil
}

// InsertRun records one RunResult as a row in the runs table.
func (s *Store) InsertRun(result domain.RunResult) (int64, error) {
	maxImbalance := 0.0
	for _, imb := range result.Imbalances {
		if imb.DeltaPercent > maxImbalance {
			maxImbalance = imb.DeltaPercent
		}
	}

	const q = `
INSERT INTO runs (policy, start_val, end_val, incr, chunk_size, workers, total_iterations, duration_seconds, max_imbalance, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.Exec(q,
		result.Meta.Policy, result.Meta.Start, result.Meta.End, result.Meta.Incr,
		result.Meta.ChunkSize, result.Meta.Workers, result.Meta.TotalIterations,
		result.Meta.DurationSeconds, maxImbalance, result.Meta.Timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// RecentRuns returns the most recently recorded runs, newest first.
func (s *Store) RecentRuns(limit int) ([]domain.HistoryRecord, error) {
	const q = `
SELECT id, policy, start_val, end_val, incr, chunk_size, workers, total_iterations, duration_seconds, max_imbalance, recorded_at
FROM runs ORDER BY id DESC LIMIT ?`
	rows, err := s.db.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryRecord
	for rows.Next() {
		var r domain.HistoryRecord
		if err := rows.Scan(&r.ID, &r.Policy, &r.Start, &r.End, &r.Incr, &r.ChunkSize,
			&r.Workers, &r.TotalIterations, &r.DurationSeconds, &r.MaxImbalance, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
