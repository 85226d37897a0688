package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/domain/repository"
)

// ClickHouseResultStore implements ResultStore for ClickHouse. Each scan is
// stored as one row: ranking columns for cheap filtering plus the full report
// as a JSON blob for consumers that want everything.
type ClickHouseResultStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseResultStore creates ClickHouse-backed report storage.
func NewClickHouseResultStore(db *sql.DB, table string) repository.ResultStore {
	return &ClickHouseResultStore{db: db, table: table}
}

func (s *ClickHouseResultStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		generated_at DateTime,
		symbol       String,
		bars         UInt32,
		situations   UInt16,
		significant  UInt16,
		best_score   Float64,
		report       String
	) ENGINE = MergeTree()
	ORDER BY (symbol, generated_at)`, s.table)
	_, err := s.db.ExecContext(ctx, q)
	if err != nil {
		return fmt.Errorf("init result store: %w", err)
	}
	return nil
}

func (s *ClickHouseResultStore) Store(ctx context.Context, report *models.ScanReport) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	blob, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	significant := 0
	bestScore := 0.0
	for _, sit := range report.Situations {
		if sit.Significant {
			significant++
		}
		if sit.BestScore > bestScore {
			bestScore = sit.BestScore
		}
	}

	q := fmt.Sprintf("INSERT INTO %s (generated_at, symbol, bars, situations, significant, best_score, report) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err = s.db.ExecContext(ctx, q,
		report.GeneratedAt,
		report.Symbol,
		uint32(report.Bars),
		uint16(len(report.Situations)),
		uint16(significant),
		bestScore,
		string(blob),
	)
	return err
}

func (s *ClickHouseResultStore) Query(ctx context.Context, symbol string, limit int) ([]*models.ScanReport, error) {
	if limit <= 0 {
		limit = 10
	}
	q := fmt.Sprintf("SELECT report FROM %s WHERE symbol = ? ORDER BY generated_at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.ScanReport
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var r models.ScanReport
		if err := json.Unmarshal([]byte(blob), &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		reports = append(reports, &r)
	}
	return reports, rows.Err()
}

func (s *ClickHouseResultStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseResultStore) Close() error {
	return nil // Managed by pkg
}
