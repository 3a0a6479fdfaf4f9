package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"BreadthPulse/internal/domain/models"
	"BreadthPulse/internal/domain/repository"
)

// ClickHouseStorage implements Storage for ClickHouse. Tables use
// ReplacingMergeTree keyed by date so an upsert is a plain insert; the
// read path collapses duplicates with FINAL.
type ClickHouseStorage struct {
	db       *sql.DB
	database string
	batch    int
}

// NewClickHouseStorage creates ClickHouse storage. batchSize bounds the
// rows per detail INSERT statement.
func NewClickHouseStorage(db *sql.DB, database string, batchSize int) repository.Storage {
	if database == "" {
		database = "breadthpulse"
	}
	if batchSize <= 0 {
		batchSize = 2000
	}
	return &ClickHouseStorage{db: db, database: database, batch: batchSize}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.daily_movements (
			date Date,
			up_15_plus UInt32, up_10_15 UInt32, up_5_10 UInt32, up_3_5 UInt32,
			down_3_5 UInt32, down_5_10 UInt32, down_10_15 UInt32, down_15_plus UInt32,
			neutral UInt32,
			inserted_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(inserted_at) ORDER BY date`, s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.sector_movements (
			date Date,
			sector String,
			up_3_plus UInt32, down_3_plus UInt32, neutral UInt32, total UInt32,
			breadth Float64,
			inserted_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(inserted_at) ORDER BY (date, sector)`, s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.stock_details (
			date Date,
			symbol String,
			sector String,
			change_pct Float64,
			category String,
			inserted_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(inserted_at) ORDER BY (date, symbol)`, s.database),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseStorage) UpsertDaily(ctx context.Context, day models.DailySnapshot) error {
	q := fmt.Sprintf(`INSERT INTO %s.daily_movements
		(date, up_15_plus, up_10_15, up_5_10, up_3_5, down_3_5, down_5_10, down_10_15, down_15_plus, neutral)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.database)
	_, err := s.db.ExecContext(ctx, q,
		day.Date,
		day.Up15Plus, day.Up10To15, day.Up5To10, day.Up3To5,
		day.Down3To5, day.Down5To10, day.Down10To15, day.Down15Plus,
		day.Neutral,
	)
	return err
}

func (s *ClickHouseStorage) UpsertSectors(ctx context.Context, date time.Time, rows []models.SectorSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*7)
	for _, r := range rows {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, date, r.Sector, r.Up3Plus, r.Down3Plus, r.Neutral, r.Total, r.Breadth)
	}
	q := fmt.Sprintf(`INSERT INTO %s.sector_movements
		(date, sector, up_3_plus, down_3_plus, neutral, total, breadth) VALUES %s`,
		s.database, strings.Join(values, ","))
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *ClickHouseStorage) SaveDetails(ctx context.Context, date time.Time, rows []models.StockChange) error {
	if len(rows) == 0 {
		return nil
	}
	for start := 0; start < len(rows); start += s.batch {
		end := start + s.batch
		if end > len(rows) {
			end = len(rows)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, r := range rows[start:end] {
			if r.Symbol == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, date, r.Symbol, r.Sector, r.ChangePct, string(r.Category))
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(`INSERT INTO %s.stock_details
			(date, symbol, sector, change_pct, category) VALUES %s`,
			s.database, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseStorage) LoadBreadth(ctx context.Context) (models.BreadthSeries, error) {
	q := fmt.Sprintf(`SELECT date,
		up_15_plus, up_10_15, up_5_10, up_3_5,
		down_3_5, down_5_10, down_10_15, down_15_plus, neutral
		FROM %s.daily_movements FINAL ORDER BY date`, s.database)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series models.BreadthSeries
	for rows.Next() {
		var day models.DailySnapshot
		if err := rows.Scan(&day.Date,
			&day.Up15Plus, &day.Up10To15, &day.Up5To10, &day.Up3To5,
			&day.Down3To5, &day.Down5To10, &day.Down10To15, &day.Down15Plus,
			&day.Neutral); err != nil {
			return nil, err
		}
		series = append(series, day)
	}
	return series, rows.Err()
}

func (s *ClickHouseStorage) LoadSectors(ctx context.Context) (models.SectorSeries, error) {
	q := fmt.Sprintf(`SELECT date, sector, up_3_plus, down_3_plus, neutral, total, breadth
		FROM %s.sector_movements FINAL ORDER BY date, sector`, s.database)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series models.SectorSeries
	for rows.Next() {
		var row models.SectorSnapshot
		if err := rows.Scan(&row.Date, &row.Sector,
			&row.Up3Plus, &row.Down3Plus, &row.Neutral, &row.Total, &row.Breadth); err != nil {
			return nil, err
		}
		series = append(series, row)
	}
	return series, rows.Err()
}

func (s *ClickHouseStorage) LatestDetails(ctx context.Context) ([]models.StockChange, error) {
	q := fmt.Sprintf(`SELECT symbol, sector, change_pct, category
		FROM %s.stock_details FINAL
		WHERE date = (SELECT max(date) FROM %s.stock_details)
		ORDER BY symbol`, s.database, s.database)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StockChange
	for rows.Next() {
		var r models.StockChange
		var cat string
		if err := rows.Scan(&r.Symbol, &r.Sector, &r.ChangePct, &cat); err != nil {
			return nil, err
		}
		r.Category = models.MovementCategory(cat)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}
