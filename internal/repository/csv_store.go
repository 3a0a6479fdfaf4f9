package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"BreadthPulse/internal/domain/models"
	"BreadthPulse/internal/domain/repository"
)

const (
	movementsFile = "stock_movements_history.csv"
	sectorsFile   = "sector_movements_history.csv"
	detailsPrefix = "stock_details_"
)

// CSVStorage implements Storage over plain history files in a data
// directory. Writes rewrite the whole file; histories are small (one
// row per day, one row per sector per day) so this stays cheap.
type CSVStorage struct {
	dir string
	mu  sync.Mutex
}

// NewCSVStorage creates file-backed storage rooted at dir.
func NewCSVStorage(dir string) repository.Storage {
	return &CSVStorage{dir: dir}
}

func (s *CSVStorage) Init(ctx context.Context) error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *CSVStorage) UpsertDaily(ctx context.Context, day models.DailySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	series, err := s.loadBreadth()
	if err != nil {
		return err
	}
	series = series.Upsert(day)
	return s.writeMovements(series)
}

func (s *CSVStorage) UpsertSectors(ctx context.Context, date time.Time, rows []models.SectorSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	series, err := s.loadSectors()
	if err != nil {
		return err
	}
	series = series.UpsertDay(date, rows)
	return s.writeSectors(series)
}

func (s *CSVStorage) SaveDetails(ctx context.Context, date time.Time, rows []models.StockChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, detailsPrefix+models.DateKey(date)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create details: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"symbol", "sector", "change_pct", "category"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Symbol,
			r.Sector,
			strconv.FormatFloat(r.ChangePct, 'f', 2, 64),
			string(r.Category),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *CSVStorage) LoadBreadth(ctx context.Context) (models.BreadthSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadBreadth()
}

func (s *CSVStorage) LoadSectors(ctx context.Context) (models.SectorSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSectors()
}

// LatestDetails loads the newest stock_details_<date>.csv in the data dir.
func (s *CSVStorage) LatestDetails(ctx context.Context) ([]models.StockChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, detailsPrefix) && strings.HasSuffix(name, ".csv") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	// Date is embedded in the name; lexical order is date order.
	sort.Strings(names)
	return s.loadDetails(filepath.Join(s.dir, names[len(names)-1]))
}

func (s *CSVStorage) Health(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *CSVStorage) Close() error { return nil }

func (s *CSVStorage) loadBreadth() (models.BreadthSeries, error) {
	recs, header, err := readCSV(filepath.Join(s.dir, movementsFile))
	if err != nil || recs == nil {
		return nil, err
	}

	col := columnIndex(header)
	dateCol, ok := col["date"]
	if !ok {
		return nil, fmt.Errorf("movements history: no date column")
	}

	var series models.BreadthSeries
	for _, rec := range recs {
		if dateCol >= len(rec) {
			continue
		}
		date, err := time.Parse(models.DateLayout, strings.TrimSpace(rec[dateCol]))
		if err != nil {
			// malformed rows are dropped, not fatal
			continue
		}
		day := models.DailySnapshot{Date: date}
		for _, c := range models.Categories() {
			if i, ok := col[string(c)]; ok && i < len(rec) {
				day.SetCount(c, intAt(rec, i))
			}
		}
		series = series.Upsert(day)
	}
	return series, nil
}

func (s *CSVStorage) loadSectors() (models.SectorSeries, error) {
	recs, header, err := readCSV(filepath.Join(s.dir, sectorsFile))
	if err != nil || recs == nil {
		return nil, err
	}

	col := columnIndex(header)
	dateCol, ok1 := col["date"]
	secCol, ok2 := col["sector"]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("sector history: missing date/sector columns")
	}

	var series models.SectorSeries
	for _, rec := range recs {
		if dateCol >= len(rec) || secCol >= len(rec) {
			continue
		}
		date, err := time.Parse(models.DateLayout, strings.TrimSpace(rec[dateCol]))
		if err != nil {
			continue
		}
		sector := strings.TrimSpace(rec[secCol])
		if sector == "" {
			continue
		}
		row := models.SectorSnapshot{Date: date, Sector: sector}
		if i, ok := col["up_3_plus"]; ok {
			row.Up3Plus = intAt(rec, i)
		}
		if i, ok := col["down_3_plus"]; ok {
			row.Down3Plus = intAt(rec, i)
		}
		if i, ok := col["neutral"]; ok {
			row.Neutral = intAt(rec, i)
		}
		if i, ok := col["total"]; ok {
			row.Total = intAt(rec, i)
		}
		if i, ok := col["breadth"]; ok {
			row.Breadth = floatAt(rec, i)
		}
		series = series.Upsert(row)
	}
	return series, nil
}

func (s *CSVStorage) loadDetails(path string) ([]models.StockChange, error) {
	recs, header, err := readCSV(path)
	if err != nil || recs == nil {
		return nil, err
	}

	col := columnIndex(header)
	symCol, ok := col["symbol"]
	if !ok {
		return nil, fmt.Errorf("details: no symbol column")
	}

	var rows []models.StockChange
	for _, rec := range recs {
		if symCol >= len(rec) || strings.TrimSpace(rec[symCol]) == "" {
			continue
		}
		row := models.StockChange{Symbol: strings.TrimSpace(rec[symCol])}
		if i, ok := col["sector"]; ok && i < len(rec) {
			row.Sector = strings.TrimSpace(rec[i])
		}
		if i, ok := col["change_pct"]; ok {
			row.ChangePct = floatAt(rec, i)
		}
		if i, ok := col["category"]; ok && i < len(rec) {
			row.Category = models.MovementCategory(strings.TrimSpace(rec[i]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *CSVStorage) writeMovements(series models.BreadthSeries) error {
	f, err := os.Create(filepath.Join(s.dir, movementsFile))
	if err != nil {
		return fmt.Errorf("create movements: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"date"}
	for _, c := range models.Categories() {
		header = append(header, string(c))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, day := range series {
		rec := []string{models.DateKey(day.Date)}
		for _, c := range models.Categories() {
			rec = append(rec, strconv.Itoa(day.Count(c)))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *CSVStorage) writeSectors(series models.SectorSeries) error {
	f, err := os.Create(filepath.Join(s.dir, sectorsFile))
	if err != nil {
		return fmt.Errorf("create sectors: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "sector", "up_3_plus", "down_3_plus", "neutral", "total", "breadth"}); err != nil {
		return err
	}
	for _, row := range series {
		rec := []string{
			models.DateKey(row.Date),
			row.Sector,
			strconv.Itoa(row.Up3Plus),
			strconv.Itoa(row.Down3Plus),
			strconv.Itoa(row.Neutral),
			strconv.Itoa(row.Total),
			strconv.FormatFloat(row.Breadth, 'f', 1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readCSV returns data rows and the header. A missing file yields
// (nil, nil, nil): an empty history, not an error.
func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var recs [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, header, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}

func intAt(rec []string, i int) int {
	if i >= len(rec) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rec[i]))
	if err != nil {
		return 0
	}
	return n
}

func floatAt(rec []string, i int) float64 {
	if i >= len(rec) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0
	}
	return v
}
