package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"BreadthPulse/internal/domain/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCSVStorageDailyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStorage(dir)
	ctx := context.Background()

	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	d1 := models.DailySnapshot{Date: day("2025-03-10"), Up3To5: 40, Down3To5: 20, Neutral: 440}
	d2 := models.DailySnapshot{Date: day("2025-03-11"), Up5To10: 12, Down5To10: 3, Neutral: 485}
	for _, d := range []models.DailySnapshot{d1, d2} {
		if err := s.UpsertDaily(ctx, d); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	series, err := s.LoadBreadth(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(series))
	}
	if series[0].Up3To5 != 40 || series[1].Up5To10 != 12 {
		t.Fatalf("round trip mismatch: %+v", series)
	}
}

func TestCSVStorageUpsertReplacesDate(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStorage(dir)
	ctx := context.Background()

	if err := s.UpsertDaily(ctx, models.DailySnapshot{Date: day("2025-03-10"), Neutral: 100}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertDaily(ctx, models.DailySnapshot{Date: day("2025-03-10"), Neutral: 200}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	series, err := s.LoadBreadth(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 row after replacement, got %d", len(series))
	}
	if series[0].Neutral != 200 {
		t.Fatalf("expected replaced count 200, got %d", series[0].Neutral)
	}
}

func TestCSVStorageSectorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStorage(dir)
	ctx := context.Background()

	rows := []models.SectorSnapshot{
		{Date: day("2025-03-10"), Sector: "Banks", Up3Plus: 4, Down3Plus: 1, Neutral: 20, Total: 25, Breadth: 16.0},
		{Date: day("2025-03-10"), Sector: "IT", Up3Plus: 2, Down3Plus: 2, Neutral: 30, Total: 34, Breadth: 5.9},
	}
	if err := s.UpsertSectors(ctx, day("2025-03-10"), rows); err != nil {
		t.Fatalf("upsert sectors: %v", err)
	}

	series, err := s.LoadSectors(ctx)
	if err != nil {
		t.Fatalf("load sectors: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(series))
	}
	if series[0].Sector != "Banks" || series[0].Breadth != 16.0 {
		t.Fatalf("sector round trip mismatch: %+v", series[0])
	}
}

func TestCSVStorageLatestDetails(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStorage(dir)
	ctx := context.Background()

	old := []models.StockChange{{Symbol: "TCS", Sector: "IT", ChangePct: 1.2, Category: models.Neutral}}
	newer := []models.StockChange{
		{Symbol: "RELIANCE", Sector: "Oil & Gas", ChangePct: 4.5, Category: models.Up3To5},
		{Symbol: "SBIN", Sector: "Banks", ChangePct: -6.1, Category: models.Down5To10},
	}
	if err := s.SaveDetails(ctx, day("2025-03-10"), old); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := s.SaveDetails(ctx, day("2025-03-11"), newer); err != nil {
		t.Fatalf("save new: %v", err)
	}

	got, err := s.LatestDetails(ctx)
	if err != nil {
		t.Fatalf("latest details: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows from newest file, got %d", len(got))
	}
	if got[0].Symbol != "RELIANCE" || got[0].Category != models.Up3To5 {
		t.Fatalf("first detail mismatch: %+v", got[0])
	}
}

func TestCSVStorageDropsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	content := "date,up_15_plus,up_10_15,up_5_10,up_3_5,down_3_5,down_5_10,down_10_15,down_15_plus,neutral\n" +
		"2025-03-10,0,0,1,40,20,2,0,0,440\n" +
		"not-a-date,0,0,0,0,0,0,0,0,0\n" +
		"2025-03-11,0,0,0,junk,0,0,0,0,480\n"
	if err := os.WriteFile(filepath.Join(dir, "stock_movements_history.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := NewCSVStorage(dir)
	series, err := s.LoadBreadth(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 parsed rows, got %d", len(series))
	}
	// unparseable count fields read as zero
	if series[1].Up3To5 != 0 || series[1].Neutral != 480 {
		t.Fatalf("bad count handling: %+v", series[1])
	}
}

func TestCSVStorageEmptyHistory(t *testing.T) {
	s := NewCSVStorage(t.TempDir())
	series, err := s.LoadBreadth(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(series) != 0 {
		t.Fatalf("expected empty series, got %d rows", len(series))
	}
}
