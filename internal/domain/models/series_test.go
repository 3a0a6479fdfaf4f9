package models

import (
	"testing"
	"time"
)

var d0 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestBreadthSeriesUpsertReplacesSameDate(t *testing.T) {
	var s BreadthSeries
	s = s.Upsert(DailySnapshot{Date: d0, Up3To5: 10})
	s = s.Upsert(DailySnapshot{Date: d0.AddDate(0, 0, 1), Up3To5: 20})
	if len(s) != 2 {
		t.Fatalf("len = %d, want 2", len(s))
	}

	s = s.Upsert(DailySnapshot{Date: d0, Up3To5: 99})
	if len(s) != 2 {
		t.Fatalf("upsert must replace, not append: len = %d", len(s))
	}
	if s[0].Up3To5 != 99 {
		t.Fatalf("first day = %d, want replaced value 99", s[0].Up3To5)
	}
}

func TestBreadthSeriesUpsertKeepsDateOrder(t *testing.T) {
	var s BreadthSeries
	s = s.Upsert(DailySnapshot{Date: d0.AddDate(0, 0, 2)})
	s = s.Upsert(DailySnapshot{Date: d0})
	s = s.Upsert(DailySnapshot{Date: d0.AddDate(0, 0, 1)})
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			t.Fatalf("series out of order at %d", i)
		}
	}
}

func TestSectorSeriesUpsertScopedPerSector(t *testing.T) {
	var s SectorSeries
	s = s.Upsert(SectorSnapshot{Date: d0, Sector: "Banks", Breadth: 60})
	s = s.Upsert(SectorSnapshot{Date: d0, Sector: "IT", Breadth: 40})
	s = s.Upsert(SectorSnapshot{Date: d0, Sector: "Banks", Breadth: 65})
	if len(s) != 2 {
		t.Fatalf("len = %d, want 2", len(s))
	}
	banks := s.ForSector("Banks")
	if len(banks) != 1 || banks[0].Breadth != 65 {
		t.Fatalf("banks row not replaced: %+v", banks)
	}
}

func TestSectorSeriesUpsertDay(t *testing.T) {
	var s SectorSeries
	s = s.Upsert(SectorSnapshot{Date: d0, Sector: "Banks"})
	s = s.Upsert(SectorSnapshot{Date: d0, Sector: "IT"})
	s = s.UpsertDay(d0, []SectorSnapshot{{Date: d0, Sector: "Pharma"}})
	if len(s) != 1 || s[0].Sector != "Pharma" {
		t.Fatalf("UpsertDay must replace the whole day: %+v", s)
	}
}

func TestSectorSeriesLatestDate(t *testing.T) {
	var s SectorSeries
	if _, ok := s.LatestDate(); ok {
		t.Fatalf("empty series has no latest date")
	}
	s = s.Upsert(SectorSnapshot{Date: d0, Sector: "A"})
	s = s.Upsert(SectorSnapshot{Date: d0.AddDate(0, 0, 3), Sector: "B"})
	latest, ok := s.LatestDate()
	if !ok || !latest.Equal(d0.AddDate(0, 0, 3)) {
		t.Fatalf("latest = %v", latest)
	}
	if rows := s.OnDate(latest); len(rows) != 1 || rows[0].Sector != "B" {
		t.Fatalf("OnDate = %+v", rows)
	}
}

func TestSnapshotCountRoundTrip(t *testing.T) {
	var s DailySnapshot
	for _, c := range Categories() {
		s.Add(c)
	}
	for _, c := range Categories() {
		if s.Count(c) != 1 {
			t.Fatalf("count(%s) = %d, want 1", c, s.Count(c))
		}
	}
	if s.Total() != len(Categories()) {
		t.Fatalf("total = %d", s.Total())
	}
}
