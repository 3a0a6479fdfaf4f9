package models

import (
	"sort"
	"time"
)

// BreadthSeries is the ordered history of daily snapshots, strictly
// increasing by date with no duplicates. The zero value is usable.
type BreadthSeries []DailySnapshot

// Upsert inserts the snapshot in date order, replacing any existing
// snapshot for the same calendar date.
func (s BreadthSeries) Upsert(day DailySnapshot) BreadthSeries {
	key := DateKey(day.Date)
	for i := range s {
		if DateKey(s[i].Date) == key {
			out := make(BreadthSeries, len(s))
			copy(out, s)
			out[i] = day
			return out
		}
	}
	out := make(BreadthSeries, len(s), len(s)+1)
	copy(out, s)
	out = append(out, day)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Tail returns the last n snapshots (all of them when n >= len).
func (s BreadthSeries) Tail(n int) BreadthSeries {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Last returns the most recent snapshot.
func (s BreadthSeries) Last() (DailySnapshot, bool) {
	if len(s) == 0 {
		return DailySnapshot{}, false
	}
	return s[len(s)-1], true
}

// SectorSnapshot is one sector's movement summary for one trading day.
// Breadth is defined only when Total > 0.
type SectorSnapshot struct {
	Date      time.Time `json:"date"`
	Sector    string    `json:"sector"`
	Up3Plus   int       `json:"up_3_plus"`
	Down3Plus int       `json:"down_3_plus"`
	Neutral   int       `json:"neutral"`
	Total     int       `json:"total"`
	Breadth   float64   `json:"breadth"`
}

// SectorSeries is the per-sector breadth history, ordered by date then
// sector name.
type SectorSeries []SectorSnapshot

// Upsert replaces the row keyed by (date, sector) or inserts it in order.
func (s SectorSeries) Upsert(row SectorSnapshot) SectorSeries {
	key := DateKey(row.Date)
	for i := range s {
		if DateKey(s[i].Date) == key && s[i].Sector == row.Sector {
			out := make(SectorSeries, len(s))
			copy(out, s)
			out[i] = row
			return out
		}
	}
	out := make(SectorSeries, len(s), len(s)+1)
	copy(out, s)
	out = append(out, row)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

// UpsertDay replaces every row for the given date with the supplied rows.
func (s SectorSeries) UpsertDay(date time.Time, rows []SectorSnapshot) SectorSeries {
	key := DateKey(date)
	out := make(SectorSeries, 0, len(s)+len(rows))
	for _, row := range s {
		if DateKey(row.Date) != key {
			out = append(out, row)
		}
	}
	out = append(out, rows...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

// Sectors returns the distinct sector names in first-seen order.
func (s SectorSeries) Sectors() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range s {
		if _, ok := seen[row.Sector]; !ok {
			seen[row.Sector] = struct{}{}
			names = append(names, row.Sector)
		}
	}
	return names
}

// ForSector returns the date-ordered history of one sector.
func (s SectorSeries) ForSector(name string) SectorSeries {
	var out SectorSeries
	for _, row := range s {
		if row.Sector == name {
			out = append(out, row)
		}
	}
	return out
}

// Tail returns the last n rows, or the whole series when shorter.
func (s SectorSeries) Tail(n int) SectorSeries {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// LatestDate returns the most recent date present in the series.
func (s SectorSeries) LatestDate() (time.Time, bool) {
	if len(s) == 0 {
		return time.Time{}, false
	}
	latest := s[0].Date
	for _, row := range s[1:] {
		if row.Date.After(latest) {
			latest = row.Date
		}
	}
	return latest, true
}

// OnDate returns every sector row for the given calendar date.
func (s SectorSeries) OnDate(date time.Time) SectorSeries {
	key := DateKey(date)
	var out SectorSeries
	for _, row := range s {
		if DateKey(row.Date) == key {
			out = append(out, row)
		}
	}
	return out
}

// StockChange is a single instrument's same-day observed move. It is the
// per-instrument detail record behind sector signal annotations.
type StockChange struct {
	Symbol    string           `json:"symbol"`
	Sector    string           `json:"sector"`
	ChangePct float64          `json:"change_pct"`
	Category  MovementCategory `json:"category"`
}
