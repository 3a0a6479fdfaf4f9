package models

import "time"

// MovementCategory is one of the nine daily percentage-move buckets.
type MovementCategory string

const (
	Up15Plus   MovementCategory = "up_15_plus"
	Up10To15   MovementCategory = "up_10_15"
	Up5To10    MovementCategory = "up_5_10"
	Up3To5     MovementCategory = "up_3_5"
	Neutral    MovementCategory = "neutral"
	Down3To5   MovementCategory = "down_3_5"
	Down5To10  MovementCategory = "down_5_10"
	Down10To15 MovementCategory = "down_10_15"
	Down15Plus MovementCategory = "down_15_plus"
)

// Categories returns all buckets in history-file column order.
func Categories() []MovementCategory {
	return []MovementCategory{
		Up15Plus, Up10To15, Up5To10, Up3To5,
		Down3To5, Down5To10, Down10To15, Down15Plus,
		Neutral,
	}
}

// DailySnapshot is one trading day's category histogram. The sum of all
// counts equals the number of instruments successfully observed that day.
type DailySnapshot struct {
	Date       time.Time `json:"date"`
	Up15Plus   int       `json:"up_15_plus"`
	Up10To15   int       `json:"up_10_15"`
	Up5To10    int       `json:"up_5_10"`
	Up3To5     int       `json:"up_3_5"`
	Down3To5   int       `json:"down_3_5"`
	Down5To10  int       `json:"down_5_10"`
	Down10To15 int       `json:"down_10_15"`
	Down15Plus int       `json:"down_15_plus"`
	Neutral    int       `json:"neutral"`
}

// Count returns the count for a single bucket.
func (s DailySnapshot) Count(c MovementCategory) int {
	switch c {
	case Up15Plus:
		return s.Up15Plus
	case Up10To15:
		return s.Up10To15
	case Up5To10:
		return s.Up5To10
	case Up3To5:
		return s.Up3To5
	case Down3To5:
		return s.Down3To5
	case Down5To10:
		return s.Down5To10
	case Down10To15:
		return s.Down10To15
	case Down15Plus:
		return s.Down15Plus
	case Neutral:
		return s.Neutral
	}
	return 0
}

// Add increments the count for a single bucket.
func (s *DailySnapshot) Add(c MovementCategory) {
	switch c {
	case Up15Plus:
		s.Up15Plus++
	case Up10To15:
		s.Up10To15++
	case Up5To10:
		s.Up5To10++
	case Up3To5:
		s.Up3To5++
	case Down3To5:
		s.Down3To5++
	case Down5To10:
		s.Down5To10++
	case Down10To15:
		s.Down10To15++
	case Down15Plus:
		s.Down15Plus++
	case Neutral:
		s.Neutral++
	}
}

// SetCount sets the count for a single bucket.
func (s *DailySnapshot) SetCount(c MovementCategory, n int) {
	switch c {
	case Up15Plus:
		s.Up15Plus = n
	case Up10To15:
		s.Up10To15 = n
	case Up5To10:
		s.Up5To10 = n
	case Up3To5:
		s.Up3To5 = n
	case Down3To5:
		s.Down3To5 = n
	case Down5To10:
		s.Down5To10 = n
	case Down10To15:
		s.Down10To15 = n
	case Down15Plus:
		s.Down15Plus = n
	case Neutral:
		s.Neutral = n
	}
}

// Total returns the number of instruments observed on this day.
func (s DailySnapshot) Total() int {
	return s.Up15Plus + s.Up10To15 + s.Up5To10 + s.Up3To5 +
		s.Down3To5 + s.Down5To10 + s.Down10To15 + s.Down15Plus + s.Neutral
}

// DateKey is a calendar date, suitable as an upsert key.
const DateLayout = "2006-01-02"

// DateKey formats a time as the calendar-date upsert key.
func DateKey(t time.Time) string { return t.Format(DateLayout) }
