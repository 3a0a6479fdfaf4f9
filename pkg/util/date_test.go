package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	if got, ok := ParseDate("2025-03-14"); !ok || got.Format(DateLayout) != "2025-03-14" {
		t.Fatalf("calendar date: got %v ok=%v", got, ok)
	}
	if _, ok := ParseDate("not a date"); ok {
		t.Fatal("expected failure for garbage input")
	}
	if _, ok := ParseDate(""); ok {
		t.Fatal("expected failure for empty input")
	}
	if got, ok := ParseDate("1700000000"); !ok || got.Unix() != 1700000000 {
		t.Fatalf("unix seconds: got %v ok=%v", got, ok)
	}
}

func TestTradingDaysSkipsWeekends(t *testing.T) {
	// 2025-03-14 is a Friday.
	fri := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	days := TradingDays(fri, 5)
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	want := []string{"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}
	for i, d := range days {
		if d.Format(DateLayout) != want[i] {
			t.Fatalf("day %d: got %s want %s", i, d.Format(DateLayout), want[i])
		}
		if IsWeekend(d) {
			t.Fatalf("weekend day returned: %s", d.Format(DateLayout))
		}
	}
}

func TestTradingDaysFromWeekend(t *testing.T) {
	// 2025-03-16 is a Sunday; the most recent trading day is Friday the 14th.
	sun := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	days := TradingDays(sun, 2)
	if days[len(days)-1].Format(DateLayout) != "2025-03-14" {
		t.Fatalf("latest day: got %s want 2025-03-14", days[len(days)-1].Format(DateLayout))
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 1, 2, 9, 15, 0, 0, time.UTC)
	b := time.Date(2025, 1, 2, 23, 59, 59, 0, time.UTC)
	if !SameDate(a, b) {
		t.Fatal("same calendar date expected")
	}
	if SameDate(a, b.AddDate(0, 0, 1)) {
		t.Fatal("different dates reported equal")
	}
}
