package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BreadthPulse/pkg/logger"
)

func testLogger() *logger.Logger {
	l, _ := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	return l
}

func chartJSON(stamps []int64, closes []string) string {
	ts := ""
	for i, s := range stamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", s)
	}
	cs := ""
	for i, c := range closes {
		if i > 0 {
			cs += ","
		}
		cs += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, ts, cs)
}

func sourceFor(t *testing.T, body string) (*Source, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	src := NewSource(Config{BaseURL: srv.URL, RatePerSecond: 1000, RateBurst: 1000}, testLogger())
	return src, srv
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDailyChangeFromLastTwoCloses(t *testing.T) {
	stamps := []int64{day(2025, 3, 12).Unix(), day(2025, 3, 13).Unix(), day(2025, 3, 14).Unix()}
	src, srv := sourceFor(t, chartJSON(stamps, []string{"95", "100", "104"}))
	defer srv.Close()

	pct, ok, err := src.DailyChange(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("daily change: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok")
	}
	if pct != 4 {
		t.Fatalf("expected +4%%, got %v", pct)
	}
}

func TestDailyChangeDropsNullCloses(t *testing.T) {
	stamps := []int64{day(2025, 3, 12).Unix(), day(2025, 3, 13).Unix(), day(2025, 3, 14).Unix()}
	src, srv := sourceFor(t, chartJSON(stamps, []string{"100", "null", "110"}))
	defer srv.Close()

	pct, ok, err := src.DailyChange(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("daily change: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok after dropping the null close")
	}
	if pct != 10 {
		t.Fatalf("expected +10%%, got %v", pct)
	}
}

func TestDailyChangeSingleCloseSkips(t *testing.T) {
	src, srv := sourceFor(t, chartJSON([]int64{day(2025, 3, 14).Unix()}, []string{"100"}))
	defer srv.Close()

	_, ok, err := src.DailyChange(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("daily change: %v", err)
	}
	if ok {
		t.Fatalf("one close must be skipped, not reported")
	}
}

func TestDailyChangeAPIError(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`
	src, srv := sourceFor(t, body)
	defer srv.Close()

	if _, _, err := src.DailyChange(context.Background(), "BOGUS"); err == nil {
		t.Fatalf("expected error from chart error payload")
	}
}

func TestChangeOnFindsDate(t *testing.T) {
	stamps := []int64{day(2025, 3, 11).Unix(), day(2025, 3, 12).Unix(), day(2025, 3, 13).Unix()}
	src, srv := sourceFor(t, chartJSON(stamps, []string{"100", "105", "110"}))
	defer srv.Close()

	pct, ok, err := src.ChangeOn(context.Background(), "INFY", day(2025, 3, 12))
	if err != nil {
		t.Fatalf("change on: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok")
	}
	if pct != 5 {
		t.Fatalf("expected +5%%, got %v", pct)
	}
}

func TestChangeOnMissingDateSkips(t *testing.T) {
	stamps := []int64{day(2025, 3, 11).Unix(), day(2025, 3, 12).Unix()}
	src, srv := sourceFor(t, chartJSON(stamps, []string{"100", "105"}))
	defer srv.Close()

	// The 14th is absent from the window; the instrument did not trade.
	_, ok, err := src.ChangeOn(context.Background(), "INFY", day(2025, 3, 14))
	if err != nil {
		t.Fatalf("change on: %v", err)
	}
	if ok {
		t.Fatalf("expected skip for a date with no bar")
	}
}
