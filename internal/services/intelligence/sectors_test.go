package intelligence

import (
	"testing"
)

func TestSignalsInsufficientHistory(t *testing.T) {
	e := NewSectorEngine()
	if got := e.Signals(sectorHistory("Banks", 70, 70, 70, 70, 70, 70), nil); got != nil {
		t.Fatalf("6 rows should be unavailable, got %+v", got)
	}
}

func TestSignalsStrongUptrend(t *testing.T) {
	e := NewSectorEngine()
	got := e.Signals(sectorHistory("Banks", 66, 68, 70, 70, 72, 74, 76), nil)
	if len(got) != 1 {
		t.Fatalf("signals = %d, want 1", len(got))
	}
	s := got[0]
	if s.Pattern.Score != 80 || s.Pattern.Description != "Strong uptrend" {
		t.Fatalf("pattern = %+v, want score 80", s.Pattern)
	}
	if s.Pattern.Pattern != "GGGGGGG" {
		t.Fatalf("pattern string = %q", s.Pattern.Pattern)
	}
	if s.Action != "STRONG BUY" {
		t.Fatalf("action = %s (score %v), want STRONG BUY", s.Action, s.Score)
	}
	if s.Trend != "Rising" {
		t.Fatalf("trend = %s, want Rising", s.Trend)
	}
}

func TestSignalsStrongDowntrend(t *testing.T) {
	e := NewSectorEngine()
	got := e.Signals(sectorHistory("Metals", 40, 38, 36, 30, 28, 24, 20), nil)
	if len(got) != 1 {
		t.Fatalf("signals = %d, want 1", len(got))
	}
	s := got[0]
	if s.Pattern.Score != 20 || s.Pattern.Description != "Strong downtrend" {
		t.Fatalf("pattern = %+v, want score 20", s.Pattern)
	}
	if s.Action != "STRONG SELL" && s.Action != "SELL" {
		t.Fatalf("action = %s, want a sell-class action", s.Action)
	}
	if s.Trend != "Falling" {
		t.Fatalf("trend = %s, want Falling", s.Trend)
	}
}

func TestSignalsSkipShortSectorHistories(t *testing.T) {
	e := NewSectorEngine()
	series := sectorHistory("Banks", 70, 70, 70, 70, 70)
	series = append(series, sectorHistory("IT", 50, 50, 50)...)
	got := e.Signals(series, nil)
	if len(got) != 1 {
		t.Fatalf("signals = %d, want only the sector with >= 5 rows", len(got))
	}
	if got[0].Sector != "Banks" {
		t.Fatalf("sector = %s, want Banks", got[0].Sector)
	}
}

func TestSignalsSortedByScore(t *testing.T) {
	e := NewSectorEngine()
	series := sectorHistory("Weak", 30, 28, 26, 24, 22, 20, 18)
	series = append(series, sectorHistory("Strong", 66, 68, 70, 72, 74, 76, 78)...)
	got := e.Signals(series, nil)
	if len(got) != 2 {
		t.Fatalf("signals = %d, want 2", len(got))
	}
	if got[0].Sector != "Strong" || got[1].Sector != "Weak" {
		t.Fatalf("not sorted by score: %s, %s", got[0].Sector, got[1].Sector)
	}
}

func TestSignalsTopStocks(t *testing.T) {
	e := NewSectorEngine()
	details := staticLookup{
		"Banks": {
			{Symbol: "AAA", Sector: "Banks", ChangePct: 6.2},
			{Symbol: "BBB", Sector: "Banks", ChangePct: 4.0},
			{Symbol: "CCC", Sector: "Banks", ChangePct: 1.1},
			{Symbol: "DDD", Sector: "Banks", ChangePct: -3.5},
		},
	}
	got := e.Signals(sectorHistory("Banks", 66, 68, 70, 70, 72, 74, 76), details)
	if len(got) != 1 {
		t.Fatalf("signals = %d, want 1", len(got))
	}
	picks := got[0].TopStocks
	if len(picks) != 3 {
		t.Fatalf("picks = %d, want 3 for a buy-class action", len(picks))
	}
	if picks[0].Symbol != "AAA" || picks[2].Symbol != "CCC" {
		t.Fatalf("unexpected picks %+v", picks)
	}
}

func TestSignalsBottomStocksForSell(t *testing.T) {
	e := NewSectorEngine()
	details := staticLookup{
		"Metals": {
			{Symbol: "AAA", Sector: "Metals", ChangePct: 1.0},
			{Symbol: "BBB", Sector: "Metals", ChangePct: -4.0},
			{Symbol: "CCC", Sector: "Metals", ChangePct: -6.0},
			{Symbol: "DDD", Sector: "Metals", ChangePct: -9.0},
		},
	}
	got := e.Signals(sectorHistory("Metals", 40, 38, 36, 30, 28, 24, 20), details)
	if len(got) != 1 {
		t.Fatalf("signals = %d, want 1", len(got))
	}
	picks := got[0].TopStocks
	if len(picks) != 3 {
		t.Fatalf("picks = %d, want 3 for a sell-class action", len(picks))
	}
	if picks[2].Symbol != "DDD" {
		t.Fatalf("worst performer should close the list, got %+v", picks)
	}
}

func TestSignalsMissingDetailTable(t *testing.T) {
	e := NewSectorEngine()
	got := e.Signals(sectorHistory("Banks", 66, 68, 70, 70, 72, 74, 76), staticLookup{})
	if len(got) != 1 {
		t.Fatalf("signals = %d, want 1", len(got))
	}
	if len(got[0].TopStocks) != 0 {
		t.Fatalf("missing details must yield an empty performer list")
	}
}

func TestSignalsWindowCapAtTen(t *testing.T) {
	e := NewSectorEngine()
	// 12 rows; only the last 10 should feed the metrics
	series := sectorHistory("Banks", 10, 10, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70)
	got := e.Signals(series, nil)
	if len(got) != 1 {
		t.Fatalf("signals = %d, want 1", len(got))
	}
	if got[0].Pattern.Pattern != "GGGGGGG" {
		t.Fatalf("early rows must not leak into the pattern: %q", got[0].Pattern.Pattern)
	}
}
