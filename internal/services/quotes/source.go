package quotes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	drepo "BreadthPulse/internal/domain/repository"
	"BreadthPulse/internal/services/ratelimit"
	xhttp "BreadthPulse/pkg/http"
	"BreadthPulse/pkg/logger"
	"BreadthPulse/pkg/util"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	// NSE listings carry an exchange suffix on the quote feed.
	symbolSuffix = ".NS"

	limiterKey = "quotes"
)

// Config tunes the quote source.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	RateBurst     int
}

// Source resolves daily percentage changes from a chart-style quote API.
// A change is the two most recent adjusted closes compared; instruments
// without two valid closes are skipped, not zero-filled.
type Source struct {
	cfg     Config
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	logger  *logger.Logger
}

func NewSource(cfg Config, lgr *logger.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 10
	}
	return &Source{
		cfg:     cfg,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		limiter: ratelimit.New(),
		logger:  lgr,
	}
}

var _ drepo.QuoteSource = (*Source)(nil)

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyChange compares the latest close against the previous one.
func (s *Source) DailyChange(ctx context.Context, symbol string) (float64, bool, error) {
	closes, _, err := s.fetchCloses(ctx, symbol, map[string][]string{
		"range":    {"5d"},
		"interval": {"1d"},
	})
	if err != nil {
		return 0, false, err
	}
	if len(closes) < 2 {
		return 0, false, nil
	}
	prev := closes[len(closes)-2]
	curr := closes[len(closes)-1]
	if prev == 0 {
		return 0, false, nil
	}
	return (curr - prev) / prev * 100, true, nil
}

// ChangeOn compares the close on date against the prior trading day's
// close. ok=false when the instrument did not trade on that date.
func (s *Source) ChangeOn(ctx context.Context, symbol string, date time.Time) (float64, bool, error) {
	day := util.Midnight(date)
	start := day.AddDate(0, 0, -5)
	end := day.AddDate(0, 0, 1)

	closes, stamps, err := s.fetchCloses(ctx, symbol, map[string][]string{
		"period1":  {strconv.FormatInt(start.Unix(), 10)},
		"period2":  {strconv.FormatInt(end.Unix(), 10)},
		"interval": {"1d"},
	})
	if err != nil {
		return 0, false, err
	}
	if len(closes) < 2 {
		return 0, false, nil
	}

	target := -1
	for i, ts := range stamps {
		if util.SameDate(time.Unix(ts, 0).UTC(), day.UTC()) {
			target = i
		}
	}
	if target <= 0 {
		return 0, false, nil
	}
	prev := closes[target-1]
	curr := closes[target]
	if prev == 0 {
		return 0, false, nil
	}
	return (curr - prev) / prev * 100, true, nil
}

// fetchCloses returns parallel slices of valid closes and their unix
// timestamps. Null closes are dropped from both.
func (s *Source) fetchCloses(ctx context.Context, symbol string, params map[string][]string) ([]float64, []int64, error) {
	if err := s.limiter.Wait(ctx, limiterKey, float64(s.cfg.RateBurst), s.cfg.RatePerSecond); err != nil {
		return nil, nil, err
	}

	var resp chartResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         fmt.Sprintf("%s/%s%s", s.cfg.BaseURL, symbol, symbolSuffix),
		QueryParams: params,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
			"Accept":     "application/json",
		},
	}, &resp)
	if err != nil {
		return nil, nil, fmt.Errorf("quote fetch %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, nil, fmt.Errorf("quote error %s: %s", symbol, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil, nil
	}

	result := resp.Chart.Result[0]
	raw := result.Indicators.Quote[0].Close

	closes := make([]float64, 0, len(raw))
	stamps := make([]int64, 0, len(raw))
	for i, c := range raw {
		if c == nil {
			continue
		}
		closes = append(closes, *c)
		if i < len(result.Timestamp) {
			stamps = append(stamps, result.Timestamp[i])
		} else {
			stamps = append(stamps, 0)
		}
	}
	return closes, stamps, nil
}
