package nse

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	drepo "BreadthPulse/internal/domain/repository"
	xhttp "BreadthPulse/pkg/http"
	"BreadthPulse/pkg/logger"
)

const DefaultListURL = "https://archives.nseindia.com/content/indices/ind_nifty500list.csv"

// Directory fetches the Nifty 500 constituent list with sector tags.
// When the exchange archive is unreachable it falls back to a fixed
// large-cap universe so a tracking run still produces a snapshot.
type Directory struct {
	url    string
	client *xhttp.Client
	logger *logger.Logger
}

// NewDirectory creates a constituent list source. An empty url selects
// the NSE archive default.
func NewDirectory(url string, timeout time.Duration, lgr *logger.Logger) *Directory {
	if url == "" {
		url = DefaultListURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Directory{
		url:    url,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger: lgr,
	}
}

var _ drepo.StockDirectory = (*Directory)(nil)

// List downloads and parses the constituent CSV. Rows without a symbol
// are dropped; rows without an industry are tagged "Other".
func (d *Directory) List(ctx context.Context) ([]drepo.Listing, error) {
	var raw []byte
	err := d.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    d.url,
		Headers: map[string]string{
			"Accept": "text/csv",
		},
	}, &raw)
	if err != nil {
		d.logger.Warn("constituent list fetch failed, using fallback universe",
			logger.String("url", d.url),
			logger.Error(err))
		return Fallback(), nil
	}

	listings, err := parseListCSV(raw)
	if err != nil {
		d.logger.Warn("constituent list parse failed, using fallback universe",
			logger.Error(err))
		return Fallback(), nil
	}
	if len(listings) == 0 {
		return Fallback(), nil
	}

	d.logger.Info("constituent list fetched",
		logger.Int("stocks", len(listings)),
		logger.Int("sectors", countSectors(listings)))
	return listings, nil
}

func parseListCSV(raw []byte) ([]drepo.Listing, error) {
	r := csv.NewReader(strings.NewReader(string(raw)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	symCol, secCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "symbol":
			symCol = i
		case "industry":
			secCol = i
		}
	}
	if symCol < 0 {
		return nil, fmt.Errorf("no Symbol column in header %v", header)
	}

	var listings []drepo.Listing
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// skip malformed rows, keep the rest
			continue
		}
		if symCol >= len(rec) {
			continue
		}
		symbol := strings.TrimSpace(rec[symCol])
		if symbol == "" {
			continue
		}
		sector := "Other"
		if secCol >= 0 && secCol < len(rec) {
			if s := strings.TrimSpace(rec[secCol]); s != "" {
				sector = s
			}
		}
		listings = append(listings, drepo.Listing{Symbol: symbol, Sector: sector})
	}
	return listings, nil
}

func countSectors(listings []drepo.Listing) int {
	seen := make(map[string]struct{}, 32)
	for _, l := range listings {
		seen[l.Sector] = struct{}{}
	}
	return len(seen)
}
