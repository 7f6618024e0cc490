package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	drepo "FinCast/internal/domain/repository"
	xlogger "FinCast/pkg/logger"
)

// DefaultSymbols is returned when the constituents table cannot be fetched.
var DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META"}

// Scraper implements a SymbolsProvider by parsing the S&P 500 constituents
// table from Wikipedia.
type Scraper struct {
	sourceURL string
	client    *http.Client
	logger    *xlogger.Logger
	metrics   drepo.Metrics
}

// New creates a symbols scraper.
func New(sourceURL string, timeout time.Duration, logger *xlogger.Logger, metrics drepo.Metrics) *Scraper {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Scraper{
		sourceURL: sourceURL,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
		metrics:   metrics,
	}
}

var _ drepo.SymbolsProvider = (*Scraper)(nil)

// Fetch returns the ticker symbols from the first column of the first
// wikitable on the page. Fetch or parse failure degrades to DefaultSymbols.
func (s *Scraper) Fetch(ctx context.Context) ([]string, error) {
	symbols, err := s.scrape(ctx)
	if err != nil {
		s.metrics.RecordProviderError("wikipedia")
		s.logger.Warn("symbol universe fetch failed, using defaults", xlogger.Error(err))
		return append([]string(nil), DefaultSymbols...), nil
	}
	s.logger.Info("symbol universe fetched", xlogger.Int("count", len(symbols)))
	return symbols, nil
}

func (s *Scraper) scrape(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "fincast/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var symbols []string
	doc.Find("table.wikitable").First().Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		sym := strings.TrimSpace(cell.Text())
		if sym != "" {
			symbols = append(symbols, sym)
		}
	})

	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols found in constituents table")
	}
	return symbols, nil
}
