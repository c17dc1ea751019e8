package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"TariffRadar/internal/model"
)

// StooqFetcher implements Fetcher using the Stooq daily CSV endpoint.
// Stooq serves long history and is tried first.
type StooqFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Stooq ticker
}

// NewStooqFetcher creates a new Stooq fetcher with optional proxy support.
func NewStooqFetcher(proxyURL string) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPY":    "spy.us",
			"SPX500": "^spx",
			"SPX":    "^spx",
			"SP500":  "^spx",
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

func (f *StooqFetcher) stooqSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return strings.ToLower(symbol) + ".us"
}

func (f *StooqFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://stooq.com/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		url.QueryEscape(f.stooqSymbol(symbol)),
		start.Format("20060102"), end.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stooq: status %d, body: %s", resp.StatusCode, string(body))
	}
	return parseStooqCSV(resp.Body)
}

// parseStooqCSV decodes the "Date,Open,High,Low,Close,Volume" payload.
// Stooq answers "No data" as a plain-text body, which surfaces here as a
// header mismatch.
func parseStooqCSV(r io.Reader) ([]model.OHLCV, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("stooq read header: %w", err)
	}
	if len(header) < 5 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("stooq: unexpected response header %q", strings.Join(header, ","))
	}

	var bars []model.OHLCV
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stooq read row: %w", err)
		}
		if len(rec) < 5 {
			continue
		}
		date, err := time.Parse(model.DateLayout, rec[0])
		if err != nil {
			continue
		}
		o, err1 := strconv.ParseFloat(rec[1], 64)
		h, err2 := strconv.ParseFloat(rec[2], 64)
		l, err3 := strconv.ParseFloat(rec[3], 64)
		c, err4 := strconv.ParseFloat(rec[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		var v float64
		if len(rec) > 5 && rec[5] != "" {
			v, _ = strconv.ParseFloat(rec[5], 64)
		}
		bars = append(bars, model.OHLCV{Date: date, Open: o, High: h, Low: l, Close: c, Volume: v})
	}
	return bars, nil
}
