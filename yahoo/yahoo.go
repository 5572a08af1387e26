// Package yahoo implements the market-data capability against Yahoo
// Finance's public quote endpoints: bulk daily closes via the spark
// endpoint, per-symbol history and latest prices via the chart endpoint.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/fingest/networth/date"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client queries Yahoo Finance. The zero value is not usable, call New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client with a daily-expiring disk cache.
func New() *Client {
	return &Client{baseURL: defaultBaseURL, http: newCachingClient()}
}

// NewWith returns a client against a custom base URL and HTTP client.
// Tests point it at a local server.
func NewWith(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

// DailyCloses fetches daily close series for all symbols in one spark
// request. Symbols the provider does not know are absent from the result.
func (c *Client) DailyCloses(ctx context.Context, symbols []string, from date.Date) (map[string]*date.History[float64], error) {
	if len(symbols) == 0 {
		return map[string]*date.History[float64]{}, nil
	}
	addr := fmt.Sprintf("%s/v7/finance/spark?symbols=%s&range=%s&interval=1d",
		c.baseURL, url.QueryEscape(strings.Join(symbols, ",")), sparkRange(from))

	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("spark request: %w", err)
	}

	results, err := jlist(jobj, "$.spark.result")
	if err != nil {
		return nil, fmt.Errorf("spark response: %w", err)
	}
	series := make(map[string]*date.History[float64], len(results))
	for _, res := range results {
		symbol, err := jstring(res, "$.symbol")
		if err != nil {
			continue
		}
		h, err := closeSeries(res, "$.response[0].timestamp", "$.response[0].indicators.quote[0].close")
		if err != nil || h.Len() == 0 {
			// absent or empty: the caller treats it as unavailable
			continue
		}
		series[symbol] = h
	}
	return series, nil
}

// CloseHistory fetches the daily close series for one symbol from 'from' to
// today via the chart endpoint.
func (c *Client) CloseHistory(ctx context.Context, symbol string, from date.Date) (*date.History[float64], error) {
	period1 := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).Unix()
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(symbol), period1, time.Now().Unix())

	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("chart request for %q: %w", symbol, err)
	}
	h, err := closeSeries(jobj, "$.chart.result[0].timestamp", "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		return nil, fmt.Errorf("chart response for %q: %w", symbol, err)
	}
	return h, nil
}

// LatestPrice returns the most recent regular-market price of a symbol.
// Works for FX pairs like "EURUSD=X" as well as stocks.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL, url.PathEscape(symbol))

	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return 0, fmt.Errorf("chart request for %q: %w", symbol, err)
	}
	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return 0, fmt.Errorf("no latest price for %q: %w", symbol, err)
	}
	return price, nil
}

// sparkRange maps "days since from" onto the ranges the spark endpoint
// accepts, rounding up.
func sparkRange(from date.Date) string {
	years := date.Today().Year() - from.Year() + 1
	switch {
	case years <= 1:
		return "1y"
	case years <= 2:
		return "2y"
	case years <= 5:
		return "5y"
	case years <= 10:
		return "10y"
	default:
		return "max"
	}
}

// closeSeries builds a daily history from parallel timestamp and close
// arrays. Null closes (non-trading placeholders) are skipped.
func closeSeries(jobj any, timestampPath, closePath string) (*date.History[float64], error) {
	timestamps, err := jlist(jobj, timestampPath)
	if err != nil {
		return nil, err
	}
	closes, err := jlist(jobj, closePath)
	if err != nil {
		return nil, err
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("timestamp/close length mismatch: %d != %d", len(timestamps), len(closes))
	}
	h := new(date.History[float64])
	for i, ts := range timestamps {
		sec, ok := ts.(float64) // JSON numbers decode as float64
		if !ok {
			continue
		}
		close, ok := closes[i].(float64)
		if !ok {
			continue
		}
		h.Append(date.FromTime(time.Unix(int64(sec), 0).UTC()), close)
	}
	return h, nil
}

// jsonpath helpers. The library is never clear about whether it returns a
// list of one answer or a single answer, so the scalar helpers unwrap both.

func jlist(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("parsing %q: not a list", path)
	}
	return list, nil
}

func jscalar(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jstring(jobj any, path string) (string, error) {
	jval, err := jscalar(jobj, path)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("parsing %q: not a string: %v", path, jval)
	}
	return s, nil
}

func jfloat(jobj any, path string) (float64, error) {
	jval, err := jscalar(jobj, path)
	if err != nil {
		return 0, err
	}
	f, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("parsing %q: not a float: %v", path, jval)
	}
	return f, nil
}
