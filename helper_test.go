package networth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fingest/networth/date"
)

// fakeMarket is an in-memory MarketData with scripted data per symbol.
type fakeMarket struct {
	closes    map[string]*date.History[float64]
	latest    map[string]float64
	bulkErr   error
	bulkCalls int
	histCalls []string
}

func (m *fakeMarket) DailyCloses(_ context.Context, symbols []string, _ date.Date) (map[string]*date.History[float64], error) {
	m.bulkCalls++
	if m.bulkErr != nil {
		return nil, m.bulkErr
	}
	out := make(map[string]*date.History[float64])
	for _, s := range symbols {
		if h, ok := m.closes[s]; ok {
			out[s] = h
		}
	}
	return out, nil
}

func (m *fakeMarket) CloseHistory(_ context.Context, symbol string, _ date.Date) (*date.History[float64], error) {
	m.histCalls = append(m.histCalls, symbol)
	h, ok := m.closes[symbol]
	if !ok {
		return nil, fmt.Errorf("history for %q: %w", symbol, ErrNoMarketData)
	}
	return h, nil
}

func (m *fakeMarket) LatestPrice(_ context.Context, symbol string) (float64, error) {
	v, ok := m.latest[symbol]
	if !ok {
		return 0, fmt.Errorf("price for %q: %w", symbol, ErrNoMarketData)
	}
	return v, nil
}

// hist builds a history from alternating "date", value pairs.
func hist(t *testing.T, pairs ...any) *date.History[float64] {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("hist wants date, value pairs")
	}
	h := new(date.History[float64])
	for i := 0; i < len(pairs); i += 2 {
		h.Append(date.MustParse(pairs[i].(string)), pairs[i+1].(float64))
	}
	return h
}

// buildWorkbook writes an in-memory statement export with the two expected
// sheets. Each row slice follows its sheet's header order.
func buildWorkbook(t *testing.T, closed, activity [][]any) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	writeSheet := func(sheet string, header []any, rows [][]any) {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			t.Fatal(err)
		}
		for i, row := range rows {
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	writeSheet(sheetClosedPositions,
		[]any{"Position ID", "Open Date", "Close Date", "Profit(USD)"}, closed)
	writeSheet(sheetAccountActivity,
		[]any{"Date", "Type", "Details", "Amount", "Units / Contracts", "Asset type"}, activity)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

// readWorkbook builds and parses a statement in one call.
func readWorkbook(t *testing.T, closed, activity [][]any) *Statement {
	t.Helper()
	s, err := ReadStatementFrom(buildWorkbook(t, closed, activity))
	if err != nil {
		t.Fatalf("reading statement: %v", err)
	}
	return s
}
