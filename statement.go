package networth

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/fingest/networth/date"
)

// Sheet names required in every statement export.
const (
	sheetClosedPositions = "Closed Positions"
	sheetAccountActivity = "Account Activity"
)

// Account Activity row types the engine cares about. Other types (fees,
// interest, adjustments) are carried through but not interpreted.
const (
	TypeOpenPosition   = "Open Position"
	TypePositionClosed = "Position closed"
	TypeDeposit        = "Deposit"
	TypeSplit          = "Split"
)

// brokerTimeFormat is the day-first timestamp format of the export. Parsed
// timestamps are truncated to the calendar day: the whole reconstruction is
// day-granular.
const brokerTimeFormat = "02/01/2006 15:04:05"

// ClosedRow is one row of the "Closed Positions" ledger.
type ClosedRow struct {
	OpenDate  date.Date
	CloseDate date.Date
	Profit    decimal.Decimal // realized profit in USD
}

// ActivityRow is one row of the "Account Activity" ledger.
type ActivityRow struct {
	Date      date.Date
	Type      string
	Details   InstrumentKey
	Units     decimal.Decimal // signed by the engine: closes flip the sign
	Amount    decimal.Decimal // USD amount of the row
	AssetType string
}

// Statement is the typed form of one statement export. It is immutable once
// parsed; every downstream series is derived from it.
type Statement struct {
	Closed   []ClosedRow
	Activity []ActivityRow
}

// ReadStatement loads and parses a statement export from a file path.
func ReadStatement(path string) (*Statement, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement %q: %w", path, err)
	}
	defer f.Close()
	return parseStatement(f)
}

// ReadStatementFrom parses a statement export from a reader.
func ReadStatementFrom(r io.Reader) (*Statement, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement: %w", err)
	}
	defer f.Close()
	return parseStatement(f)
}

func parseStatement(f *excelize.File) (*Statement, error) {
	s := new(Statement)

	closed, err := sheetTable(f, sheetClosedPositions, "Close Date", "Open Date", "Profit(USD)")
	if err != nil {
		return nil, err
	}
	for i, row := range closed.rows {
		cr := ClosedRow{}
		if cr.CloseDate, err = closed.day(row, i, "Close Date"); err != nil {
			return nil, err
		}
		if cr.OpenDate, err = closed.day(row, i, "Open Date"); err != nil {
			return nil, err
		}
		if cr.Profit, err = closed.amount(row, i, "Profit(USD)"); err != nil {
			return nil, err
		}
		s.Closed = append(s.Closed, cr)
	}

	activity, err := sheetTable(f, sheetAccountActivity,
		"Date", "Type", "Details", "Units / Contracts", "Amount", "Asset type")
	if err != nil {
		return nil, err
	}
	for i, row := range activity.rows {
		ar := ActivityRow{
			Type:      activity.cell(row, "Type"),
			Details:   InstrumentKey(activity.cell(row, "Details")),
			AssetType: activity.cell(row, "Asset type"),
		}
		if ar.Date, err = activity.day(row, i, "Date"); err != nil {
			return nil, err
		}
		// Units and Amount are blank on rows where they don't apply.
		if ar.Units, err = activity.amount(row, i, "Units / Contracts"); err != nil {
			return nil, err
		}
		if ar.Amount, err = activity.amount(row, i, "Amount"); err != nil {
			return nil, err
		}
		if ar.Type == TypePositionClosed {
			// Net exposure is a plain signed sum downstream.
			ar.Units = ar.Units.Neg()
		}
		s.Activity = append(s.Activity, ar)
	}

	return s, nil
}

// table is one sheet with its header resolved to column indexes.
type table struct {
	sheet string
	cols  map[string]int
	rows  [][]string // data rows, header excluded
}

// sheetTable loads a sheet and checks that every required column is present.
func sheetTable(f *excelize.File, sheet string, required ...string) (*table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &MalformedStatementError{Sheet: sheet, Err: fmt.Errorf("missing sheet: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &MalformedStatementError{Sheet: sheet, Err: fmt.Errorf("sheet has no header row")}
	}
	t := &table{sheet: sheet, cols: make(map[string]int), rows: rows[1:]}
	for i, name := range rows[0] {
		t.cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := t.cols[name]; !ok {
			return nil, &MalformedStatementError{Sheet: sheet, Column: name}
		}
	}
	return t, nil
}

// cell returns the trimmed cell under the named column. Rows are ragged:
// trailing empty cells are not materialized by the reader.
func (t *table) cell(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// day parses a required timestamp cell down to its calendar day. i is the
// zero-based data row index, used only to report the sheet row.
func (t *table) day(row []string, i int, col string) (date.Date, error) {
	d, err := parseBrokerDay(t.cell(row, col))
	if err != nil {
		return date.Date{}, &MalformedStatementError{Sheet: t.sheet, Column: col, Row: i + 2, Err: err}
	}
	return d, nil
}

// amount parses a numeric cell. Blank and "-" mean zero: the export uses them
// on rows where the column does not apply.
func (t *table) amount(row []string, i int, col string) (decimal.Decimal, error) {
	raw := t.cell(row, col)
	if raw == "" || raw == "-" {
		return decimal.Decimal{}, nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &MalformedStatementError{Sheet: t.sheet, Column: col, Row: i + 2, Err: err}
	}
	return v, nil
}

// parseBrokerDay accepts the broker timestamp with or without a time part.
func parseBrokerDay(raw string) (date.Date, error) {
	if raw == "" {
		return date.Date{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(brokerTimeFormat, raw); err == nil {
		return date.FromTime(t), nil
	}
	t, err := time.Parse("02/01/2006", raw)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid timestamp %q want format %q: %w", raw, brokerTimeFormat, err)
	}
	return date.FromTime(t), nil
}

// Instruments returns every InstrumentKey with open/close activity, in no
// particular order.
func (s *Statement) Instruments() []InstrumentKey {
	seen := make(map[InstrumentKey]bool)
	var keys []InstrumentKey
	for _, row := range s.Activity {
		if row.Type != TypeOpenPosition && row.Type != TypePositionClosed {
			continue
		}
		if row.Details == "" || seen[row.Details] {
			continue
		}
		seen[row.Details] = true
		keys = append(keys, row.Details)
	}
	return keys
}

// FirstActivity returns the earliest open/close date per instrument.
func (s *Statement) FirstActivity() map[InstrumentKey]date.Date {
	first := make(map[InstrumentKey]date.Date)
	for _, row := range s.Activity {
		if row.Type != TypeOpenPosition && row.Type != TypePositionClosed {
			continue
		}
		if cur, ok := first[row.Details]; !ok || row.Date.Before(cur) {
			first[row.Details] = row.Date
		}
	}
	return first
}

// IsCrypto reports whether the statement's own asset-class column labels the
// instrument a crypto asset. Resolution trusts this flag, it never infers.
func (s *Statement) IsCrypto(key InstrumentKey) bool {
	for _, row := range s.Activity {
		if row.Details == key && strings.EqualFold(row.AssetType, "Crypto") {
			return true
		}
	}
	return false
}
