package networth

import (
	"errors"
	"fmt"
)

// ErrUnresolvedSymbol marks an InstrumentKey that could not be mapped to a
// market-data symbol. It is a terminal but non-fatal outcome: the instrument
// is excluded from valuation.
var ErrUnresolvedSymbol = errors.New("unresolved symbol")

// ErrNoMarketData marks a resolved symbol for which the provider returned no
// usable price history. Non-fatal: the instrument is excluded from valuation.
var ErrNoMarketData = errors.New("no market data")

// MalformedStatementError reports a structurally broken statement: a missing
// sheet, a missing required column, or an unparseable required cell. It is
// fatal for the whole pipeline run.
type MalformedStatementError struct {
	Sheet  string
	Column string
	Row    int // 1-based spreadsheet row, 0 when the problem is not row-bound
	Err    error
}

func (e *MalformedStatementError) Error() string {
	switch {
	case e.Column != "" && e.Row > 0:
		return fmt.Sprintf("malformed statement: sheet %q column %q row %d: %v", e.Sheet, e.Column, e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("malformed statement: sheet %q misses column %q", e.Sheet, e.Column)
	default:
		return fmt.Sprintf("malformed statement: sheet %q: %v", e.Sheet, e.Err)
	}
}

func (e *MalformedStatementError) Unwrap() error { return e.Err }

// IsMalformedStatement reports whether err is (or wraps) a statement
// structure error.
func IsMalformedStatement(err error) bool {
	var m *MalformedStatementError
	return errors.As(err, &m)
}
