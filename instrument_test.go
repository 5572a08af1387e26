package networth

import (
	"errors"
	"fmt"
	"testing"
)

func TestInstrumentKey(t *testing.T) {
	tests := []struct {
		key      InstrumentKey
		ticker   string
		currency string
	}{
		{"AAPL/USD", "AAPL", "USD"},
		{"RR.l/GBX", "RR.l", "GBX"},
		{"BRK.A/USD", "BRK.A", "USD"},
		{"NAKED", "NAKED", ""},
	}
	for _, tc := range tests {
		if got := tc.key.Ticker(); got != tc.ticker {
			t.Errorf("%q.Ticker() = %q, want %q", tc.key, got, tc.ticker)
		}
		if got := tc.key.Currency(); got != tc.currency {
			t.Errorf("%q.Currency() = %q, want %q", tc.key, got, tc.currency)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := USD(1234.56).String(); got != "$1,234.56" {
		t.Errorf("String() = %q", got)
	}
	if got := USD(-42).SignedString(); got != "-$42.00" {
		t.Errorf("negative SignedString() = %q", got)
	}
	if got := USD(42).SignedString(); got != "+$42.00" {
		t.Errorf("positive SignedString() = %q", got)
	}
	if got := USD(0).SignedString(); got != "-" {
		t.Errorf("zero SignedString() = %q", got)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, b := USD(10.10), USD(0.20)
	if got := a.Add(b).String(); got != "$10.30" {
		t.Errorf("Add = %q", got)
	}
	if got := b.Sub(a); !got.IsNegative() {
		t.Errorf("Sub = %v, want negative", got)
	}
}

func TestMalformedStatementError(t *testing.T) {
	cause := fmt.Errorf("bad cell")
	err := &MalformedStatementError{Sheet: "Account Activity", Column: "Date", Row: 7, Err: cause}

	if !IsMalformedStatement(err) {
		t.Error("IsMalformedStatement(err) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	wrapped := fmt.Errorf("reading statement: %w", err)
	if !IsMalformedStatement(wrapped) {
		t.Error("IsMalformedStatement must see through wrapping")
	}
	if IsMalformedStatement(errors.New("other")) {
		t.Error("IsMalformedStatement too eager")
	}
}
