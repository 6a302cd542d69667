package ledger

import (
	"fmt"
	"strconv"
)

// Amount is a monetary value in integer base units.
//
// Amounts are fixed-width integers end to end - they are parsed exactly
// once at the outermost boundary (CLI flag, HTTP body) and never stored
// or compared as strings. int64 covers the full range the registry
// needs; negative amounts are rejected at every boundary.
type Amount int64

// ParseAmount converts a decimal base-unit string to an Amount.
// Rejects empty input, non-digits, and negative values.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return 0, fmt.Errorf("parse amount: empty string")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("parse amount %q: negative", s)
	}
	return Amount(v), nil
}

// String returns the amount as a decimal base-unit string.
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}
