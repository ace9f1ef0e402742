package postgres

import (
	"fmt"
	"strconv"
)

// Amounts and timestamps are uint64 in the ledger and NUMERIC(20,0) in the
// database; they travel as decimal text so no value is truncated.

func numeric(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func numericPtr(v *uint64) *string {
	if v == nil {
		return nil
	}
	s := numeric(*v)
	return &s
}

func parseNumeric(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse numeric %q: %w", s, err)
	}
	return v, nil
}

func parseNumericPtr(s *string) (*uint64, error) {
	if s == nil {
		return nil, nil
	}
	v, err := parseNumeric(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
