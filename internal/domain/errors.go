package domain

import "errors"

// ErrRejected is wrapped by every error that reports a request the ledger
// refused under one of its rules, as opposed to an infrastructure failure.
var ErrRejected = errors.New("rejected")

// IsRejected reports whether err is a ledger rule rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
