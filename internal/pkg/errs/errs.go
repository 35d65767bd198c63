package errs

import (
	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is matches sentinels attached with Mark as well as the regular
// unwrap chain. Callers comparing against marked sentinels must use
// this instead of the standard library errors.Is, which cannot see
// marks.
func Is(err error, reference error) bool {
	return cr.Is(err, reference)
}
