package infra

import (
	"errors"

	"claimflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// KindConflict covers admission failures that are not index
	// violations: capacity exhaustion and active-duplicate pre-checks.
	KindConflict RepositoryErrorKind = "CONFLICT"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func NewRepoErr(kind RepositoryErrorKind, msg string) error {
	return RepositoryError{Kind: kind, msg: msg}
}

// WrapRepoErr classifies a low-level database error into a repository
// kind. Unique violations become DUPLICATE_KEY so racing writers get a
// typed conflict rather than a raw pg error.
func WrapRepoErr(msg string, err error) error {
	kind := KindDBFailure

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		kind = KindNotFound
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			kind = KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			kind = KindForeignKeyViolated
		}
	}

	return RepositoryError{Kind: kind, msg: msg, err: errs.Wrap(err, msg)}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
