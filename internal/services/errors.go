package services

import (
	"database/sql"
	"errors"

	"storefront/internal/repos"
	"storefront/internal/validate"
)

var (
	ErrBadCreds = errors.New("invalid credentials")
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Error attaches a client-facing message to one of the sentinel kinds above,
// so errors.Is(err, ErrNotFound) keeps working.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }
func conflict(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }

// storeErr translates store failures into the service taxonomy. fkMsg is the
// client-facing message used when a referenced row does not exist.
func storeErr(err error, fkMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case repos.IsUniqueViolation(err):
		return ErrConflict
	case fkMsg != "" && repos.IsForeignKeyViolation(err):
		return validate.Fail("", fkMsg)
	}
	return err
}
