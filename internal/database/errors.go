package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicateKey is a unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key value violates table constraint")

	// ErrForeignKey is returned when a row references a missing parent, or
	// a parent still has children.
	ErrForeignKey = errors.New("foreign key constraint violated")
)

// MySQL server error numbers.
const (
	errDupEntry         = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
	errNoReferencedRow2 = 1216
)

// WrapError unites MySQL driver errors into the package sentinels, keeping
// the server message. Other errors, including sql.ErrNoRows, are returned
// unchanged.
func WrapError(err error) error {
	var myErr *mysql.MySQLError
	if err == nil || !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case errDupEntry:
		return fmt.Errorf("%w: %s", ErrDuplicateKey, myErr.Message)
	case errRowIsReferenced, errNoReferencedRow, errRowIsReferenced2, errNoReferencedRow2:
		return fmt.Errorf("%w: %s", ErrForeignKey, myErr.Message)
	}
	return err
}
