package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestWrapErrorPassesThrough(t *testing.T) {
	for _, e := range []error{
		nil,
		sql.ErrNoRows,
		errors.New("bar"),
		&mysql.MySQLError{Number: 1146, Message: "table doesn't exist"},
	} {
		assert.Equal(t, e, WrapError(e))
	}
}

func TestWrapErrorMapsConstraints(t *testing.T) {
	dup := WrapError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.ErrorIs(t, dup, ErrDuplicateKey)
	assert.Contains(t, dup.Error(), "Duplicate entry")

	fk := WrapError(fmt.Errorf("insert show: %w", &mysql.MySQLError{Number: 1452}))
	assert.ErrorIs(t, fk, ErrForeignKey)
}
