package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/config"
)

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return New(sqlx.NewDb(mockDB, "mysql"), nil), mock
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{User: "fyyur", Pass: "pw", Host: "db", Port: "3306", Name: "fyyur"})

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "fyyur", cfg.User)
	assert.Equal(t, "pw", cfg.Passwd)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "fyyur", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestTransactionContextCommits(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM shows").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.TransactionContext(context.Background(), func(tx *Tx) error {
		_, err := tx.ExecContext(context.Background(), "DELETE FROM shows WHERE id = ?", 1)
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionContextRollsBack(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO venues").WillReturnError(boom)
	mock.ExpectRollback()

	err := db.TransactionContext(context.Background(), func(tx *Tx) error {
		_, err := tx.ExecContext(context.Background(), "INSERT INTO venues (name) VALUES (?)", "x")
		return err
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionContextBeginFails(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	called := false
	err := db.TransactionContext(context.Background(), func(tx *Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, called)
}
