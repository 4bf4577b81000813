package parsecache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSQLStorePutTokensExecutesUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO parse_cache`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := &SQLStore{db: db, ttl: time.Minute}
	err = store.PutTokens(context.Background(), "k", map[string]int{"a": 1})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetTokensMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT payload FROM parse_cache`).
		WillReturnError(sql.ErrNoRows)

	store := &SQLStore{db: db, ttl: time.Minute}
	_, ok := store.GetTokens(context.Background(), "missing")
	require.False(t, ok)
}
