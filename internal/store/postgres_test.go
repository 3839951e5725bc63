package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestPostgresStore_Read(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := &PostgresStore{db: mock, logger: newTestLogger()}

	query := `
		SELECT value
		FROM ledger_kv
		WHERE key = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"a":1}`))
		mock.ExpectQuery(query).WithArgs("pf_accounts").WillReturnRows(rows)

		value, err := s.Read(ctx, "pf_accounts")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("pf_accounts").WillReturnError(pgx.ErrNoRows)

		_, err := s.Read(ctx, "pf_accounts")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectQuery(query).WithArgs("pf_accounts").WillReturnError(expectedErr)

		_, err := s.Read(ctx, "pf_accounts")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read key")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Write(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := &PostgresStore{db: mock, logger: newTestLogger()}

	query := `
		INSERT INTO ledger_kv \(key, value, updated_at\)
		VALUES \(\$1, \$2::jsonb, NOW\(\)\)
		ON CONFLICT \(key\) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW\(\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("pf_accounts", `{"a":1}`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := s.Write(ctx, "pf_accounts", []byte(`{"a":1}`))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs("pf_accounts", `{"a":1}`).
			WillReturnError(expectedErr)

		err := s.Write(ctx, "pf_accounts", []byte(`{"a":1}`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write key")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Exists(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := &PostgresStore{db: mock, logger: newTestLogger()}

	query := `SELECT EXISTS \(SELECT 1 FROM ledger_kv WHERE key = \$1\)`

	t.Run("present", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"exists"}).AddRow(true)
		mock.ExpectQuery(query).WithArgs("pf_user_profile").WillReturnRows(rows)

		exists, err := s.Exists(ctx, "pf_user_profile")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"exists"}).AddRow(false)
		mock.ExpectQuery(query).WithArgs("pf_user_profile").WillReturnRows(rows)

		exists, err := s.Exists(ctx, "pf_user_profile")
		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Clear(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := &PostgresStore{db: mock, logger: newTestLogger()}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM ledger_kv`).
			WillReturnResult(pgxmock.NewResult("DELETE", 5))

		assert.NoError(t, s.Clear(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(`DELETE FROM ledger_kv`).WillReturnError(expectedErr)

		err := s.Clear(ctx)
		assert.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
