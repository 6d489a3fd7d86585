package schedule

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
)

// failingExecutor отвечает на любой запрос заданной ошибкой
type failingExecutor struct {
	err error
}

func (f failingExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, f.err
}

func (f failingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, f.err
}

func (f failingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestGetByShop_SerializationFailureIsNotWrapped(t *testing.T) {
	serializationErr := &pq.Error{Code: pgerrors.SerializationFailure}
	repo := NewRepository(failingExecutor{err: serializationErr})

	_, err := repo.GetByShop(context.Background(), 1)
	require.Error(t, err)

	assert.True(t, pgerrors.IsRetryable(err))
	assert.Same(t, serializationErr, err)
	assert.False(t, errors.Is(err, ErrExecQuery))
}

func TestGetByShop_OtherErrorsAreWrapped(t *testing.T) {
	repo := NewRepository(failingExecutor{err: &pq.Error{Code: "42P01"}})

	_, err := repo.GetByShop(context.Background(), 1)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.False(t, pgerrors.IsRetryable(err))
}
