package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Save(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectSet("session:sid", "42", time.Hour).SetVal("OK")

	require.NoError(t, NewRedisStore(rdb).Save(context.Background(), "sid", 42, time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Load(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("session:sid").SetVal("42")
	mock.ExpectGet("session:gone").RedisNil()
	mock.ExpectGet("session:broken").SetErr(errors.New("connection reset"))

	s := NewRedisStore(rdb)
	ctx := context.Background()

	id, ok, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok, err = s.Load(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.Load(ctx, "broken")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Delete(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("session:sid").SetVal(0)

	require.NoError(t, NewRedisStore(rdb).Delete(context.Background(), "sid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
