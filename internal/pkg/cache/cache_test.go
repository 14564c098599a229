package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestTTL_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewTTL(time.Minute)

	var got sample
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", sample{Name: "sss", Count: 61}))
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, sample{Name: "sss", Count: 61}, got)
}

func TestTTL_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTL(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", sample{Name: "a"}))

	now = now.Add(59 * time.Second)
	var got sample
	require.NoError(t, c.Get(ctx, "k", &got))

	now = now.Add(time.Second)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestTTL_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewTTL(time.Minute)
	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))

	require.NoError(t, c.Invalidate(ctx, "a"))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "a", &v), ErrCacheMiss)
	require.NoError(t, c.Get(ctx, "b", &v))
	assert.Equal(t, 2, v)

	require.NoError(t, c.Invalidate(ctx))
	assert.ErrorIs(t, c.Get(ctx, "b", &v), ErrCacheMiss)
}

func TestRedis_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, time.Hour, "payroll:")

	mock.ExpectGet("payroll:tables:2025-01-01").RedisNil()

	var got sample
	err := r.Get(context.Background(), "tables:2025-01-01", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_GetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, time.Hour, "payroll:")

	mock.ExpectGet("payroll:k").SetVal(`{"name":"philhealth","count":2}`)

	var got sample
	require.NoError(t, r.Get(context.Background(), "k", &got))
	assert.Equal(t, sample{Name: "philhealth", Count: 2}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_SetAndInvalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, time.Hour, "payroll:")

	mock.ExpectSet("payroll:k", []byte(`{"name":"x","count":1}`), time.Hour).SetVal("OK")
	mock.ExpectDel("payroll:k").SetVal(1)

	require.NoError(t, r.Set(context.Background(), "k", sample{Name: "x", Count: 1}))
	require.NoError(t, r.Invalidate(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
