package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func TestCache_GetOrSetJSON_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := New(db)
	key := KeyConcertView(7, ViewSummary, 0)

	mock.ExpectGet(key).SetVal(`{"id":7,"name":"cached"}`)

	got, err := GetOrSetJSON(context.Background(), cache, key, time.Minute,
		func(ctx context.Context) (summary, error) {
			t.Fatal("loader must not run on a hit")
			return summary{}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, summary{ID: 7, Name: "cached"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrSetJSON_MissLoadsAndStores(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := New(db)
	key := KeyConcertView(8, ViewSummary, 0)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, `{"id":8,"name":"fresh"}`, time.Minute).SetVal("OK")

	calls := 0
	got, err := GetOrSetJSON(context.Background(), cache, key, time.Minute,
		func(ctx context.Context) (summary, error) {
			calls++
			return summary{ID: 8, Name: "fresh"}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(8), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrSetJSON_LoaderError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := New(db)
	key := KeyConcertView(9, ViewSummary, 0)
	boom := errors.New("not found")

	mock.ExpectGet(key).RedisNil()
	mock.ExpectGet(key).RedisNil()

	_, err := GetOrSetJSON(context.Background(), cache, key, time.Minute,
		func(ctx context.Context) (summary, error) {
			return summary{}, boom
		})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrSetJSON_NilCacheCallsLoader(t *testing.T) {
	got, err := GetOrSetJSON(context.Background(), nil, "k", time.Minute,
		func(ctx context.Context) (int, error) { return 42, nil })

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestCache_InvalidateConcert(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := New(db)

	mock.ExpectIncr(KeyConcertGeneration(3)).SetVal(1)

	require.NoError(t, cache.InvalidateConcert(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())

	var nilCache *Cache
	assert.NoError(t, nilCache.InvalidateConcert(context.Background(), 3))
}

func TestCache_GetOrSetConcertJSON_InvalidationDuringLoad(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := New(db)
	ctx := context.Background()
	gen := KeyConcertGeneration(4)

	// first read: the write commits and invalidates while the loader runs
	mock.ExpectGet(gen).RedisNil()
	mock.ExpectGet(KeyConcertView(4, ViewSummary, 0)).RedisNil()
	mock.ExpectGet(KeyConcertView(4, ViewSummary, 0)).RedisNil()
	mock.ExpectIncr(gen).SetVal(1)
	mock.ExpectSet(KeyConcertView(4, ViewSummary, 0), `{"id":4,"name":"stale"}`, time.Minute).SetVal("OK")

	// next read sees the new generation and misses the stale value
	mock.ExpectGet(gen).SetVal("1")
	mock.ExpectGet(KeyConcertView(4, ViewSummary, 1)).RedisNil()
	mock.ExpectGet(KeyConcertView(4, ViewSummary, 1)).RedisNil()
	mock.ExpectSet(KeyConcertView(4, ViewSummary, 1), `{"id":4,"name":"fresh"}`, time.Minute).SetVal("OK")

	got, err := GetOrSetConcertJSON(ctx, cache, 4, ViewSummary, time.Minute,
		func(ctx context.Context) (summary, error) {
			require.NoError(t, cache.InvalidateConcert(ctx, 4))
			return summary{ID: 4, Name: "stale"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "stale", got.Name)

	got, err = GetOrSetConcertJSON(ctx, cache, 4, ViewSummary, time.Minute,
		func(ctx context.Context) (summary, error) {
			return summary{ID: 4, Name: "fresh"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrSetConcertJSON_GenerationUnreadable(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := New(db)

	mock.ExpectGet(KeyConcertGeneration(6)).SetErr(errors.New("timeout"))

	calls := 0
	got, err := GetOrSetConcertJSON(context.Background(), cache, 6, ViewStatement, time.Minute,
		func(ctx context.Context) (summary, error) {
			calls++
			return summary{ID: 6}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(6), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "tixledger:v1:concert:5:gen", KeyConcertGeneration(5))
	assert.Equal(t, "tixledger:v1:concert:5:summary:g2", KeyConcertView(5, ViewSummary, 2))
	assert.Equal(t, "tixledger:v1:rl:buy:alice", KeyRateLimit("buy", "alice"))
	assert.Equal(t, "tixledger:v1:idem:buy:5:abc", KeyIdem("buy", 5, "abc"))
	assert.Equal(t, "tixledger:v1:ledger:changed", ChannelLedgerChanged())
}
