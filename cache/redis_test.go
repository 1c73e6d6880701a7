package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fintrack/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() []models.Transaction {
	return []models.Transaction{
		{ID: "a", Amount: 12.5, Date: models.MustParseDate("2024-01-05"), Description: "午餐"},
	}
}

func encodeEntry(t *testing.T, version int64, list []models.Transaction) []byte {
	raw, err := json.Marshal(listEntry{Version: version, Items: list})
	require.NoError(t, err)
	return raw
}

func TestRedisListCache_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	mock.ExpectMGet(ListKey, VersionKey).SetVal([]interface{}{nil, nil})

	list, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListCache_SetThenGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	raw := encodeEntry(t, 3, sampleList())
	mock.ExpectSet(ListKey, raw, time.Minute).SetVal("OK")
	mock.ExpectMGet(ListKey, VersionKey).SetVal([]interface{}{string(raw), "3"})

	require.NoError(t, c.Set(context.Background(), 3, sampleList()))

	list, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "2024-01-05", list[0].Date.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListCache_StaleVersionIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	// 回源期间有写入，版本已从 3 递增到 4
	raw := encodeEntry(t, 3, sampleList())
	mock.ExpectMGet(ListKey, VersionKey).SetVal([]interface{}{string(raw), "4"})

	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListCache_MissingVersionMatchesZero(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	raw := encodeEntry(t, 0, nil)
	mock.ExpectMGet(ListKey, VersionKey).SetVal([]interface{}{string(raw), nil})

	list, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRedisListCache_CorruptValueIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	mock.ExpectMGet(ListKey, VersionKey).SetVal([]interface{}{"{not json", "1"})

	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisListCache_Version(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	mock.ExpectGet(VersionKey).RedisNil()
	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	mock.ExpectGet(VersionKey).SetVal("7")
	v, err = c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	mock.ExpectGet(VersionKey).SetErr(errors.New("connection refused"))
	_, err = c.Version(context.Background())
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisListCache(client, time.Minute)

	mock.ExpectIncr(VersionKey).SetVal(1)
	require.NoError(t, c.Invalidate(context.Background()))

	mock.ExpectIncr(VersionKey).SetErr(errors.New("connection refused"))
	assert.Error(t, c.Invalidate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
