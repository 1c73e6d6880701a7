package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 5, d.Day())

	// 前端可能传入完整时间戳，只保留日期部分
	d, err = ParseDate("2024-02-01T08:30:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", d.String())

	_, err = ParseDate("01/05/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	out, err := json.Marshal(wrapper{Date: NewDate(2024, time.March, 9)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-09"}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &w))
	assert.True(t, w.Date.IsZero())

	require.Error(t, json.Unmarshal([]byte(`{"date":"not-a-date"}`), &w))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2024-01-20", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-21")))
	assert.Equal(t, "2024-01-21", d.String())

	require.NoError(t, d.Scan("2024-01-22 00:00:00"))
	assert.Equal(t, "2024-01-22", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestTransaction_BeforeCreate(t *testing.T) {
	txn := &Transaction{Amount: 10}
	require.NoError(t, txn.BeforeCreate(nil))
	assert.Len(t, txn.ID, 36)

	kept := &Transaction{ID: "fixed"}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
}
