package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, 3, 5), d)
	assert.False(t, d.IsStamp())

	d, err = ParseDate("2024-03-05T00:00:00.000Z")
	require.NoError(t, err)
	assert.True(t, d.IsStamp())
	assert.True(t, d.SameDay(NewDate(2024, 3, 5)))

	_, err = ParseDate("05/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateJSONKeepsWireForm(t *testing.T) {
	for _, in := range []string{`"2024-01-08"`, `"2024-03-01T00:00:00.000Z"`} {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(in), &d))
		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}
}

func TestDateCompareIgnoresTimeOfDay(t *testing.T) {
	stamp, err := ParseDate("2024-01-08T18:30:00.000Z")
	require.NoError(t, err)
	plain := NewDate(2024, 1, 8)

	assert.Equal(t, 0, stamp.Compare(plain))
	assert.True(t, plain.OnOrBefore(NewDate(2024, 1, 9)))
	assert.False(t, NewDate(2024, 1, 10).OnOrBefore(plain))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 1, 10, 1, 0, 0, 0, loc) // still Jan 9 in UTC
	assert.Equal(t, NewDate(2024, 1, 10), DateOf(now))
}

func TestTransactionJSONOmitsEmptyRecurrence(t *testing.T) {
	tx := Transaction{
		ID:          "a",
		Amount:      AmountFromInt(200),
		Type:        Expense,
		Category:    "1",
		Description: "Lunch",
		Date:        NewDate(2024, 3, 5),
	}
	b, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a","amount":200,"type":"expense","category":"1","description":"Lunch","date":"2024-03-05","isRecurring":false}`, string(b))
}
