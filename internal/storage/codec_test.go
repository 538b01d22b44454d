package storage

import (
	"testing"

	"expenso/internal/core"
	"expenso/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyEnvelope = `{"state":{"transactions":[{"id":"t1","amount":1200,"type":"expense","category":"3","description":"Internet","date":"2024-01-05T00:00:00.000Z","isRecurring":true,"recurringInterval":"monthly","nextRecurringDate":"2024-02-05T00:00:00.000Z"}],"categories":[{"id":"1","name":"Food","icon":"utensils","color":"#FF6B6B"}],"budgets":[{"categoryId":"1","limit":5000}],"theme":"dark"},"version":0}`

func TestDecodeEmptyIsInitial(t *testing.T) {
	for _, in := range []string{"", "   \n"} {
		snap, err := Decode([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, core.InitialSnapshot(), snap)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	for _, in := range []string{"{not json", `{"transactions":"nope"}`, `[1,2,3]`} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, store.ErrCorrupt, in)
	}
}

func TestDecodeLegacyEnvelope(t *testing.T) {
	snap, err := Decode([]byte(legacyEnvelope))
	require.NoError(t, err)

	assert.Equal(t, core.Dark, snap.Theme)
	require.Len(t, snap.Transactions, 1)
	tx := snap.Transactions[0]
	assert.Equal(t, "1200", tx.Amount.String())
	assert.True(t, tx.Date.IsStamp())
	assert.True(t, tx.NextRecurringDate.SameDay(core.NewDate(2024, 2, 5)))
	require.Len(t, snap.Budgets, 1)
	assert.Equal(t, "5000", snap.Budgets[0].Limit.String())
}

func TestLegacyNonRecurringRecordRoundTrips(t *testing.T) {
	const legacy = `{"transactions":[{"amount":50,"type":"expense","category":"1","description":"Snacks","date":"2024-03-01T00:00:00.000Z","paymentMethod":"cash","isRecurring":false,"recurringInterval":"monthly","id":"a"}],"categories":[{"id":"1","name":"Food","icon":"utensils","color":"#FF6B6B"}],"budgets":[],"theme":"light"}`

	snap, err := Decode([]byte(legacy))
	require.NoError(t, err)

	data, err := Encode(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isRecurring":false,"recurringInterval":"monthly"`)

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestDecodeFillsMissingCollections(t *testing.T) {
	snap, err := Decode([]byte(`{"theme":"sepia"}`))
	require.NoError(t, err)
	assert.Equal(t, core.InitialSnapshot(), snap)
}

func TestEncodeKeepsLegacyWireForm(t *testing.T) {
	snap, err := Decode([]byte(legacyEnvelope))
	require.NoError(t, err)

	data, err := Encode(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-01-05T00:00:00.000Z"`)
	assert.Contains(t, string(data), `"amount":1200`)
	assert.NotContains(t, string(data), `"state"`)

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Transactions[0].ID, back.Transactions[0].ID)
	assert.Equal(t, snap.Theme, back.Theme)
}
