package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	t.Run("session", func(t *testing.T) {
		raw := json.RawMessage(`{"started_at":"2026-03-01T10:00:00Z","notes":"leg day","duration_seconds":3600}`)

		payload, err := DecodePayload(TableSessions, raw)
		require.NoError(t, err)

		session, ok := payload.(*SessionPayload)
		require.True(t, ok, "ожидался SessionPayload, получен %T", payload)
		assert.Equal(t, TableSessions, session.Table())
		assert.Equal(t, "leg day", session.Notes)
		assert.Equal(t, 3600, session.DurationSeconds)
		assert.True(t, session.StartedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("set", func(t *testing.T) {
		raw := json.RawMessage(`{"session_client_id":"s-1","exercise_id":"e-1","set_number":2,"reps":5,"weight":140}`)

		payload, err := DecodePayload(TableSets, raw)
		require.NoError(t, err)

		set, ok := payload.(*SetPayload)
		require.True(t, ok)
		assert.Equal(t, TableSets, set.Table())
		assert.Equal(t, 2, set.SetNumber)
		require.NotNil(t, set.Weight)
		assert.InDelta(t, 140.0, *set.Weight, 0.001)
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := DecodePayload("routines", json.RawMessage(`{}`))
		assert.ErrorContains(t, err, "unknown table")
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := DecodePayload(TableSets, nil)
		assert.ErrorContains(t, err, "empty payload")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodePayload(TableSessions, json.RawMessage(`{"started_at":`))
		assert.Error(t, err)
	})
}

func TestEncodePayload_RoundTripThroughDecode(t *testing.T) {
	weight := 60.0
	original := &SetPayload{SessionClientID: "s-1", ExerciseID: "e-1", SetNumber: 1, Reps: 12, Weight: &weight}

	data, err := EncodePayload(original)
	require.NoError(t, err)

	decoded, err := DecodePayload(original.Table(), data)
	require.NoError(t, err)
	assert.Equal(t, original.Reps, decoded.(*SetPayload).Reps)
}

func TestLocalRecord_CheckInvariant(t *testing.T) {
	assert.NoError(t, (&LocalRecord{SyncStatus: SyncStatusPending}).CheckInvariant())
	assert.NoError(t, (&LocalRecord{SyncStatus: SyncStatusSynced, ServerID: "srv-1"}).CheckInvariant())
	assert.Error(t, (&LocalRecord{SyncStatus: SyncStatusSynced}).CheckInvariant())
}

func TestLocalRecord_Clone(t *testing.T) {
	original := &LocalRecord{
		Table:    TableSessions,
		ClientID: "c-1",
		Data:     json.RawMessage(`{"notes":"a"}`),
	}

	clone := original.Clone()
	clone.Data[10] = 'b'
	clone.ClientID = "c-2"

	assert.Equal(t, `{"notes":"a"}`, string(original.Data), "изменение клона не должно затрагивать оригинал")
	assert.Equal(t, "c-1", original.ClientID)
}

func TestTableAndOperation_Valid(t *testing.T) {
	assert.True(t, TableSessions.Valid())
	assert.True(t, TableSets.Valid())
	assert.False(t, TableName("routines").Valid())

	assert.True(t, OperationCreate.Valid())
	assert.True(t, OperationUpdate.Valid())
	assert.True(t, OperationDelete.Valid())
	assert.False(t, Operation("upsert").Valid())
}
