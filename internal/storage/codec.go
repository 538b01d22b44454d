package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"expenso/internal/core"
	"expenso/internal/store"
)

// Encode serializes a snapshot into the persisted slot format.
func Encode(snap core.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap.Normalized())
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a persisted slot. Empty input yields the first-run
// snapshot. The older envelope {"state":{...},"version":n} is unwrapped.
// Anything unparsable is reported as store.ErrCorrupt.
func Decode(data []byte) (core.Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return core.InitialSnapshot(), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", store.ErrCorrupt, err)
	}
	if inner, ok := probe["state"]; ok {
		if _, flat := probe["transactions"]; !flat {
			data = inner
		}
	}

	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", store.ErrCorrupt, err)
	}
	return snap.Normalized(), nil
}
