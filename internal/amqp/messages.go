package amqp

import (
	"encoding/json"
	"time"

	"expenso/internal/store"
)

// ChangeMessage announces that the state reached a new version.
// It carries no data; consumers load the snapshot themselves.
type ChangeMessage struct {
	Version   uint64    `json:"version"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage builds the message for a committed change.
func NewChangeMessage(change store.Change) *ChangeMessage {
	ts := change.At
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &ChangeMessage{
		Version:   change.Version,
		Operation: string(change.Operation),
		Timestamp: ts,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
