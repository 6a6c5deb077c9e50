package amqp

import (
	"encoding/json"
	"time"

	"tally/internal/core"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// RecordEvent is a lightweight message describing a ledger mutation. It
// carries only the kind and id; the worker fetches the full record from the
// store when it needs one.
type RecordEvent struct {
	Kind      core.Kind `json:"kind"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEvent(kind core.Kind, id, action string) *RecordEvent {
	return &RecordEvent{
		Kind:      kind,
		ID:        id,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON creates an event from JSON bytes
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var e RecordEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
