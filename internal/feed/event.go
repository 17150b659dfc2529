package feed

import (
	"encoding/json"
	"time"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event is one row change as announced by the database triggers. EventID
// is minted inside the trigger so every listener sees the same id and
// duplicates can be claimed exactly once.
type Event struct {
	EventID string          `json:"event_id"`
	Table   string          `json:"table"`
	Action  string          `json:"action"`
	Record  json.RawMessage `json:"record"`
	At      time.Time       `json:"at"`
}

func parseEvent(payload string) (*Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, err
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	return &e, nil
}

// orderRecord is the slice of an orders row the feed consumers need.
type orderRecord struct {
	TrackingID   string `json:"tracking_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
}
