package notification

import "time"

const (
	TypeNewOrder    = "new_order"
	TypeStatusMoved = "status_change"
)

type Notification struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	TrackingID string    `json:"tracking_id"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
