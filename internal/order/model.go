package order

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// validNext encodes the lifecycle: Cancelled is terminal, Confirmed can
// still be cancelled, Pending can go either way.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCancelled: true},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// AvailableTransitions lists the targets offered for the current status,
// in the order the admin console renders them.
func AvailableTransitions(from Status) []Status {
	var out []Status
	for _, to := range []Status{StatusConfirmed, StatusCancelled} {
		if validNext[from][to] {
			out = append(out, to)
		}
	}
	return out
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

const (
	PaymentCOD  = "cod"
	PaymentBank = "bank"
	PaymentCard = "card"
)

type Order struct {
	ID            uint      `json:"id"`
	TrackingID    string    `json:"tracking_id"`
	CustomerName  string    `json:"customer_name"`
	PhoneNumber   string    `json:"phone_number"`
	Address       string    `json:"address"`
	ProductID     uint      `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	Total         float64   `json:"total"`
	Requirements  *string   `json:"requirements,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
