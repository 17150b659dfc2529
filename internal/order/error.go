package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrInvalidStatus        = errors.New("invalid order status")

	ErrNameRequired     = errors.New("customer name is required")
	ErrInvalidPhone     = errors.New("phone number must be 10 digits")
	ErrAddressRequired  = errors.New("delivery address is required")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrQuantityTooLarge = errors.New("requested quantity exceeds available stock")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrInvalidPayment   = errors.New("unknown payment method")
	ErrCustomerBanned   = errors.New("orders from this customer are not accepted")
)
