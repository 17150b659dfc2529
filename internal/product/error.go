package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameTooShort    = errors.New("product name is required (min 2 characters)")
	ErrInvalidPrice    = errors.New("price must be greater than 0")
	ErrNegativeStock   = errors.New("stock cannot be negative")
	ErrImageRequired   = errors.New("product image is required")
	ErrImageTooLarge   = errors.New("image must be less than 5MB")
	ErrImageBadType    = errors.New("only JPEG, PNG and WebP images allowed")
)
