package product

import "errors"

var (
	ErrNotFound           = errors.New("product not found")
	ErrInvalidID          = errors.New("invalid product id")
	ErrNameRequired       = errors.New("name cannot be empty")
	ErrCategoryRequired   = errors.New("category cannot be empty")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrPriceAboveOriginal = errors.New("price cannot exceed original price")
)
