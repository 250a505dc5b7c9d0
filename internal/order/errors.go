package order

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMalformedOrder  = errors.New("order must be a list of {product, quantity} objects")
	ErrProductRequired = errors.New("product is required")
)

// MalformedQuantityError reports a quantity that is not an integer.
type MalformedQuantityError struct {
	Product string
	Raw     string
	Err     error
}

func (e *MalformedQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q for product %q: %v", e.Raw, e.Product, e.Err)
}

func (e *MalformedQuantityError) Unwrap() error {
	return e.Err
}

type InvalidQuantityError struct {
	Product  string
	Quantity int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity for product %q must not be negative, got %d", e.Product, e.Quantity)
}

type InsufficientStockError struct {
	Product   string
	Available int32
	Requested int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: requested %d, available %d", e.Product, e.Requested, e.Available)
}

// AmbiguousProductError is returned when an order line names more than one product.
type AmbiguousProductError struct {
	Product string
}

func (e *AmbiguousProductError) Error() string {
	return fmt.Sprintf("multiple products named %s", e.Product)
}
