package orders

import "errors"

var (
	ErrNoItems       = errors.New("order has no items")
	ErrUnknownStatus = errors.New("unknown order status")
)
