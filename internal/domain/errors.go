package domain

import "errors"

var (
	// ErrInvalidConfiguration is returned when a jacket configuration names an
	// unknown style, a material outside its style, or an unknown size.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrStorageUnavailable marks a durable write or read that failed. Cart
	// persistence swallows it; the in-memory state stays authoritative.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDeserialization marks persisted state that could not be decoded.
	ErrDeserialization = errors.New("deserialization failure")

	ErrNotFound        = errors.New("not found")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCheckout = errors.New("invalid checkout request")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidLineItem = errors.New("invalid line item")
)

var (
	ErrInvalidUpload     = errors.New("invalid upload")
	ErrUploadUnavailable = errors.New("uploads are not configured")
)
