package common

import "errors"

var (
	// Validation errors, raised before any network call. Match with errors.Is.
	ErrCredentialsRequired = errors.New("Username and password are required")
	ErrInvalidProductID    = errors.New("Invalid product id")
)
