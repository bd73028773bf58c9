package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrItemNotFound         = errors.New("inventory item not found")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrValidation           = errors.New("validation failed")
	ErrConfirmationMismatch = errors.New("confirmation text does not match")
	ErrTokenNotFound        = errors.New("token not found")
)
