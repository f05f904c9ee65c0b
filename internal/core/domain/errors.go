package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Ledger errors
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrSameBase          = errors.New("source and destination base must differ")
	ErrBaseNotFound      = errors.New("base not found")
	ErrEquipmentNotFound = errors.New("equipment type not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAssetUnavailable  = errors.New("asset not found or not available")
)
