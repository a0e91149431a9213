package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownStore is returned when a store name is not present in the catalog
	ErrUnknownStore = errors.New("store not found in catalog")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnsupportedFormat is returned for catalog files in a format the
	// ingestion layer cannot read
	ErrUnsupportedFormat = errors.New("unsupported catalog file format")
)
