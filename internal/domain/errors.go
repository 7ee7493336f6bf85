package domain

import "errors"

var (
	// ErrRecordNotFound signals a missing content record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrIndexNotReady signals that the search index has not been built yet.
	ErrIndexNotReady = errors.New("search index not ready")
	// ErrStoreUnavailable signals that the backing content store is unreachable.
	ErrStoreUnavailable = errors.New("content store unavailable")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
)
