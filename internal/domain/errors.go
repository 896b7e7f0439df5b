package domain

import "errors"

var (
	// ErrInvalidQuery signals a blank or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidMode signals an unknown content filter mode.
	ErrInvalidMode = errors.New("invalid filter mode")
	// ErrInvalidRecord signals a request body that is not a record object.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrArchiveUnavailable signals that the upstream archive API failed.
	ErrArchiveUnavailable = errors.New("archive unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
