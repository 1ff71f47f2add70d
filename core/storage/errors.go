package storage

import "errors"

// Sentinel errors shared by all storage backends. Implementations wrap
// backend-specific failures into these so callers can use errors.Is
// without knowing which backend is wired.
var (
	ErrNotFound           = errors.New("object not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrInvalidKey         = errors.New("invalid object key")
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timeout")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
)
