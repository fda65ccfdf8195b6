package domain

import "errors"

var (
	// ErrNotFound indicates that the backend does not know the requested resource.
	ErrNotFound = errors.New("resource not found")
	// ErrAccessDenied indicates that the backend rejected the credentials.
	ErrAccessDenied = errors.New("access denied")
	// ErrRejected indicates that the backend refused the request (validation, conflict).
	ErrRejected = errors.New("request rejected by backend")
)
