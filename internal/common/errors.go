// Package common defines sentinel errors shared across service layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors raised at the request boundary.
	ErrValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// File storage errors.
	ErrEmptyUpload         = errors.New("uploaded file is empty")
	ErrFileTooLarge        = errors.New("uploaded file is too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
