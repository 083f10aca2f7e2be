// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Input discovery errors
	ErrNoInputFiles = errors.New("no input files found")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// Checking errors
	ErrSyntaxErrors = errors.New("one or more files contain syntax errors")
)
