package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrValidationFailed = errors.New("validation failed")

	// Identity
	ErrEmailExists        = errors.New("email already exists")
	ErrAdminRegistration  = errors.New("admin registration is restricted")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	// Catalog
	ErrModuleNotFound = errors.New("module not found")

	// Progress
	ErrProgressKeyRequired = errors.New("module id or topic is required")

	// AI
	ErrQuizGenerationFailed = errors.New("quiz generation failed")
)
