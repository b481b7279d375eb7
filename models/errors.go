package models

import "errors"

var (
	ErrInvalidCountryName    = errors.New("country common name cannot be empty")
	ErrInvalidCountryCode    = errors.New("country code must be 3 letters")
	ErrInvalidCountryFlag    = errors.New("country must carry at least one flag image")
	ErrInvalidCountryMetrics = errors.New("country population and area cannot be negative")

	ErrInvalidIdentity = errors.New("identity must have an id and an email")

	ErrInvalidStorageKey = errors.New("storage key cannot be empty")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials are not configured")
	ErrUnsupportedDatabaseDriver       = errors.New("unsupported database driver")

	// ErrNetworkFailure is matched by gateway errors raised before any HTTP status was received.
	ErrNetworkFailure = errors.New("network failure")
	// ErrAPIStatus is matched by gateway errors carrying an unsuccessful HTTP status.
	ErrAPIStatus = errors.New("remote api returned an unsuccessful status")

	ErrRecordNotFound     = errors.New("record not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("user already exists")
	ErrSessionNotFound    = errors.New("session not found")
)
