package storage

import "errors"

var (
	// ErrMissingCredentials is returned when no Google credentials are configured
	ErrMissingCredentials = errors.New("missing Google credentials: set GOOGLE_CREDENTIALS_JSON or GOOGLE_SERVICE_ACCOUNT_KEY")

	// ErrNotFound is returned when a file or folder id does not exist
	ErrNotFound = errors.New("file not found")
)
