package upload

import "errors"

var (
	// ErrInvalidPolicy is returned for a conflict policy other than rename, overwrite, or skip
	ErrInvalidPolicy = errors.New("conflict_policy must be rename|overwrite|skip")

	// ErrMissingFolder is returned when neither the request nor the configuration names a folder
	ErrMissingFolder = errors.New("missing folder_id and DRIVE_FOLDER_ID env var")

	// ErrNoFiles is returned when a request carries no files
	ErrNoFiles = errors.New("at least one file is required")

	// ErrRenameExhausted is returned when every " (n)" candidate up to MaxRenameAttempts is taken
	ErrRenameExhausted = errors.New("no free name found")
)
