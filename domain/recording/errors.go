package recording

import "errors"

var (
	// ErrInvalidBody is returned when the request body is not a JSON object
	ErrInvalidBody = errors.New("invalid JSON body")

	// ErrInvalidData is returned when data is missing, empty, or not an array of rows
	ErrInvalidData = errors.New("missing or invalid 'data' (expected non-empty array)")

	// ErrMissingPrediction is returned when prediction is missing, blank, or not a string
	ErrMissingPrediction = errors.New("missing 'prediction' (string)")

	// ErrMissingRootFolder is returned when no root folder is configured
	ErrMissingRootFolder = errors.New("server misconfigured: missing GOOGLE_DRIVE_FOLDER_ID")
)
