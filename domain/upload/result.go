package upload

// Action is the outcome recorded for one uploaded file
type Action string

const (
	ActionCreated        Action = "created"
	ActionCreatedRenamed Action = "created_renamed"
	ActionOverwritten    Action = "overwritten"
	ActionSkipped        Action = "skipped"
)

// File is one file received for upload
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Result describes what happened to one input file. ID and Link are nil when
// nothing was written.
type Result struct {
	Name   string  `json:"name"`
	Action Action  `json:"action"`
	ID     *string `json:"id"`
	Link   *string `json:"link"`
}
