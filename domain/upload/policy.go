package upload

import "fmt"

// ConflictPolicy decides what happens when a file with the same name already
// exists in the target folder
type ConflictPolicy string

const (
	PolicyRename    ConflictPolicy = "rename"
	PolicyOverwrite ConflictPolicy = "overwrite"
	PolicySkip      ConflictPolicy = "skip"
)

// DefaultPolicy is used when neither the request nor the configuration names one
const DefaultPolicy = PolicyRename

// ParsePolicy validates a policy name. Matching is exact.
func ParsePolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(s); p {
	case PolicyRename, PolicyOverwrite, PolicySkip:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

func (p ConflictPolicy) String() string {
	return string(p)
}
