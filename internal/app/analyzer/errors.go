package analyzer

import (
	"fmt"

	"github.com/osa030/playtime/internal/infra/youtube"
)

// Validation failure reasons.
const (
	ReasonMissingParameter = "missing parameter"
	ReasonInvalidURL       = "invalid url"
	ReasonMissingListID    = "missing list id"
)

// ValidationError reports unusable request parameters.
type ValidationError struct {
	Reason  string // one of the Reason constants
	Message string // caller-facing description
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BatchError reports that one or more video lookup chunks failed.
// The whole analysis fails even if other chunks succeeded.
type BatchError struct {
	Failures []youtube.APIError
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d video lookup batch(es) failed", len(e.Failures))
}
