package listening

import "fmt"

// FormatError means the whole payload was structurally invalid: not a JSON
// array and not an object with an array-valued "data" property. Individual
// malformed records never cause this; they are dropped silently.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid export format: %s", e.Reason)
}

// EmptyInputError means a stage that computes ratios was given zero events.
// The input was syntactically valid, so callers must be able to tell this
// apart from a FormatError.
type EmptyInputError struct {
	Stage string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no events to analyze", e.Stage)
}

// ExternalServiceError means a metadata or nationality lookup failed after
// exhausting its retries. Recoverable: the pipeline still produces a profile
// from whatever enrichment succeeded.
type ExternalServiceError struct {
	Service  string
	Affected int
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %d records affected: %v", e.Service, e.Affected, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
