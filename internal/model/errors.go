package model

import "fmt"

// ExtractionError indicates the source document is unreadable or carries
// no extractable text layer. Fatal for the document; never retried.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaValidationError indicates the model's output did not decode into
// a valid ESGReport. Surfaced verbatim, never coerced.
type SchemaValidationError struct {
	Detail string
	Err    error
}

func (e *SchemaValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema validation failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("schema validation failed: %s", e.Detail)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// ModelUnavailableError indicates a network, auth, or quota failure
// reaching the inference endpoint. Retry policy, if any, lives with the
// caller.
type ModelUnavailableError struct {
	Err error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model unavailable: %v", e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }
