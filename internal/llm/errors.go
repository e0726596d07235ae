package llm

import "errors"

var (
	// ErrUnavailable indicates the model backend could not be reached.
	ErrUnavailable = errors.New("llm backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all attempts failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrDisabled indicates no model provider is configured.
	ErrDisabled = errors.New("ai disabled")
)
