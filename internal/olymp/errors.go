package olymp

import (
	"fmt"

	"github.com/gildedernacht/olymp/internal/model"
)

// ParameterError is returned before any network call when an argument is malformed
type ParameterError struct {
	Op     string
	Param  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter %s: %s", e.Op, e.Param, e.Reason)
}

// Unwrap allows errors.Is(err, model.ErrInvalidParameter)
func (e *ParameterError) Unwrap() error {
	return model.ErrInvalidParameter
}

// ResponseError is returned when the server answers with an unexpected status
// or a success body that cannot be decoded
type ResponseError struct {
	Op       string
	Path     string
	Expected int
	Status   int
	Body     string
	Err      error // decode failure, if any
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: invalid response body (status %d): %v", e.Op, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: expected status %d, got %d: %s", e.Op, e.Path, e.Expected, e.Status, truncate(e.Body, 200))
}

// Unwrap allows errors.Is(err, model.ErrInvalidResponse)
func (e *ResponseError) Unwrap() []error {
	if e.Err != nil {
		return []error{model.ErrInvalidResponse, e.Err}
	}
	return []error{model.ErrInvalidResponse}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
