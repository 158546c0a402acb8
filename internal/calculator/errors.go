package calculator

import "fmt"

// ValidationError reports malformed input. The computation is aborted and no
// partial result is returned.
type ValidationError struct {
	// Record is the zero-based index of the offending expense, or -1 when
	// the problem is not tied to a single record.
	Record int

	// Reason says which invariant failed (e.g., "shares sum to 90.00,
	// expected 100.00").
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("expense %d: %s", e.Record+1, e.Reason)
	}
	return e.Reason
}

func invalid(record int, format string, args ...any) *ValidationError {
	return &ValidationError{Record: record, Reason: fmt.Sprintf(format, args...)}
}
