package dataset

import (
	"fmt"

	"policy-lookup/core/types"
	perrors "policy-lookup/internal/errors"
)

// MalformedDataError reports a record that failed schema validation.
// Index is the record's position in the payload, or -1 for payload-level
// problems.
type MalformedDataError struct {
	Index  int
	Field  string
	Reason string
	Cause  error
}

func (e *MalformedDataError) Error() string {
	where := "payload"
	if e.Index >= 0 {
		where = fmt.Sprintf("record %d", e.Index)
	}
	msg := fmt.Sprintf("malformed data: %s: field %q: %s", where, e.Field, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedDataError) Unwrap() error { return e.Cause }

// ErrorType maps the error onto the shared error taxonomy
func (e *MalformedDataError) ErrorType() perrors.Type { return perrors.TypeMalformedData }

// DataIntegrityViolation reports two records sharing one key
type DataIntegrityViolation struct {
	Key    types.Key
	First  int
	Second int
}

func (e *DataIntegrityViolation) Error() string {
	return fmt.Sprintf("data integrity violation: records %d and %d share key %s", e.First, e.Second, e.Key)
}

// ErrorType maps the error onto the shared error taxonomy
func (e *DataIntegrityViolation) ErrorType() perrors.Type { return perrors.TypeDataIntegrity }

func malformed(index int, field, reason string) *MalformedDataError {
	return &MalformedDataError{Index: index, Field: field, Reason: reason}
}
