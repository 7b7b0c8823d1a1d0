package lookup

import (
	"fmt"

	"policy-lookup/core/types"
)

// Kind is the class of a resolution outcome
type Kind int

const (
	// KindFound means exactly one record matched
	KindFound Kind = iota

	// KindMiss means no unique record matched; see Reason
	KindMiss
)

// Reason classifies a miss
type Reason string

const (
	// ReasonNone is the reason of a Found outcome
	ReasonNone Reason = ""

	// ReasonIncomplete means category or internet is unset
	ReasonIncomplete Reason = "incomplete"

	// ReasonNotFound means the table has no row for the selection
	ReasonNotFound Reason = "not_found"

	// ReasonAmbiguous means more than one row matched
	ReasonAmbiguous Reason = "ambiguous"
)

// Outcome is the result of a lookup: Found(record) or Miss(reason).
// Misses are expected results, not errors.
type Outcome struct {
	kind    Kind
	reason  Reason
	record  types.Record
	matches int
}

// Found creates a found outcome
func Found(rec types.Record) Outcome {
	return Outcome{kind: KindFound, record: rec, matches: 1}
}

// Miss creates a miss outcome
func Miss(reason Reason) Outcome {
	return Outcome{kind: KindMiss, reason: reason}
}

func ambiguous(matches int) Outcome {
	return Outcome{kind: KindMiss, reason: ReasonAmbiguous, matches: matches}
}

// Kind returns the outcome class
func (o Outcome) Kind() Kind { return o.kind }

// IsFound reports whether a record was resolved
func (o Outcome) IsFound() bool { return o.kind == KindFound }

// Reason returns the miss reason, or ReasonNone when found
func (o Outcome) Reason() Reason { return o.reason }

// Record returns the resolved record and whether there is one
func (o Outcome) Record() (types.Record, bool) {
	return o.record, o.kind == KindFound
}

// Matches returns how many records matched (only meaningful when found or ambiguous)
func (o Outcome) Matches() int { return o.matches }

// String describes the outcome for logs
func (o Outcome) String() string {
	switch {
	case o.kind == KindFound:
		return fmt.Sprintf("found(%s)", o.record.Key())
	case o.reason == ReasonAmbiguous:
		return fmt.Sprintf("miss(%s, %d matches)", o.reason, o.matches)
	default:
		return fmt.Sprintf("miss(%s)", o.reason)
	}
}
