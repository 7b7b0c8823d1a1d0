// Package lookup resolves a selection to exactly one policy record.
// Matching is exact equality; an unset secondary matches only records
// without a secondary.
package lookup

import (
	"policy-lookup/core/dataset"
	"policy-lookup/core/types"
)

// Engine performs lookups. It holds no state; Resolve is a pure function
// of the dataset and the selection.
type Engine struct{}

// NewEngine creates a lookup engine
func NewEngine() *Engine {
	return &Engine{}
}

// Resolve finds the record matching sel.
//
// Returns Miss(Incomplete) without scanning when category or internet is
// unset, Miss(NotFound) when nothing matches, and Miss(Ambiguous) when
// more than one record matches. Ambiguity cannot occur for datasets built
// by dataset.Load or dataset.FromRecords, which reject duplicate keys; for
// unindexed datasets the engine reports it instead of picking a record.
func (e *Engine) Resolve(ds *dataset.Dataset, sel types.Selection) Outcome {
	if !sel.IsComplete() {
		return Miss(ReasonIncomplete)
	}

	key := keyOf(sel)
	if ds.Indexed() {
		if rec, ok := ds.Get(key); ok {
			return Found(rec)
		}
		return Miss(ReasonNotFound)
	}

	var (
		match types.Record
		count int
	)
	ds.Each(func(rec types.Record) bool {
		if rec.Key() == key {
			match = rec
			count++
		}
		return true
	})

	switch count {
	case 0:
		return Miss(ReasonNotFound)
	case 1:
		return Found(match)
	default:
		return ambiguous(count)
	}
}

// keyOf builds the exact key a selection asks for
func keyOf(sel types.Selection) types.Key {
	tv, has := sel.SecondaryValue().Value()
	return types.Key{
		Category:     sel.Category,
		Internet:     sel.Internet,
		HasSecondary: has,
		Secondary:    tv,
		OneStop:      sel.OneStop,
		ExtraDevice:  sel.ExtraDevice,
	}
}
