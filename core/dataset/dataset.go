// Package dataset holds the immutable policy table.
// A Dataset is loaded once, validated eagerly, and read-only afterwards.
package dataset

import (
	"encoding/json"
	"time"

	"policy-lookup/core/types"
)

// Dataset is an immutable, in-memory collection of policy records
type Dataset struct {
	generatedAt time.Time
	records     []types.Record
	index       map[types.Key]int
}

// Load parses and validates a raw payload.
// It fails with *MalformedDataError on any schema problem and with
// *DataIntegrityViolation when two records share a key.
func Load(raw []byte) (*Dataset, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &MalformedDataError{Index: -1, Field: "records", Reason: "invalid payload", Cause: err}
	}
	if p.Records == nil {
		return nil, malformed(-1, "records", "required field missing")
	}

	generatedAt, err := parseGeneratedAt(p.GeneratedAt)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(p.Records))
	for i, msg := range p.Records {
		var raw rawRecord
		if err := json.Unmarshal(msg, &raw); err != nil {
			return nil, &MalformedDataError{Index: i, Field: "record", Reason: "invalid record", Cause: err}
		}
		rec, err := raw.normalize(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return FromRecords(generatedAt, records)
}

// FromRecords builds a dataset from typed records, enforcing key uniqueness
func FromRecords(generatedAt time.Time, records []types.Record) (*Dataset, error) {
	ds := &Dataset{
		generatedAt: generatedAt,
		records:     make([]types.Record, len(records)),
		index:       make(map[types.Key]int, len(records)),
	}
	copy(ds.records, records)

	for i, rec := range ds.records {
		key := rec.Key()
		if first, exists := ds.index[key]; exists {
			return nil, &DataIntegrityViolation{Key: key, First: first, Second: i}
		}
		ds.index[key] = i
	}
	return ds, nil
}

// FromRecordsUnchecked builds a dataset without the uniqueness index.
// Lookups against it scan and may report ambiguous matches; it exists for
// sources that cannot be validated up front.
func FromRecordsUnchecked(generatedAt time.Time, records []types.Record) *Dataset {
	ds := &Dataset{
		generatedAt: generatedAt,
		records:     make([]types.Record, len(records)),
	}
	copy(ds.records, records)
	return ds
}

// Records returns the records in payload order.
// The returned slice is a copy; callers may not mutate the dataset.
func (d *Dataset) Records() []types.Record {
	out := make([]types.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in payload order until fn returns false
func (d *Dataset) Each(fn func(types.Record) bool) {
	for _, rec := range d.records {
		if !fn(rec) {
			return
		}
	}
}

// Get returns the record with the given key.
// The second result is false when the key is absent or the dataset is unindexed.
func (d *Dataset) Get(key types.Key) (types.Record, bool) {
	if d.index == nil {
		return types.Record{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return types.Record{}, false
	}
	return d.records[i], true
}

// Indexed reports whether key uniqueness was verified at construction
func (d *Dataset) Indexed() bool {
	return d.index != nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// GeneratedAt returns the payload's generation timestamp (zero if absent)
func (d *Dataset) GeneratedAt() time.Time {
	return d.generatedAt
}
