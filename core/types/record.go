// Package types - Policy record types
package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Secondary is the optional secondary attribute (the TV product).
// The zero value is None; absence never equals any string value.
type Secondary struct {
	value   string
	present bool
}

// NoSecondary is the absent secondary value
var NoSecondary = Secondary{}

// Present returns a secondary value carrying s
func Present(s string) Secondary {
	return Secondary{value: s, present: true}
}

// IsPresent reports whether a secondary value is set
func (s Secondary) IsPresent() bool {
	return s.present
}

// Value returns the secondary string and whether it is present
func (s Secondary) Value() (string, bool) {
	return s.value, s.present
}

// String returns the value, or "<none>" when absent
func (s Secondary) String() string {
	if !s.present {
		return "<none>"
	}
	return s.value
}

// MarshalJSON encodes an absent secondary as null
func (s Secondary) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as absent and a string as present
func (s *Secondary) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NoSecondary
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Present(v)
	return nil
}

// Record is one row of the policy table
type Record struct {
	// Category is the bundle category
	Category string `json:"category"`

	// Internet is the internet product
	Internet string `json:"internet"`

	// Secondary is the optional TV product
	Secondary Secondary `json:"secondary"`

	// OneStop is the one-stop bundling flag
	OneStop bool `json:"one_stop"`

	// ExtraDevice is the extra device flag
	ExtraDevice bool `json:"extra_device"`

	// BasePolicy is the base policy amount
	BasePolicy decimal.NullDecimal `json:"base_policy"`

	// BundlePolicy is the bundle policy amount
	BundlePolicy decimal.NullDecimal `json:"bundle_policy"`

	// ExtraPolicy is the extra device policy amount
	ExtraPolicy decimal.NullDecimal `json:"extra_policy"`

	// TotalPolicy is the total including the extra policy
	TotalPolicy decimal.NullDecimal `json:"total_policy"`

	// ExternalCode is a display-only identifier, not part of the key
	ExternalCode *string `json:"external_code,omitempty"`
}

// HasSecondary reports whether the record carries a secondary value
func (r Record) HasSecondary() bool {
	return r.Secondary.IsPresent()
}

// Key returns the unique matching key of the record
func (r Record) Key() Key {
	tv, has := r.Secondary.Value()
	return Key{
		Category:     r.Category,
		Internet:     r.Internet,
		HasSecondary: has,
		Secondary:    tv,
		OneStop:      r.OneStop,
		ExtraDevice:  r.ExtraDevice,
	}
}

// Value returns the record's value for a string-valued attribute.
// The second result is false for an absent secondary or a flag attribute.
func (r Record) Value(attr Attribute) (string, bool) {
	switch attr {
	case AttrCategory:
		return r.Category, true
	case AttrInternet:
		return r.Internet, true
	case AttrSecondary:
		return r.Secondary.Value()
	case AttrOneStop:
		return FlagCode(r.OneStop), true
	case AttrExtraDevice:
		return FlagCode(r.ExtraDevice), true
	default:
		return "", false
	}
}

// Key is the candidate unique key of a record
type Key struct {
	Category     string
	Internet     string
	HasSecondary bool
	Secondary    string
	OneStop      bool
	ExtraDevice  bool
}

// String returns a readable form of the key
func (k Key) String() string {
	tv := "<none>"
	if k.HasSecondary {
		tv = k.Secondary
	}
	return fmt.Sprintf("%s/%s/%s/one_stop=%s/extra_device=%s",
		k.Category, k.Internet, tv, FlagCode(k.OneStop), FlagCode(k.ExtraDevice))
}
