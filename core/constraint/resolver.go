// Package constraint computes the still-valid choices for each attribute
// given a partial selection (cascading constraint narrowing).
package constraint

import (
	"fmt"
	"slices"

	"policy-lookup/core/dataset"
	"policy-lookup/core/ordering"
	"policy-lookup/core/types"
)

// NoSecondary is the synthetic "no secondary" option. Assigning it to
// Selection.Secondary leaves the secondary unset.
const NoSecondary = ""

// Options is the ordered set of valid values for one attribute.
// Flag attributes use the payload codes "N" and "Y".
type Options struct {
	Attribute types.Attribute `json:"attribute"`
	Values    []string        `json:"values"`
}

// Len returns the number of options
func (o Options) Len() int {
	return len(o.Values)
}

// IsEmpty reports that no legal next choice exists
func (o Options) IsEmpty() bool {
	return len(o.Values) == 0
}

// Contains reports whether v is a valid choice
func (o Options) Contains(v string) bool {
	return slices.Contains(o.Values, v)
}

// Bools returns flag options as booleans
func (o Options) Bools() []bool {
	out := make([]bool, 0, len(o.Values))
	for _, v := range o.Values {
		out = append(out, v == types.FlagYes)
	}
	return out
}

// Resolver computes valid options. It holds no mutable state.
type Resolver struct {
	catalog *ordering.Catalog
}

// NewResolver creates a resolver ordering results by catalog
func NewResolver(catalog *ordering.Catalog) *Resolver {
	if catalog == nil {
		catalog = ordering.Default()
	}
	return &Resolver{catalog: catalog}
}

// Categories returns every distinct category in the dataset regardless of
// flags. This is the entry list before anything is chosen; ValidOptions on
// an empty selection would drop categories that only have flagged rows.
func (r *Resolver) Categories(ds *dataset.Dataset) Options {
	seen := make(map[string]struct{})
	var values []string
	ds.Each(func(rec types.Record) bool {
		if _, dup := seen[rec.Category]; !dup {
			seen[rec.Category] = struct{}{}
			values = append(values, rec.Category)
		}
		return true
	})
	values = r.catalog.Sort(types.AttrCategory, values)
	if values == nil {
		values = []string{}
	}
	return Options{Attribute: types.AttrCategory, Values: values}
}

// ValidOptions returns the values of target present in records that agree
// with sel on every other set attribute. An empty result means no legal
// next choice and is not an error. The secondary attribute always offers
// NoSecondary first. A stale value in sel is never cleared here.
//
// An unset secondary imposes no filter on the other attributes, while
// lookup treats it as "no secondary". A value offered under an unset
// secondary may therefore resolve only once a secondary is chosen, as for
// internet products sold exclusively with TV.
func (r *Resolver) ValidOptions(ds *dataset.Dataset, sel types.Selection, target types.Attribute) (Options, error) {
	if !target.IsValid() {
		return Options{}, fmt.Errorf("unknown attribute: %q", target)
	}

	seen := make(map[string]struct{})
	var values []string
	ds.Each(func(rec types.Record) bool {
		if !sel.Matches(rec, target) {
			return true
		}
		v, ok := rec.Value(target)
		if !ok {
			return true
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			values = append(values, v)
		}
		return true
	})

	opts := Options{Attribute: target}
	switch {
	case target.IsFlag():
		opts.Values = sortFlags(values)
	case target == types.AttrSecondary:
		opts.Values = append([]string{NoSecondary}, r.catalog.Sort(target, values)...)
	default:
		opts.Values = r.catalog.Sort(target, values)
	}
	if opts.Values == nil {
		opts.Values = []string{}
	}
	return opts, nil
}

// All computes options for every attribute against the same selection
func (r *Resolver) All(ds *dataset.Dataset, sel types.Selection) map[types.Attribute]Options {
	out := make(map[types.Attribute]Options, len(types.AllAttributes))
	for _, attr := range types.AllAttributes {
		opts, _ := r.ValidOptions(ds, sel, attr)
		out[attr] = opts
	}
	return out
}

// Stale returns the set attributes of sel whose current value is no
// longer among their valid options. Deciding whether to clear them is
// left to the caller.
func (r *Resolver) Stale(ds *dataset.Dataset, sel types.Selection) []types.Attribute {
	var stale []types.Attribute
	for _, attr := range types.AllAttributes {
		current, set := selected(sel, attr)
		if !set {
			continue
		}
		opts, _ := r.ValidOptions(ds, sel, attr)
		if !opts.Contains(current) {
			stale = append(stale, attr)
		}
	}
	return stale
}

func selected(sel types.Selection, attr types.Attribute) (string, bool) {
	switch attr {
	case types.AttrCategory:
		return sel.Category, sel.Category != ""
	case types.AttrInternet:
		return sel.Internet, sel.Internet != ""
	case types.AttrSecondary:
		return sel.Secondary, sel.Secondary != ""
	case types.AttrOneStop:
		return types.FlagCode(sel.OneStop), true
	case types.AttrExtraDevice:
		return types.FlagCode(sel.ExtraDevice), true
	}
	return "", false
}

// sortFlags orders the boolean domain false before true
func sortFlags(values []string) []string {
	var out []string
	for _, code := range []string{types.FlagNo, types.FlagYes} {
		if slices.Contains(values, code) {
			out = append(out, code)
		}
	}
	return out
}
