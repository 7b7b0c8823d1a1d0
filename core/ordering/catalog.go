// Package ordering provides priority orders for option lists.
// Listed values sort first in listed order; everything else follows,
// compared by locale-aware collation.
package ordering

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"policy-lookup/core/types"
)

// DefaultLocale is the collation locale of the policy table
var DefaultLocale = language.Korean

// Default priority lists
var (
	DefaultInternetOrder  = []string{"슬림", "슬림플러스↓", "베이직", "에센스"}
	DefaultSecondaryOrder = []string{"라이트/베이직", "에센스/플러스", "모든G이상", "모든G이상(MNP)"}
)

// Catalog holds per-attribute priority lists and a collator for ties.
// The zero value is an empty catalog collating with the root locale.
type Catalog struct {
	orders map[types.Attribute]map[string]int
	lists  map[types.Attribute][]string
	locale language.Tag

	// collate.Collator keeps internal buffers
	mu       sync.Mutex
	collator *collate.Collator
}

// NewCatalog creates an empty catalog collating in locale
func NewCatalog(locale language.Tag) *Catalog {
	return &Catalog{
		orders:   make(map[types.Attribute]map[string]int),
		lists:    make(map[types.Attribute][]string),
		locale:   locale,
		collator: collate.New(locale),
	}
}

// Default returns the catalog with the domain's internet and TV orders
func Default() *Catalog {
	c := NewCatalog(DefaultLocale)
	c.SetOrder(types.AttrInternet, DefaultInternetOrder)
	c.SetOrder(types.AttrSecondary, DefaultSecondaryOrder)
	return c
}

// SetOrder declares the priority list for an attribute. Duplicate entries
// keep their first position.
func (c *Catalog) SetOrder(attr types.Attribute, values []string) {
	idx := make(map[string]int, len(values))
	list := make([]string, 0, len(values))
	for _, v := range values {
		if _, seen := idx[v]; seen {
			continue
		}
		idx[v] = len(list)
		list = append(list, v)
	}
	if c.orders == nil {
		c.orders = make(map[types.Attribute]map[string]int)
		c.lists = make(map[types.Attribute][]string)
	}
	c.orders[attr] = idx
	c.lists[attr] = list
}

// Order returns a copy of the attribute's priority list
func (c *Catalog) Order(attr types.Attribute) []string {
	return slices.Clone(c.lists[attr])
}

// Locale returns the collation locale
func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// Unranked returns the rank given to values absent from attr's list
func (c *Catalog) Unranked(attr types.Attribute) int {
	return len(c.lists[attr])
}

// Rank returns the position of value in attr's list, or Unranked(attr).
// Attributes without a list rank every value equally.
func (c *Catalog) Rank(attr types.Attribute, value string) int {
	if i, ok := c.orders[attr][value]; ok {
		return i
	}
	return c.Unranked(attr)
}

// Collate compares two strings by locale rules alone
func (c *Catalog) Collate(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.collator == nil {
		c.collator = collate.New(c.locale)
	}
	if r := c.collator.CompareString(a, b); r != 0 {
		return r
	}
	// collation-equal but distinct strings still need a total order
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare orders two values of attr: rank first, then collation
func (c *Catalog) Compare(attr types.Attribute, a, b string) int {
	ra, rb := c.Rank(attr, a), c.Rank(attr, b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	return c.Collate(a, b)
}

// Sort returns a sorted copy of values
func (c *Catalog) Sort(attr types.Attribute, values []string) []string {
	out := slices.Clone(values)
	slices.SortStableFunc(out, func(a, b string) int {
		return c.Compare(attr, a, b)
	})
	return out
}
