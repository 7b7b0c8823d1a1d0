// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import (
	"fmt"
	"strings"
)

// Attribute identifies one selectable dimension of the policy table
type Attribute string

const (
	AttrCategory    Attribute = "category"
	AttrInternet    Attribute = "internet"
	AttrSecondary   Attribute = "secondary"
	AttrOneStop     Attribute = "one_stop"
	AttrExtraDevice Attribute = "extra_device"
)

// AllAttributes lists attributes in cascade order
var AllAttributes = []Attribute{
	AttrCategory,
	AttrInternet,
	AttrSecondary,
	AttrOneStop,
	AttrExtraDevice,
}

// String returns the string representation of the attribute
func (a Attribute) String() string {
	return string(a)
}

// IsValid checks if the attribute is a known attribute
func (a Attribute) IsValid() bool {
	switch a {
	case AttrCategory, AttrInternet, AttrSecondary, AttrOneStop, AttrExtraDevice:
		return true
	default:
		return false
	}
}

// IsFlag reports whether the attribute has a boolean domain
func (a Attribute) IsFlag() bool {
	return a == AttrOneStop || a == AttrExtraDevice
}

// ParseAttribute resolves an attribute name, accepting the payload's
// field names ("tv", "giga_genie3") as aliases.
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category":
		return AttrCategory, nil
	case "internet":
		return AttrInternet, nil
	case "secondary", "tv":
		return AttrSecondary, nil
	case "one_stop", "onestop", "one-stop":
		return AttrOneStop, nil
	case "extra_device", "extra-device", "giga_genie3":
		return AttrExtraDevice, nil
	default:
		return "", fmt.Errorf("unknown attribute: %q", s)
	}
}

// Flag codes used by the raw payload for boolean attributes
const (
	FlagYes = "Y"
	FlagNo  = "N"
)

// FlagCode renders a boolean as its payload code
func FlagCode(b bool) string {
	if b {
		return FlagYes
	}
	return FlagNo
}
