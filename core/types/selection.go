// Package types - Selection state
package types

// Selection is the caller's current, possibly partial, set of choices.
// It is a value type: every With* method returns a modified copy.
// Empty strings mean unset; an unset Secondary means "no secondary".
type Selection struct {
	Category    string `json:"category,omitempty"`
	Internet    string `json:"internet,omitempty"`
	Secondary   string `json:"secondary,omitempty"`
	OneStop     bool   `json:"one_stop"`
	ExtraDevice bool   `json:"extra_device"`
}

// IsComplete reports whether the attributes required for lookup are set
func (s Selection) IsComplete() bool {
	return s.Category != "" && s.Internet != ""
}

// SecondaryValue returns the selection's secondary as a tagged value
func (s Selection) SecondaryValue() Secondary {
	if s.Secondary == "" {
		return NoSecondary
	}
	return Present(s.Secondary)
}

// WithCategory returns a copy with the category set
func (s Selection) WithCategory(v string) Selection {
	s.Category = v
	return s
}

// WithInternet returns a copy with the internet product set
func (s Selection) WithInternet(v string) Selection {
	s.Internet = v
	return s
}

// WithSecondary returns a copy with the secondary set; "" clears it
func (s Selection) WithSecondary(v string) Selection {
	s.Secondary = v
	return s
}

// WithOneStop returns a copy with the one-stop flag set
func (s Selection) WithOneStop(v bool) Selection {
	s.OneStop = v
	return s
}

// WithExtraDevice returns a copy with the extra device flag set
func (s Selection) WithExtraDevice(v bool) Selection {
	s.ExtraDevice = v
	return s
}

// Matches reports whether a record agrees with the selection on every
// set attribute except skip. Flags are always set and always compared.
// An unset secondary imposes no filter here; exact lookup handles
// absence separately.
func (s Selection) Matches(r Record, skip Attribute) bool {
	if skip != AttrCategory && s.Category != "" && r.Category != s.Category {
		return false
	}
	if skip != AttrInternet && s.Internet != "" && r.Internet != s.Internet {
		return false
	}
	if skip != AttrSecondary && s.Secondary != "" {
		tv, ok := r.Secondary.Value()
		if !ok || tv != s.Secondary {
			return false
		}
	}
	if skip != AttrOneStop && r.OneStop != s.OneStop {
		return false
	}
	if skip != AttrExtraDevice && r.ExtraDevice != s.ExtraDevice {
		return false
	}
	return true
}
