package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"policy-lookup/core/types"
)

// payload is the wire shape of policy.json
type payload struct {
	GeneratedAt *string           `json:"generated_at"`
	Records     []json.RawMessage `json:"records"`
}

// rawRecord mirrors one payload record before normalization.
// Pointers distinguish missing fields from empty ones.
type rawRecord struct {
	Category     *string             `json:"category"`
	Internet     *string             `json:"internet"`
	HasTV        *string             `json:"has_tv"`
	TV           *string             `json:"tv"`
	OneStop      *string             `json:"one_stop"`
	GigaGenie3   *string             `json:"giga_genie3"`
	BasePolicy   decimal.NullDecimal `json:"base_policy"`
	BundlePolicy decimal.NullDecimal `json:"bundle_policy"`
	KOSPolicy    decimal.NullDecimal `json:"kos_policy"`
	TotalWithKOS decimal.NullDecimal `json:"total_with_kos"`
	KOSCode      json.RawMessage     `json:"kos_code"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseGeneratedAt(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, *s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &MalformedDataError{Index: -1, Field: "generated_at", Reason: "unrecognized timestamp", Cause: lastErr}
}

// normalize converts a raw record into a typed Record. Boolean codes are
// interpreted here and nowhere else.
func (r rawRecord) normalize(index int) (types.Record, error) {
	var rec types.Record

	category, err := requiredString(index, "category", r.Category)
	if err != nil {
		return rec, err
	}
	internet, err := requiredString(index, "internet", r.Internet)
	if err != nil {
		return rec, err
	}
	hasTV, err := flag(index, "has_tv", r.HasTV)
	if err != nil {
		return rec, err
	}
	oneStop, err := flag(index, "one_stop", r.OneStop)
	if err != nil {
		return rec, err
	}
	extra, err := flag(index, "giga_genie3", r.GigaGenie3)
	if err != nil {
		return rec, err
	}

	secondary := types.NoSecondary
	switch {
	case hasTV && (r.TV == nil || *r.TV == ""):
		return rec, malformed(index, "tv", "has_tv is Y but tv is missing")
	case !hasTV && r.TV != nil:
		return rec, malformed(index, "tv", "has_tv is N but tv is set")
	case hasTV:
		secondary = types.Present(*r.TV)
	}

	code, err := externalCode(index, r.KOSCode)
	if err != nil {
		return rec, err
	}

	return types.Record{
		Category:     category,
		Internet:     internet,
		Secondary:    secondary,
		OneStop:      oneStop,
		ExtraDevice:  extra,
		BasePolicy:   r.BasePolicy,
		BundlePolicy: r.BundlePolicy,
		ExtraPolicy:  r.KOSPolicy,
		TotalPolicy:  r.TotalWithKOS,
		ExternalCode: code,
	}, nil
}

func requiredString(index int, field string, v *string) (string, error) {
	if v == nil {
		return "", malformed(index, field, "required field missing")
	}
	if strings.TrimSpace(*v) == "" {
		return "", malformed(index, field, "required field empty")
	}
	return *v, nil
}

func flag(index int, field string, v *string) (bool, error) {
	if v == nil {
		return false, malformed(index, field, "required flag missing")
	}
	switch *v {
	case types.FlagYes:
		return true, nil
	case types.FlagNo:
		return false, nil
	default:
		return false, malformed(index, field, "flag must be Y or N, got "+*v)
	}
}

// externalCode accepts a string, a number, or null
func externalCode(index int, raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		code := n.String()
		return &code, nil
	}
	return nil, malformed(index, "kos_code", "must be a string, number or null")
}
