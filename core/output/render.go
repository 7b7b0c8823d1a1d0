package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"policy-lookup/core/constraint"
	"policy-lookup/core/lookup"
	"policy-lookup/core/types"
	perrors "policy-lookup/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is human-readable text
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCLI, "":
		return FormatCLI, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", perrors.NotSupported(fmt.Sprintf("output format %q (use cli or json)", s))
	}
}

// LookupView is the rendered result of one lookup
type LookupView struct {
	Selection types.Selection `json:"selection"`
	Found     bool            `json:"found"`
	Reason    lookup.Reason   `json:"reason,omitempty"`
	Breakdown Breakdown       `json:"breakdown"`
	Summary   string          `json:"summary"`
}

// NewLookupView builds the view for a lookup outcome
func (f *AmountFormatter) NewLookupView(sel types.Selection, outcome lookup.Outcome) LookupView {
	view := LookupView{
		Selection: sel,
		Found:     outcome.IsFound(),
		Reason:    outcome.Reason(),
		Breakdown: f.EmptyBreakdown(),
		Summary:   Summary(sel, outcome),
	}
	if rec, ok := outcome.Record(); ok {
		view.Breakdown = f.Breakdown(rec)
	}
	return view
}

// RenderLookup writes a lookup view
func RenderLookup(w io.Writer, format Format, view LookupView) error {
	if format == FormatJSON {
		return writeJSON(w, view)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "기본 정책:   %s\n", view.Breakdown.Base)
	fmt.Fprintf(&b, "결합 정책:   %s\n", view.Breakdown.Bundle)
	fmt.Fprintf(&b, "KOS 정책:    %s\n", view.Breakdown.Extra)
	fmt.Fprintf(&b, "합계:        %s\n", view.Breakdown.Total)
	fmt.Fprintf(&b, "\n%s\n", view.Summary)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderOptions writes an option list. The synthetic no-secondary option
// is shown with its label.
func RenderOptions(w io.Writer, format Format, opts constraint.Options) error {
	if format == FormatJSON {
		return writeJSON(w, opts)
	}
	var b strings.Builder
	if opts.IsEmpty() {
		fmt.Fprintf(&b, "%s: (no valid options)\n", opts.Attribute)
	}
	for _, v := range opts.Values {
		label := v
		if opts.Attribute == types.AttrSecondary && v == constraint.NoSecondary {
			label = "없음(미선택)"
		}
		fmt.Fprintf(&b, "%s\n", label)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
