package ordering

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/text/language"

	"policy-lookup/core/types"
	perrors "policy-lookup/internal/errors"
)

// catalogFile is the HCL shape of an order catalog:
//
//	locale = "ko"
//
//	order "internet" {
//	  values = ["슬림", "베이직"]
//	}
type catalogFile struct {
	Locale string       `hcl:"locale,optional"`
	Orders []orderBlock `hcl:"order,block"`
}

type orderBlock struct {
	Attribute string   `hcl:"attribute,label"`
	Values    []string `hcl:"values"`
}

// LoadHCL reads a catalog from an HCL file
func LoadHCL(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order catalog: %w", err)
	}
	return ParseHCL(src, path)
}

// ParseHCL decodes a catalog from HCL source
func ParseHCL(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	var cf catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cf); diags.HasErrors() {
		return nil, diagError(diags)
	}

	locale := DefaultLocale
	if cf.Locale != "" {
		tag, err := language.Parse(cf.Locale)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid locale %q: %w", filename, cf.Locale, err)
		}
		locale = tag
	}

	c := NewCatalog(locale)
	seen := make(map[types.Attribute]bool)
	for _, block := range cf.Orders {
		attr, err := types.ParseAttribute(block.Attribute)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if attr.IsFlag() {
			return nil, fmt.Errorf("%s: attribute %q has a fixed boolean order", filename, block.Attribute)
		}
		if seen[attr] {
			return nil, fmt.Errorf("%s: duplicate order block for %q", filename, attr)
		}
		seen[attr] = true
		c.SetOrder(attr, block.Values)
	}
	return c, nil
}

func diagError(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Subject != nil {
			return perrors.Parsing(fmt.Sprintf("%s:%d: %s", d.Subject.Filename, d.Subject.Start.Line, d.Summary), diags)
		}
		return perrors.Parsing(d.Summary, diags)
	}
	return perrors.Parsing("invalid order catalog", diags)
}
