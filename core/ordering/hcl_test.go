package ordering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policy-lookup/core/types"
	perrors "policy-lookup/internal/errors"
)

const catalogHCL = `
locale = "en"

order "internet" {
  values = ["fiber", "cable"]
}

order "tv" {
  values = ["basic", "premium"]
}
`

func TestParseHCL(t *testing.T) {
	c, err := ParseHCL([]byte(catalogHCL), "orders.hcl")
	require.NoError(t, err)

	assert.Equal(t, "en", c.Locale().String())
	assert.Equal(t, []string{"fiber", "cable"}, c.Order(types.AttrInternet))
	assert.Equal(t, []string{"basic", "premium"}, c.Order(types.AttrSecondary))
	assert.Equal(t, []string{"fiber", "cable", "dsl"}, c.Sort(types.AttrInternet, []string{"dsl", "cable", "fiber"}))
}

func TestParseHCLDefaultsLocale(t *testing.T) {
	c, err := ParseHCL([]byte(`order "internet" { values = ["슬림"] }`), "orders.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, c.Locale())
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax error", src: `order "internet" {`},
		{name: "unknown attribute", src: `order "price" { values = ["a"] }`},
		{name: "flag attribute", src: `order "one_stop" { values = ["Y"] }`},
		{name: "duplicate block", src: `order "tv" { values = ["a"] }
order "secondary" { values = ["b"] }`},
		{name: "bad locale", src: `locale = "!!"`},
		{name: "values missing", src: `order "internet" {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.src), "orders.hcl")
			assert.Error(t, err)
		})
	}
}

func TestParseHCLSyntaxErrorIsParsing(t *testing.T) {
	_, err := ParseHCL([]byte(`order "internet" {`), "orders.hcl")
	require.Error(t, err)
	assert.True(t, perrors.IsType(err, perrors.TypeParsing))
	assert.Contains(t, err.Error(), "orders.hcl:1")
}

func TestLoadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.hcl")
	require.NoError(t, os.WriteFile(path, []byte(catalogHCL), 0644))

	c, err := LoadHCL(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Rank(types.AttrInternet, "fiber"))

	_, err = LoadHCL(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
