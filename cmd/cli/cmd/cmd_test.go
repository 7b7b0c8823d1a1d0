package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "policy-lookup/internal/errors"
	"policy-lookup/internal/testutil"
)

// run executes the root command with fresh flag state against the fixture
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	data := filepath.Join(dir, "policy.json")
	require.NoError(t, os.WriteFile(data, []byte(testutil.PolicyJSON), 0644))

	cfgFile, verbose, dataSource, ordersFile, outputFormat = "", false, "", "", ""
	lookupFlags, optionsFlags = selectionFlags{}, selectionFlags{}
	lookupStrict = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.json"), "--data", data}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories")
	require.NoError(t, err)
	assert.Equal(t, "가족결합\n홈결합\n", out)
}

func TestCategoriesCommandListsFlagOnlyCategories(t *testing.T) {
	data := filepath.Join(t.TempDir(), "flagged.json")
	require.NoError(t, os.WriteFile(data, []byte(testutil.FlaggedCategoriesJSON), 0644))

	out, err := run(t, "categories", "--data", data)
	require.NoError(t, err)
	assert.Equal(t, "가족결합\n기업결합\n홈결합\n", out)

	out, err = run(t, "validate", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Categories: 3")
	assert.NotContains(t, out, "Generated:")
}

func TestOptionsCommand(t *testing.T) {
	out, err := run(t, "options", "tv", "--category", "홈결합", "--internet", "베이직")
	require.NoError(t, err)
	assert.Equal(t, []string{"없음(미선택)", "라이트/베이직", "에센스/플러스"}, strings.Split(strings.TrimSpace(out), "\n"))

	_, err = run(t, "options", "price")
	assert.Error(t, err)
}

func TestLookupCommand(t *testing.T) {
	out, err := run(t, "lookup", "--category", "홈결합", "--internet", "베이직", "--tv", "라이트/베이직", "--one-stop")
	require.NoError(t, err)
	assert.Contains(t, out, "20 만원")
	assert.Contains(t, out, "KOS: 4410")
}

func TestLookupCommandJSON(t *testing.T) {
	out, err := run(t, "lookup", "--format", "json", "--category", "가족결합", "--internet", "베이직")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, true, view["found"])
	assert.Equal(t, "12.3 만원", view["breakdown"].(map[string]any)["total_policy"])
}

func TestLookupCommandStrictMiss(t *testing.T) {
	out, err := run(t, "lookup", "--category", "홈결합", "--internet", "슬림플러스↓")
	require.NoError(t, err)
	assert.Contains(t, out, "찾지 못했습니다")

	_, err = run(t, "lookup", "--strict", "--category", "홈결합", "--internet", "슬림플러스↓")
	require.Error(t, err)
	assert.True(t, perrors.IsType(err, perrors.TypeNotFound))
	assert.Contains(t, err.Error(), "not_found")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Records:    10")
	assert.Contains(t, out, "Generated:  2025-03-01 09:30:00")
}

func TestValidateCommandRejectsDuplicates(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"records": [
		{"category": "A", "internet": "X", "has_tv": "N", "one_stop": "N", "giga_genie3": "N"},
		{"category": "A", "internet": "X", "has_tv": "N", "one_stop": "N", "giga_genie3": "N"}
	]}`), 0644))

	out, err := run(t, "validate", "--data", bad)
	require.Error(t, err)
	assert.Contains(t, out, "data integrity violation")
}

func TestOrdersFlag(t *testing.T) {
	orders := filepath.Join(t.TempDir(), "orders.hcl")
	require.NoError(t, os.WriteFile(orders, []byte(`order "internet" { values = ["베이직", "슬림"] }`), 0644))

	out, err := run(t, "options", "internet", "--orders", orders, "--category", "홈결합")
	require.NoError(t, err)
	assert.Equal(t, []string{"베이직", "슬림", "슬림플러스↓"}, strings.Split(strings.TrimSpace(out), "\n"))
}
