package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		in      string
		want    Attribute
		wantErr bool
	}{
		{in: "category", want: AttrCategory},
		{in: "Internet", want: AttrInternet},
		{in: "tv", want: AttrSecondary},
		{in: "secondary", want: AttrSecondary},
		{in: "one-stop", want: AttrOneStop},
		{in: "giga_genie3", want: AttrExtraDevice},
		{in: "price", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttribute(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSecondaryAbsenceIsDistinct proves an absent secondary never equals a
// present one, including the empty string
func TestSecondaryAbsenceIsDistinct(t *testing.T) {
	assert.False(t, NoSecondary.IsPresent())
	assert.NotEqual(t, NoSecondary, Present(""))
	assert.NotEqual(t, NoSecondary, Present("라이트/베이직"))

	a := Record{Category: "A", Internet: "X"}
	b := Record{Category: "A", Internet: "X", Secondary: Present("")}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestSecondaryJSON(t *testing.T) {
	data, err := json.Marshal(Record{Category: "A", Internet: "X"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"secondary":null`)

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"category":"A","internet":"X","secondary":"TV"}`), &rec))
	tv, ok := rec.Secondary.Value()
	assert.True(t, ok)
	assert.Equal(t, "TV", tv)
}

func TestSelectionMatches(t *testing.T) {
	rec := Record{Category: "A", Internet: "X", Secondary: Present("T"), OneStop: true}

	tests := []struct {
		name string
		sel  Selection
		skip Attribute
		want bool
	}{
		{name: "empty selection with matching flags", sel: Selection{OneStop: true}, want: true},
		{name: "flags always filter", sel: Selection{}, want: false},
		{name: "skipped flag does not filter", sel: Selection{}, skip: AttrOneStop, want: true},
		{name: "category mismatch", sel: Selection{Category: "B", OneStop: true}, want: false},
		{name: "category mismatch skipped", sel: Selection{Category: "B", OneStop: true}, skip: AttrCategory, want: true},
		{name: "secondary match", sel: Selection{Secondary: "T", OneStop: true}, want: true},
		{name: "secondary mismatch", sel: Selection{Secondary: "U", OneStop: true}, want: false},
		{name: "unset secondary does not filter", sel: Selection{Category: "A", Internet: "X", OneStop: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Matches(rec, tt.skip))
		})
	}
}

func TestSelectionIsValueType(t *testing.T) {
	base := Selection{Category: "A"}
	next := base.WithInternet("X").WithOneStop(true)

	assert.Equal(t, "", base.Internet)
	assert.False(t, base.OneStop)
	assert.Equal(t, "X", next.Internet)
	assert.True(t, next.IsComplete())
	assert.False(t, base.IsComplete())
	assert.Equal(t, NoSecondary, next.SecondaryValue())
	assert.Equal(t, Present("T"), next.WithSecondary("T").SecondaryValue())
}

func TestRecordValue(t *testing.T) {
	rec := Record{Category: "A", Internet: "X", ExtraDevice: true}

	v, ok := rec.Value(AttrSecondary)
	assert.False(t, ok)
	assert.Empty(t, v)

	v, ok = rec.Value(AttrExtraDevice)
	assert.True(t, ok)
	assert.Equal(t, FlagYes, v)

	v, _ = rec.Value(AttrOneStop)
	assert.Equal(t, FlagNo, v)
}
