package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"policy-lookup/core/types"
)

func TestSortListedFirstThenCollated(t *testing.T) {
	c := NewCatalog(language.English)
	c.SetOrder(types.AttrInternet, []string{"a", "c"})

	got := c.Sort(types.AttrInternet, []string{"b", "c", "a"})
	assert.Equal(t, []string{"a", "c", "b"}, got)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	c := NewCatalog(language.English)
	in := []string{"b", "a"}
	_ = c.Sort(types.AttrCategory, in)
	assert.Equal(t, []string{"b", "a"}, in)
}

func TestRank(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		attr  types.Attribute
		value string
		want  int
	}{
		{name: "first listed internet", attr: types.AttrInternet, value: "슬림", want: 0},
		{name: "last listed internet", attr: types.AttrInternet, value: "에센스", want: 3},
		{name: "unlisted internet", attr: types.AttrInternet, value: "기가인터넷", want: 4},
		{name: "listed secondary", attr: types.AttrSecondary, value: "모든G이상(MNP)", want: 3},
		{name: "attribute without order", attr: types.AttrCategory, value: "홈결합", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Rank(tt.attr, tt.value))
		})
	}
}

func TestDefaultOrders(t *testing.T) {
	c := Default()

	internets := c.Sort(types.AttrInternet, []string{"에센스", "기가인터넷", "베이직", "슬림플러스↓", "슬림"})
	assert.Equal(t, []string{"슬림", "슬림플러스↓", "베이직", "에센스", "기가인터넷"}, internets)

	tvs := c.Sort(types.AttrSecondary, []string{"모든G이상(MNP)", "라이트/베이직", "모든G이상"})
	assert.Equal(t, []string{"라이트/베이직", "모든G이상", "모든G이상(MNP)"}, tvs)
}

func TestUnlistedValuesCollateByLocale(t *testing.T) {
	c := Default()

	got := c.Sort(types.AttrCategory, []string{"홈결합", "나홀로", "가족결합"})
	assert.Equal(t, []string{"가족결합", "나홀로", "홈결합"}, got)

	// ties among unlisted values fall back to collation, not byte order
	en := NewCatalog(language.English)
	assert.Equal(t, []string{"apple", "Banana", "cherry"}, en.Sort(types.AttrCategory, []string{"cherry", "Banana", "apple"}))
}

func TestSetOrderKeepsFirstDuplicate(t *testing.T) {
	c := NewCatalog(language.English)
	c.SetOrder(types.AttrInternet, []string{"x", "y", "x"})

	assert.Equal(t, []string{"x", "y"}, c.Order(types.AttrInternet))
	assert.Equal(t, 0, c.Rank(types.AttrInternet, "x"))
	assert.Equal(t, 2, c.Unranked(types.AttrInternet))
}

func TestCompareIsTotal(t *testing.T) {
	c := Default()
	assert.Equal(t, 0, c.Compare(types.AttrInternet, "베이직", "베이직"))
	assert.Equal(t, -1, c.Compare(types.AttrInternet, "슬림", "베이직"))
	assert.Equal(t, 1, c.Compare(types.AttrInternet, "기가인터넷", "에센스"))
}

func TestZeroValueCatalog(t *testing.T) {
	var c Catalog

	assert.Equal(t, 0, c.Unranked(types.AttrInternet))
	assert.Equal(t, []string{"a", "b", "c"}, c.Sort(types.AttrInternet, []string{"c", "a", "b"}))

	c.SetOrder(types.AttrInternet, []string{"c"})
	assert.Equal(t, []string{"c", "a", "b"}, c.Sort(types.AttrInternet, []string{"b", "a", "c"}))
	assert.Equal(t, []string{"c"}, c.Order(types.AttrInternet))
}
