// Package testutil provides shared policy table fixtures for tests.
package testutil

import (
	"testing"

	"policy-lookup/core/dataset"
)

// PolicyJSON is a small policy table covering present and absent TV rows,
// flag combinations, an unlisted internet product and a numeric KOS code.
const PolicyJSON = `{
  "generated_at": "2025-03-01T09:30:00",
  "records": [
    {"category": "홈결합", "internet": "베이직", "has_tv": "N", "tv": null, "one_stop": "N", "giga_genie3": "N",
     "base_policy": 10, "bundle_policy": 2, "kos_policy": 0, "total_with_kos": 12, "kos_code": "K100"},
    {"category": "홈결합", "internet": "베이직", "has_tv": "Y", "tv": "라이트/베이직", "one_stop": "N", "giga_genie3": "N",
     "base_policy": 15, "bundle_policy": 3, "kos_policy": 0, "total_with_kos": 18, "kos_code": null},
    {"category": "홈결합", "internet": "베이직", "has_tv": "Y", "tv": "에센스/플러스", "one_stop": "N", "giga_genie3": "N",
     "base_policy": 17.5, "bundle_policy": 3, "kos_policy": 0, "total_with_kos": 20.5, "kos_code": null},
    {"category": "홈결합", "internet": "베이직", "has_tv": "Y", "tv": "라이트/베이직", "one_stop": "Y", "giga_genie3": "N",
     "base_policy": 16, "bundle_policy": 4, "kos_policy": 0, "total_with_kos": 20, "kos_code": 4410},
    {"category": "홈결합", "internet": "슬림", "has_tv": "N", "tv": null, "one_stop": "N", "giga_genie3": "N",
     "base_policy": 8, "bundle_policy": null, "kos_policy": null, "total_with_kos": 8, "kos_code": null},
    {"category": "홈결합", "internet": "에센스", "has_tv": "Y", "tv": "모든G이상", "one_stop": "N", "giga_genie3": "Y",
     "base_policy": 20, "bundle_policy": 5, "kos_policy": 3, "total_with_kos": 28, "kos_code": "K300"},
    {"category": "홈결합", "internet": "슬림플러스↓", "has_tv": "Y", "tv": "라이트/베이직", "one_stop": "N", "giga_genie3": "N",
     "base_policy": 9, "bundle_policy": 1, "kos_policy": 0, "total_with_kos": 10, "kos_code": null},
    {"category": "가족결합", "internet": "베이직", "has_tv": "N", "tv": null, "one_stop": "N", "giga_genie3": "N",
     "base_policy": 11, "bundle_policy": 1.25, "kos_policy": 0, "total_with_kos": 12.25, "kos_code": null},
    {"category": "가족결합", "internet": "기가인터넷", "has_tv": "N", "tv": null, "one_stop": "N", "giga_genie3": "N",
     "base_policy": "13", "bundle_policy": "0", "kos_policy": "0", "total_with_kos": "13", "kos_code": null},
    {"category": "가족결합", "internet": "에센스", "has_tv": "N", "tv": null, "one_stop": "Y", "giga_genie3": "Y",
     "base_policy": 21, "bundle_policy": 6, "kos_policy": 3, "total_with_kos": 30, "kos_code": "K500"}
  ]
}`

// RecordCount is the number of records in PolicyJSON
const RecordCount = 10

// Dataset loads PolicyJSON and fails the test on error
func Dataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load([]byte(PolicyJSON))
	if err != nil {
		t.Fatalf("failed to load fixture dataset: %v", err)
	}
	return ds
}

// FlaggedCategoriesJSON has one category with an unflagged row and two
// categories whose only rows set one_stop or giga_genie3
const FlaggedCategoriesJSON = `{
  "records": [
    {"category": "홈결합", "internet": "베이직", "has_tv": "N", "tv": null, "one_stop": "N", "giga_genie3": "N",
     "base_policy": 10, "bundle_policy": 0, "kos_policy": 0, "total_with_kos": 10},
    {"category": "가족결합", "internet": "베이직", "has_tv": "N", "tv": null, "one_stop": "Y", "giga_genie3": "N",
     "base_policy": 11, "bundle_policy": 0, "kos_policy": 0, "total_with_kos": 11},
    {"category": "기업결합", "internet": "에센스", "has_tv": "Y", "tv": "모든G이상", "one_stop": "N", "giga_genie3": "Y",
     "base_policy": 12, "bundle_policy": 0, "kos_policy": 0, "total_with_kos": 12}
  ]
}`

// FlaggedCategoriesDataset loads FlaggedCategoriesJSON and fails the test on error
func FlaggedCategoriesDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load([]byte(FlaggedCategoriesJSON))
	if err != nil {
		t.Fatalf("failed to load flagged fixture dataset: %v", err)
	}
	return ds
}
