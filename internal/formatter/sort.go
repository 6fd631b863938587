package formatter

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mcncl/jxview/internal/models"
)

// SortKeys returns a copy of v with object keys sorted recursively using
// locale-aware collation. Array order is preserved. Sorting is stable, so
// applying SortKeys twice yields the same result as applying it once.
func SortKeys(v models.JSONValue) models.JSONValue {
	c := collate.New(language.Und)
	return sortValue(c, v)
}

func sortValue(c *collate.Collator, v models.JSONValue) models.JSONValue {
	switch val := v.(type) {
	case models.JSONObject:
		sorted := make(models.JSONObject, len(val))
		for i, m := range val {
			sorted[i] = models.Member{Key: m.Key, Value: sortValue(c, m.Value)}
		}
		slices.SortStableFunc(sorted, func(a, b models.Member) int {
			return c.CompareString(a.Key, b.Key)
		})
		return sorted
	case models.JSONArray:
		items := make(models.JSONArray, len(val))
		for i, item := range val {
			items[i] = sortValue(c, item)
		}
		return items
	default:
		return v
	}
}
