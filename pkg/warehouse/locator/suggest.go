package locator

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/zyedidia/generic/mapset"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// suggest returns up to maxSuggestions known codes close to code, best first
func suggest(code string, known []string) []string {
	type scored struct {
		val  string
		dist int
	}

	want := strings.ToUpper(code)
	seen := mapset.New[string]()
	var results []scored
	for _, cand := range known {
		if seen.Has(cand) {
			continue
		}
		seen.Put(cand)

		upper := strings.ToUpper(cand)
		if upper == want {
			// differs only by case
			results = append(results, scored{val: cand})
			continue
		}
		dist := levenshtein.ComputeDistance(want, upper)
		if dist > distanceLimit(len(upper)) {
			continue
		}
		results = append(results, scored{val: cand, dist: dist})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})

	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.val)
	}
	return out
}

func distanceLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
