package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggest returns a " (did you mean ...?)" hint for the candidate closest
// to input, or "" when nothing is close. Abbreviations ("master" for
// "master-stack") are matched first, then small typos.
func suggest(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}
	if ranks := fuzzy.RankFindNormalizedFold(input, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return fmt.Sprintf(" (did you mean %q?)", ranks[0].Target)
	}

	best, bestDist := "", -1
	lower := strings.ToLower(input)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist > max(2, len(input)/3) {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
