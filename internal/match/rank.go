package match

import "sort"

// Rank sorts reports by descending overall score and assigns dense ranks:
// equal scores share a rank, and every rank equals one plus the number of
// strictly-better entries. Unparseable scores sort after all numeric scores,
// keeping their relative input order. The returned slice is the input,
// reordered.
func Rank(results []*Report) []*Report {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	for _, report := range results {
		better := 0
		for _, other := range results {
			if other.OverallScore > report.OverallScore {
				better++
			}
		}
		report.Rank = 1 + better
	}

	return results
}
