package stats

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/sinclairtarget/git-corp/internal/commitlog"
)

// Number of commits made in a calendar year.
type YearCount struct {
	Year    int
	Commits int
	// Percent change in commits from the previous year in the series. NaN for
	// the first year.
	Change float64
}

// Years are calendar years in UTC.
func yearOf(r commitlog.Record) int {
	return r.Date.UTC().Year()
}

// Counts commits per calendar year for the years present in the log,
// ascending. Change is NaN until filled in by YearOverYear().
func CountByYear(records []commitlog.Record) []YearCount {
	byYear := map[int]int{}
	for _, r := range records {
		byYear[yearOf(r)] += 1
	}

	counts := make([]YearCount, 0, len(byYear))
	for year, n := range byYear {
		counts = append(counts, YearCount{
			Year:    year,
			Commits: n,
			Change:  math.NaN(),
		})
	}

	slices.SortFunc(counts, func(a, b YearCount) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return counts
}

// Fills in the percent change of each year relative to the one before it.
//
// Years missing from the log are not filled in, so the change is relative to
// the previous year that had commits.
func YearOverYear(counts []YearCount) []YearCount {
	result := slices.Clone(counts)

	for i := range result {
		if i == 0 {
			result[i].Change = math.NaN()
			continue
		}

		prev := float64(result[i-1].Commits)
		result[i].Change = (float64(result[i].Commits) - prev) / prev * 100
	}

	return result
}

// Mean of the year-over-year changes, skipping years with no baseline.
//
// Returns NaN if there are no changes to average.
func MeanChange(counts []YearCount) float64 {
	changes := []float64{}
	for _, c := range counts {
		if !math.IsNaN(c.Change) {
			changes = append(changes, c.Change)
		}
	}

	if len(changes) == 0 {
		return math.NaN()
	}

	return stat.Mean(changes, nil)
}
