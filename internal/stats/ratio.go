// Summary statistics over commit records.
package stats

import (
	"errors"
	"time"

	"github.com/sinclairtarget/git-corp/internal/affiliation"
	"github.com/sinclairtarget/git-corp/internal/commitlog"
)

var ErrNoRecords = errors.New("no commit records to analyse")

// Share of some population that is affiliated.
type Ratio struct {
	Matched int
	Total   int
	Loose   int // Matched only as a substring of the email
}

func (r Ratio) Percent() float64 {
	return float64(r.Matched) / float64(r.Total) * 100
}

// Share of commits authored from an affiliated email address.
func CommitRatio(
	records []commitlog.Record,
	classifier *affiliation.Classifier,
) (Ratio, error) {
	if len(records) == 0 {
		return Ratio{}, ErrNoRecords
	}

	ratio := Ratio{Total: len(records)}
	for _, r := range records {
		m := classifier.Match(r.Email)
		if m.OK {
			ratio.Matched += 1
		}
		if m.Loose {
			ratio.Loose += 1
		}
	}

	return ratio, nil
}

// Share of distinct contributors (by email) that are affiliated.
//
// Each contributor counts once no matter how many commits they made.
func ContributorRatio(
	records []commitlog.Record,
	classifier *affiliation.Classifier,
) (Ratio, error) {
	if len(records) == 0 {
		return Ratio{}, ErrNoRecords
	}

	start := time.Now()

	contributors := Contributors(records)

	ratio := Ratio{Total: len(contributors)}
	for _, c := range contributors {
		m := classifier.Match(c.Email)
		if m.OK {
			ratio.Matched += 1
		}
		if m.Loose {
			ratio.Loose += 1
		}
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"classified contributors",
		"contributors",
		ratio.Total,
		"matched",
		ratio.Matched,
		"loose",
		ratio.Loose,
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return ratio, nil
}
