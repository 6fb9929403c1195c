package stats

import (
	"github.com/sinclairtarget/git-corp/internal/affiliation"
	"github.com/sinclairtarget/git-corp/internal/commitlog"
)

type Summary struct {
	Commits      Ratio
	Contributors Ratio
	Years        []YearCount
	MeanChange   float64 // NaN if the log covers less than two years
}

func Summarize(
	records []commitlog.Record,
	classifier *affiliation.Classifier,
) (Summary, error) {
	commits, err := CommitRatio(records, classifier)
	if err != nil {
		return Summary{}, err
	}

	contributors, err := ContributorRatio(records, classifier)
	if err != nil {
		return Summary{}, err
	}

	years := YearOverYear(CountByYear(records))

	return Summary{
		Commits:      commits,
		Contributors: contributors,
		Years:        years,
		MeanChange:   MeanChange(years),
	}, nil
}
