package stats_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sinclairtarget/git-corp/internal/affiliation"
	"github.com/sinclairtarget/git-corp/internal/commitlog"
	"github.com/sinclairtarget/git-corp/internal/stats"
)

func record(hash string, email string, date string) commitlog.Record {
	d, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}

	return commitlog.Record{
		Hash:    hash,
		Name:    "Some Developer",
		Email:   email,
		Date:    d,
		Subject: "Change things",
	}
}

var redhatRecords = []commitlog.Record{
	record("baa", "dev@redhat.com", "2021-03-01T10:00:00Z"),
	record("bab", "dev@redhat.com", "2022-03-01T10:00:00Z"),
	record("bac", "dev@redhat.com", "2022-05-01T10:00:00Z"),
	record("bad", "dev@example.org", "2023-01-01T10:00:00Z"),
}

func corpClassifier() *affiliation.Classifier {
	return affiliation.NewClassifier(
		affiliation.CorporateDomains,
		affiliation.SubstringMatch,
	)
}

func TestCommitRatio(t *testing.T) {
	ratio, err := stats.CommitRatio(redhatRecords, corpClassifier())
	if err != nil {
		t.Fatalf("CommitRatio() returned error: %v", err)
	}

	if ratio.Percent() != 75 {
		t.Errorf("expected 75%% but got %f%%", ratio.Percent())
	}
}

func TestContributorRatio(t *testing.T) {
	ratio, err := stats.ContributorRatio(redhatRecords, corpClassifier())
	if err != nil {
		t.Fatalf("ContributorRatio() returned error: %v", err)
	}

	expected := stats.Ratio{Matched: 1, Total: 2}
	if diff := cmp.Diff(expected, ratio); diff != "" {
		t.Errorf("ratio is wrong:\n%s", diff)
	}

	if ratio.Percent() != 50 {
		t.Errorf("expected 50%% but got %f%%", ratio.Percent())
	}
}

func TestRatiosNoneMatch(t *testing.T) {
	records := []commitlog.Record{
		record("baa", "bob@mail.com", "2021-03-01T10:00:00Z"),
		record("bab", "jim@mail.com", "2021-03-02T10:00:00Z"),
	}

	commits, err := stats.CommitRatio(records, corpClassifier())
	if err != nil {
		t.Fatalf("CommitRatio() returned error: %v", err)
	}
	if commits.Percent() != 0 {
		t.Errorf("expected 0%% of commits but got %f%%", commits.Percent())
	}

	contributors, err := stats.ContributorRatio(records, corpClassifier())
	if err != nil {
		t.Fatalf("ContributorRatio() returned error: %v", err)
	}
	if contributors.Percent() != 0 {
		t.Errorf(
			"expected 0%% of contributors but got %f%%",
			contributors.Percent(),
		)
	}
}

func TestRatiosAllMatch(t *testing.T) {
	records := []commitlog.Record{
		record("baa", "bob@intel.com", "2021-03-01T10:00:00Z"),
		record("bab", "jim@suse.de", "2021-03-02T10:00:00Z"),
		record("bac", "jim@suse.de", "2021-03-03T10:00:00Z"),
	}

	commits, err := stats.CommitRatio(records, corpClassifier())
	if err != nil {
		t.Fatalf("CommitRatio() returned error: %v", err)
	}
	if commits.Percent() != 100 {
		t.Errorf("expected 100%% of commits but got %f%%", commits.Percent())
	}

	contributors, err := stats.ContributorRatio(records, corpClassifier())
	if err != nil {
		t.Fatalf("ContributorRatio() returned error: %v", err)
	}
	if contributors.Percent() != 100 {
		t.Errorf(
			"expected 100%% of contributors but got %f%%",
			contributors.Percent(),
		)
	}
}

func TestLooseMatchesCounted(t *testing.T) {
	records := []commitlog.Record{
		record("baa", "dev@notredhat.com", "2021-03-01T10:00:00Z"),
		record("bab", "dev@notredhat.com", "2021-03-02T10:00:00Z"),
	}

	loose, err := stats.ContributorRatio(records, corpClassifier())
	if err != nil {
		t.Fatalf("ContributorRatio() returned error: %v", err)
	}

	expected := stats.Ratio{Matched: 1, Total: 1, Loose: 1}
	if diff := cmp.Diff(expected, loose); diff != "" {
		t.Errorf("substring ratio is wrong:\n%s", diff)
	}

	strict := affiliation.NewClassifier(
		affiliation.CorporateDomains,
		affiliation.DomainMatch,
	)
	anchored, err := stats.ContributorRatio(records, strict)
	if err != nil {
		t.Fatalf("ContributorRatio() returned error: %v", err)
	}

	expected = stats.Ratio{Matched: 0, Total: 1}
	if diff := cmp.Diff(expected, anchored); diff != "" {
		t.Errorf("domain ratio is wrong:\n%s", diff)
	}
}

func TestRatiosEmpty(t *testing.T) {
	_, err := stats.CommitRatio(nil, corpClassifier())
	if !errors.Is(err, stats.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords but got: %v", err)
	}

	_, err = stats.ContributorRatio(nil, corpClassifier())
	if !errors.Is(err, stats.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords but got: %v", err)
	}

	_, err = stats.Summarize([]commitlog.Record{}, corpClassifier())
	if !errors.Is(err, stats.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords but got: %v", err)
	}
}

func TestContributors(t *testing.T) {
	contributors := stats.Contributors(redhatRecords)

	expected := []stats.Contributor{
		{
			Email:       "dev@example.org",
			Name:        "Some Developer",
			Commits:     1,
			FirstCommit: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
			LastCommit:  time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Email:       "dev@redhat.com",
			Name:        "Some Developer",
			Commits:     3,
			FirstCommit: time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC),
			LastCommit:  time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	if diff := cmp.Diff(expected, contributors); diff != "" {
		t.Errorf("contributors are wrong:\n%s", diff)
	}
}

func TestYearOverYear(t *testing.T) {
	records := []commitlog.Record{
		record("baa", "a@mail.com", "2019-06-01T00:00:00Z"),
		record("bab", "a@mail.com", "2019-07-01T00:00:00Z"),
		record("bac", "a@mail.com", "2020-01-01T00:00:00Z"),
		record("bad", "a@mail.com", "2020-02-01T00:00:00Z"),
		record("bae", "a@mail.com", "2020-03-01T00:00:00Z"),
		// Late on New Year's Eve in New York is already 2022 in UTC
		record("baf", "a@mail.com", "2021-12-31T20:00:00-05:00"),
	}

	years := stats.YearOverYear(stats.CountByYear(records))

	expected := []stats.YearCount{
		{Year: 2019, Commits: 2, Change: math.NaN()},
		{Year: 2020, Commits: 3, Change: 50},
		{Year: 2022, Commits: 1, Change: -200.0 / 3},
	}
	opts := []cmp.Option{
		cmpopts.EquateNaNs(),
		cmpopts.EquateApprox(0, 1e-9),
	}
	if diff := cmp.Diff(expected, years, opts...); diff != "" {
		t.Errorf("yearly counts are wrong:\n%s", diff)
	}

	mean := stats.MeanChange(years)
	expectedMean := (50 - 200.0/3) / 2
	if math.Abs(mean-expectedMean) > 1e-9 {
		t.Errorf("expected mean change %f but got %f", expectedMean, mean)
	}
}

func TestMeanChangeSingleYear(t *testing.T) {
	years := stats.YearOverYear([]stats.YearCount{{Year: 2024, Commits: 10}})

	if !math.IsNaN(years[0].Change) {
		t.Errorf("expected first year to have NaN change, got %f", years[0].Change)
	}

	if mean := stats.MeanChange(years); !math.IsNaN(mean) {
		t.Errorf("expected NaN mean change but got %f", mean)
	}
}

func TestSummarize(t *testing.T) {
	summary, err := stats.Summarize(redhatRecords, corpClassifier())
	if err != nil {
		t.Fatalf("Summarize() returned error: %v", err)
	}

	expected := stats.Summary{
		Commits:      stats.Ratio{Matched: 3, Total: 4},
		Contributors: stats.Ratio{Matched: 1, Total: 2},
		Years: []stats.YearCount{
			{Year: 2021, Commits: 1, Change: math.NaN()},
			{Year: 2022, Commits: 2, Change: 100},
			{Year: 2023, Commits: 1, Change: -50},
		},
		MeanChange: 25,
	}
	if diff := cmp.Diff(expected, summary, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("summary is wrong:\n%s", diff)
	}
}
