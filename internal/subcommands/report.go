package subcommands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sinclairtarget/git-corp/internal/affiliation"
	"github.com/sinclairtarget/git-corp/internal/commitlog"
	"github.com/sinclairtarget/git-corp/internal/format"
	"github.com/sinclairtarget/git-corp/internal/pretty"
	"github.com/sinclairtarget/git-corp/internal/stats"
)

const tableWidth = 32

type ReportOpts struct {
	GitlogPath string
	GroupsPath string // Optional file of extra affiliation groups
	Group      string
	Mode       affiliation.MatchMode
	ShowYears  bool
	UseCsv     bool
}

// The "report" subcommand prints how much of the commit log comes from
// affiliated developers, and how commit volume changes year to year.
func Report(w io.Writer, opts ReportOpts) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"report\": %w", err)
		}
	}()

	logger().Debug(
		"called report()",
		"gitlog",
		opts.GitlogPath,
		"groups",
		opts.GroupsPath,
		"group",
		opts.Group,
		"mode",
		opts.Mode,
		"showYears",
		opts.ShowYears,
		"useCsv",
		opts.UseCsv,
	)

	start := time.Now()

	groups := affiliation.DefaultGroups()
	if opts.GroupsPath != "" {
		loaded, err := affiliation.LoadGroups(opts.GroupsPath)
		if err != nil {
			return err
		}

		groups = groups.Merge(loaded)
	}

	patterns, err := groups.Lookup(opts.Group)
	if err != nil {
		return fmt.Errorf("%w (have: %s)", err, strings.Join(groups.Names(), ", "))
	}
	classifier := affiliation.NewClassifier(patterns, opts.Mode)
	logger().Debug(
		"classifying emails",
		"group",
		opts.Group,
		"mode",
		classifier.Mode(),
		"patterns",
		len(patterns),
	)

	records, err := commitlog.Load(opts.GitlogPath)
	if err != nil {
		return err
	}

	summary, err := stats.Summarize(records, classifier)
	if err != nil {
		return err
	}

	if summary.Contributors.Loose > 0 {
		logger().Warn(
			"some contributors matched only as a substring of their email; "+
				"use -match domain to require the domain itself",
			"contributors",
			summary.Contributors.Loose,
			"commits",
			summary.Commits.Loose,
		)
	}

	if opts.UseCsv {
		if opts.ShowYears {
			err = writeYearsCsv(w, summary.Years)
		} else {
			err = writeSummaryCsv(w, summary)
		}
		if err != nil {
			return err
		}
	} else {
		writeSummary(w, summary, opts.Group)
		if opts.ShowYears {
			writeYearsTable(w, summary.Years)
		}
	}

	elapsed := time.Now().Sub(start)
	logger().Debug("finished report", "duration_ms", elapsed.Milliseconds())

	return nil
}

func affiliationLabel(group string) string {
	if group == affiliation.CorporateGroup {
		return "corporate associated"
	}

	return fmt.Sprintf("associated with %s", group)
}

func writeSummary(w io.Writer, summary stats.Summary, group string) {
	label := affiliationLabel(group)

	fmt.Fprintf(
		w,
		"%s%% of commits are from developers who are %s\n",
		format.Percent(summary.Commits.Percent()),
		label,
	)
	fmt.Fprintf(
		w,
		"%s%% of developers are %s\n",
		format.Percent(summary.Contributors.Percent()),
		label,
	)
	fmt.Fprintf(
		w,
		"Average YoY change in number of commits is %s%%\n",
		format.Percent(summary.MeanChange),
	)
}

func writeYearsTable(w io.Writer, years []stats.YearCount) {
	if len(years) == 0 {
		return
	}

	rule := strings.Repeat("─", tableWidth-2)

	// -- Write header --
	fmt.Fprintln(w)
	fmt.Fprintf(w, "┌%s┐\n", rule)
	fmt.Fprintf(w, "│%-*s %9s %9s│\n", tableWidth-22, "Year", "Commits", "Change")
	fmt.Fprintf(w, "├%s┤\n", rule)

	// -- Write table rows --
	for _, y := range years {
		change := pretty.Signed(
			y.Change,
			fmt.Sprintf("%9s", format.Change(y.Change)),
		)

		fmt.Fprintf(
			w,
			"│%-*d %9s %s│\n",
			tableWidth-22,
			y.Year,
			format.Number(y.Commits),
			change,
		)
	}

	fmt.Fprintf(w, "└%s┘\n", rule)
}

func formatCsvFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeSummaryCsv(w io.Writer, summary stats.Summary) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"metric", "matched", "total", "percent"},
		{
			"commits",
			strconv.Itoa(summary.Commits.Matched),
			strconv.Itoa(summary.Commits.Total),
			formatCsvFloat(summary.Commits.Percent()),
		},
		{
			"contributors",
			strconv.Itoa(summary.Contributors.Matched),
			strconv.Itoa(summary.Contributors.Total),
			formatCsvFloat(summary.Contributors.Percent()),
		},
		{"mean yoy change", "", "", formatCsvFloat(summary.MeanChange)},
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return nil
}

func writeYearsCsv(w io.Writer, years []stats.YearCount) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"year", "commits", "change"}); err != nil {
		return fmt.Errorf("error writing CSV record: %w", err)
	}

	for _, y := range years {
		record := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Commits),
			formatCsvFloat(y.Change),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return nil
}
