package subcommands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sinclairtarget/git-corp/internal/affiliation"
	"github.com/sinclairtarget/git-corp/internal/pretty"
	"github.com/sinclairtarget/git-corp/internal/stats"
	"github.com/sinclairtarget/git-corp/internal/subcommands"
)

const redhatLog = `baa,Bob,dev@redhat.com,2021-03-01T10:00:00Z,Start
bab,Bob,dev@redhat.com,2022-03-01T10:00:00Z,Fix things
bac,Bob,dev@redhat.com,2022-05-01T10:00:00Z,"Fix more things, again"
bad,Jim,jim@example.org,2023-01-01T10:00:00Z,Drive-by fix
bae,Jim,,2023-01-02T10:00:00Z,No email so not counted
`

func writeLog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gitlog.csv")
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("could not write commit log: %v", err)
	}

	return path
}

func defaultOpts(path string) subcommands.ReportOpts {
	return subcommands.ReportOpts{
		GitlogPath: path,
		Group:      affiliation.CorporateGroup,
		Mode:       affiliation.SubstringMatch,
	}
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	err := subcommands.Report(&out, defaultOpts(writeLog(t, redhatLog)))
	if err != nil {
		t.Fatalf("Report() returned error: %v", err)
	}

	expected := strings.Join([]string{
		"75.0% of commits are from developers who are corporate associated",
		"50.0% of developers are corporate associated",
		"Average YoY change in number of commits is 25.0%",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("report output is wrong:\n%s", diff)
	}
}

func TestReportYearsTable(t *testing.T) {
	defer pretty.SetColorEnabled(pretty.GetColorEnabled())
	pretty.SetColorEnabled(false)

	opts := defaultOpts(writeLog(t, redhatLog))
	opts.ShowYears = true

	var out bytes.Buffer
	err := subcommands.Report(&out, opts)
	if err != nil {
		t.Fatalf("Report() returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	table := lines[4:]

	expected := []string{
		"┌──────────────────────────────┐",
		"│Year         Commits    Change│",
		"├──────────────────────────────┤",
		"│2021               1         -│",
		"│2022               2   +100.0%│",
		"│2023               1    -50.0%│",
		"└──────────────────────────────┘",
	}
	if diff := cmp.Diff(expected, table); diff != "" {
		t.Errorf("table is wrong:\n%s", diff)
	}
}

func TestReportCsv(t *testing.T) {
	opts := defaultOpts(writeLog(t, redhatLog))
	opts.UseCsv = true

	var out bytes.Buffer
	err := subcommands.Report(&out, opts)
	if err != nil {
		t.Fatalf("Report() returned error: %v", err)
	}

	expected := `metric,matched,total,percent
commits,3,4,75
contributors,1,2,50
mean yoy change,,,25
`
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("csv output is wrong:\n%s", diff)
	}
}

func TestReportYearsCsv(t *testing.T) {
	opts := defaultOpts(writeLog(t, redhatLog))
	opts.UseCsv = true
	opts.ShowYears = true

	var out bytes.Buffer
	err := subcommands.Report(&out, opts)
	if err != nil {
		t.Fatalf("Report() returned error: %v", err)
	}

	expected := `year,commits,change
2021,1,NaN
2022,2,100
2023,1,-50
`
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("csv output is wrong:\n%s", diff)
	}
}

func TestReportGroupsFile(t *testing.T) {
	groupsPath := filepath.Join(t.TempDir(), "groups.yaml")
	err := os.WriteFile(groupsPath, []byte("acme:\n  - example.org\n"), 0o644)
	if err != nil {
		t.Fatalf("could not write groups file: %v", err)
	}

	opts := defaultOpts(writeLog(t, redhatLog))
	opts.GroupsPath = groupsPath
	opts.Group = "acme"

	var out bytes.Buffer
	err = subcommands.Report(&out, opts)
	if err != nil {
		t.Fatalf("Report() returned error: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	expected := "25.0% of commits are from developers who are associated with acme"
	if lines[0] != expected {
		t.Errorf("expected \"%s\" but got \"%s\"", expected, lines[0])
	}
}

func TestReportUnknownGroup(t *testing.T) {
	opts := defaultOpts(writeLog(t, redhatLog))
	opts.Group = "gnome"

	var out bytes.Buffer
	err := subcommands.Report(&out, opts)
	if !errors.Is(err, affiliation.ErrUnknownGroup) {
		t.Errorf("expected ErrUnknownGroup but got: %v", err)
	}
}

func TestReportEmptyLog(t *testing.T) {
	var out bytes.Buffer
	err := subcommands.Report(&out, defaultOpts(writeLog(t, "")))
	if !errors.Is(err, stats.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords but got: %v", err)
	}

	if out.Len() > 0 {
		t.Errorf("expected no partial output but got:\n%s", out.String())
	}
}

func TestReportMissingLog(t *testing.T) {
	opts := defaultOpts(filepath.Join(t.TempDir(), "nope.csv"))

	var out bytes.Buffer
	err := subcommands.Report(&out, opts)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist but got: %v", err)
	}
}
