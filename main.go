package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sinclairtarget/git-corp/internal/affiliation"
	"github.com/sinclairtarget/git-corp/internal/flagutils"
	"github.com/sinclairtarget/git-corp/internal/git"
	"github.com/sinclairtarget/git-corp/internal/git/cmd"
	"github.com/sinclairtarget/git-corp/internal/pretty"
	"github.com/sinclairtarget/git-corp/internal/subcommands"
)

var Commit = "unknown"
var Version = "unknown"

type command struct {
	flagSet     *flag.FlagSet
	run         func(args []string) error
	description string
}

// Main examines the args and delegates to the specified subcommand.
//
// If no subcommand was specified, we default to the "report" subcommand.
func main() {
	commands := map[string]command{ // Available subcommands
		"report": reportCmd(),
		"export": exportCmd(),
	}

	// --- Handle top-level flags ---
	mainFlagSet := flag.NewFlagSet("git-corp", flag.ExitOnError)

	versionFlag := mainFlagSet.Bool("version", false, "Print version and exit")
	verboseFlag := mainFlagSet.Bool("v", false, "Enables debug logging")

	mainFlagSet.Usage = func() {
		fmt.Println("Usage: git-corp [-v] [subcommand] [subcommand options...]")
		fmt.Println("git-corp measures how much of a project's history comes from corporate developers")

		fmt.Println()
		fmt.Println("Top-level options:")
		mainFlagSet.PrintDefaults()

		fmt.Println()
		fmt.Println("Subcommands:")

		helpSubcommands := []string{"report", "export"}
		for _, name := range helpSubcommands {
			cmd := commands[name]

			fmt.Printf("  %s\n", name)
			fmt.Printf("\t%s\n", cmd.description)
		}
	}

	// Look for the index of the first arg not intended as a top-level flag.
	// We handle this manually so that specifying the default subcommand is
	// optional even when providing subcommand flags.
	subcmdIndex := 1
loop:
	for subcmdIndex < len(os.Args) {
		switch os.Args[subcmdIndex] {
		case "-version", "--version", "-v", "--v", "-h", "--help":
			subcmdIndex += 1
		default:
			break loop
		}
	}

	mainFlagSet.Parse(os.Args[1:subcmdIndex])

	if *versionFlag {
		fmt.Printf("%s %s\n", Version, Commit)
		return
	}

	if *verboseFlag {
		configureLogging(slog.LevelDebug)
		logger().Debug("log level set to DEBUG")
	} else {
		configureLogging(slog.LevelInfo)
	}

	pretty.SetColorEnabled(pretty.AllowDynamic(os.Stdout))

	args := os.Args[subcmdIndex:]

	// --- Handle subcommands ---
	cmd := commands["report"] // Default to "report"
	if len(args) > 0 {
		first := args[0]
		if subcommand, ok := commands[first]; ok {
			cmd = subcommand
			args = args[1:]
		}
	}

	cmd.flagSet.Parse(args)
	subargs := cmd.flagSet.Args()

	if err := cmd.run(subargs); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// -v- Subcommand definitions --------------------------------------------------

func reportCmd() command {
	flagSet := flag.NewFlagSet("git-corp report", flag.ExitOnError)

	gitlog := flagSet.String("gitlog", "", "Git log file to analyse (required)")
	groupsPath := flagSet.String(
		"groups",
		"",
		"YAML or JSON file mapping group names to email domains",
	)
	group := flagSet.String(
		"group",
		affiliation.CorporateGroup,
		"Affiliation group to measure",
	)
	match := flagSet.String(
		"match",
		affiliation.SubstringMatch.String(),
		strings.TrimSpace(`
How to match emails: "substring" matches anywhere in the address, "domain"
requires the email's domain (or a parent domain)
		`),
	)
	showYears := flagSet.Bool("years", false, "Show commits for each year")
	useCsv := flagSet.Bool("csv", false, "Output as csv")

	description := "Print the share of commits and developers that are corporate associated"

	flagSet.Usage = func() {
		fmt.Println(strings.TrimSpace(`
Usage: git-corp report --gitlog <path> [options...]
		`))
		fmt.Println(description)
		fmt.Println()
		fmt.Println("The log is a CSV with no header and the columns hash, name, email, date,")
		fmt.Println("subject. Use \"git-corp export\" to write one for a repository.")
		fmt.Println()
		flagSet.PrintDefaults()
	}

	return command{
		flagSet:     flagSet,
		description: description,
		run: func(args []string) error {
			if *gitlog == "" {
				return errors.New("the --gitlog flag is required")
			}

			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
			}

			mode, err := affiliation.ParseMatchMode(*match)
			if err != nil {
				return err
			}

			return subcommands.Report(
				os.Stdout,
				subcommands.ReportOpts{
					GitlogPath: *gitlog,
					GroupsPath: *groupsPath,
					Group:      *group,
					Mode:       mode,
					ShowYears:  *showYears,
					UseCsv:     *useCsv,
				},
			)
		},
	}
}

func exportCmd() command {
	flagSet := flag.NewFlagSet("git-corp export", flag.ExitOnError)

	countMerges := flagSet.Bool("merges", false, "Include merge commits")
	useMailmap := flagSet.Bool(
		"mailmap",
		true,
		"Use the repository's .mailmap to canonicalize names and emails",
	)

	filterFlags := addFilterFlags(flagSet)

	description := "Write the commit log of the current repository as CSV for \"report\""

	flagSet.Usage = func() {
		fmt.Println(strings.TrimSpace(`
Usage: git-corp export [options...] [revisions...] [[--] paths...]
		`))
		fmt.Println(description)
		fmt.Println()
		flagSet.PrintDefaults()
	}

	return command{
		flagSet:     flagSet,
		description: description,
		run: func(args []string) error {
			revs, paths := git.ParseArgs(args)
			return subcommands.Export(
				os.Stdout,
				revs,
				paths,
				git.LogOpts{
					Filters: cmd.LogFilters{
						Since:    *filterFlags.since,
						Until:    *filterFlags.until,
						Authors:  filterFlags.authors,
						Nauthors: filterFlags.nauthors,
					},
					CountMerges: *countMerges,
					UseMailmap:  *useMailmap,
				},
			)
		},
	}
}

// -^---------------------------------------------------------------------------

func configureLogging(level slog.Level) {
	handler := slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{
			Level: level,
		},
	)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

type filterFlags struct {
	since    *string
	until    *string
	authors  flagutils.SliceFlag
	nauthors flagutils.SliceFlag
}

func addFilterFlags(set *flag.FlagSet) *filterFlags {
	flags := filterFlags{
		since: set.String("since", "", strings.TrimSpace(`
Only export commits after the given date. See git-commit(1) for valid date formats
		`)),
		until: set.String("until", "", strings.TrimSpace(`
Only export commits before the given date. See git-commit(1) for valid date formats
		`)),
	}

	set.Var(&flags.authors, "author", strings.TrimSpace(`
Only export commits by these authors. Can be specified multiple times
	`))

	set.Var(&flags.nauthors, "nauthor", strings.TrimSpace(`
Exclude commits by these authors. Can be specified multiple times
	`))

	return &flags
}
