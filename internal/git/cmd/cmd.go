/*
* Handles invoking Git as a subprocess.
 */
package cmd

import (
	"context"
	"fmt"
	"slices"
)

// One field per NUL-terminated token; with -z, git also ends each commit with
// a NUL.
const (
	logFormat        = "--pretty=format:%H%x00%an%x00%ae%x00%aI%x00%s"
	mailmapLogFormat = "--pretty=format:%H%x00%aN%x00%aE%x00%aI%x00%s"
)

// Number of NUL-delimited fields git prints per commit.
const LogFields = 5

// Runs git log
func RunLog(
	ctx context.Context,
	revs []string,
	pathspecs []string,
	filters LogFilters,
	countMerges bool,
	useMailmap bool,
) (*Subprocess, error) {
	var baseArgs []string

	if useMailmap {
		baseArgs = []string{
			"log",
			mailmapLogFormat,
			"-z",
			"--reverse",
			"--no-show-signature",
		}
	} else {
		baseArgs = []string{
			"log",
			logFormat,
			"-z",
			"--reverse",
			"--no-show-signature",
			"--no-mailmap",
		}
	}

	if !countMerges {
		baseArgs = append(baseArgs, "--no-merges")
	}

	filterArgs := filters.ToArgs()

	var args []string
	if len(pathspecs) > 0 {
		args = slices.Concat(
			baseArgs,
			filterArgs,
			revs,
			[]string{"--"},
			pathspecs,
		)
	} else {
		args = slices.Concat(baseArgs, filterArgs, revs)
	}

	subprocess, err := run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run git log: %w", err)
	}

	return subprocess, nil
}
