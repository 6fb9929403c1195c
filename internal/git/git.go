/*
* Wraps access to data needed from Git.
*
* We invoke Git directly as a subprocess and parse the output rather than using
* git2go/libgit2.
 */
package git

import (
	"context"
	"fmt"
	"iter"

	"github.com/sinclairtarget/git-corp/internal/commitlog"
	"github.com/sinclairtarget/git-corp/internal/git/cmd"
)

type LogOpts struct {
	Filters     cmd.LogFilters
	CountMerges bool
	UseMailmap  bool
}

// Returns an iterator over commits identified by the given revisions and
// paths, as records of the kind read from a commit log file.
//
// Also returns a closer() function for cleanup and an error when encountered.
func Records(
	ctx context.Context,
	revs []string,
	pathspecs []string,
	opts LogOpts,
) (
	iter.Seq2[commitlog.Record, error],
	func() error,
	error,
) {
	logger().Debug("reading commits", "revs", revs, "pathspecs", pathspecs)

	subprocess, err := cmd.RunLog(
		ctx,
		revs,
		pathspecs,
		opts.Filters,
		opts.CountMerges,
		opts.UseMailmap,
	)
	if err != nil {
		return nil, nil, err
	}

	tokens, finish := subprocess.StdoutNullDelimited()
	records := ParseRecords(tokens)

	closer := func() error {
		err := finish()
		if err != nil {
			return err
		}

		return subprocess.Wait()
	}
	return records, closer, nil
}

// Turns an iterator over NUL-delimited fields from git log into an iterator of
// records.
func ParseRecords(tokens iter.Seq[string]) iter.Seq2[commitlog.Record, error] {
	return func(yield func(commitlog.Record, error) bool) {
		var fields []string

		for token := range tokens {
			if len(fields) == 0 && token == "" {
				continue // Trailing separator
			}

			fields = append(fields, token)
			if len(fields) < cmd.LogFields {
				continue
			}

			record, err := toRecord(fields)
			if !yield(record, err) || err != nil {
				return
			}

			fields = fields[:0]
		}

		if len(fields) > 0 {
			yield(
				commitlog.Record{},
				fmt.Errorf(
					"truncated commit in git log output: got %d of %d fields",
					len(fields),
					cmd.LogFields,
				),
			)
		}
	}
}

func toRecord(fields []string) (commitlog.Record, error) {
	record := commitlog.Record{
		Hash:    fields[0],
		Name:    fields[1],
		Email:   fields[2],
		Subject: fields[4],
	}

	date, err := commitlog.ParseDate(fields[3])
	if err != nil {
		return record, fmt.Errorf(
			"error parsing date from commit %s: %w",
			record.Hash,
			err,
		)
	}
	record.Date = date

	return record, nil
}
