package subcommands

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sinclairtarget/git-corp/internal/git"
)

// The "export" subcommand writes the commit log of the current repository as
// the headerless CSV that "report" reads.
func Export(
	w io.Writer,
	revs []string,
	pathspecs []string,
	opts git.LogOpts,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"export\": %w", err)
		}
	}()

	logger().Debug(
		"called export()",
		"revs",
		revs,
		"pathspecs",
		pathspecs,
		"countMerges",
		opts.CountMerges,
		"useMailmap",
		opts.UseMailmap,
		"filters",
		opts.Filters,
	)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records, closer, err := git.Records(ctx, revs, pathspecs, opts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	n := 0
	for record, err := range records {
		if err != nil {
			return fmt.Errorf("error iterating commits: %w", err)
		}

		row := []string{
			record.Hash,
			record.Name,
			record.Email,
			record.Date.Format(time.RFC3339),
			record.Subject,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}

		n += 1
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}

	err = bw.Flush()
	if err != nil {
		return err
	}

	err = closer()
	if err != nil {
		return err
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"finished export",
		"commits",
		n,
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return nil
}
