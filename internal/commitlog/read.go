package commitlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/sinclairtarget/git-corp/internal/iterutils"
)

// Returns a single-use iterator over the complete records in the CSV stream.
//
// Rows with fewer than five columns or with an empty column are skipped. Any
// columns past the fifth belong to the subject, which is the only free-text
// field git puts on the line. Also returns a finish() function reporting the
// number of rows skipped.
func Records(r io.Reader) (iter.Seq2[Record, error], func() int) {
	var dropped int

	seq := func(yield func(Record, error) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		for {
			fields, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			} else if err != nil {
				yield(Record{}, fmt.Errorf("error reading commit log: %w", err))
				return
			}

			line, _ := reader.FieldPos(0)

			// No column git writes spans lines, so a line break means a quote
			// was never closed and the reader swallowed the rows after it.
			if slices.ContainsFunc(fields, hasLineBreak) {
				yield(
					Record{},
					fmt.Errorf("error on line %d: unterminated quote", line),
				)
				return
			}

			if len(fields) < numColumns {
				logger().Debug(
					"skipping row with missing columns",
					"line",
					line,
					"columns",
					len(fields),
				)
				dropped += 1
				continue
			}

			record, err := toRecord(fields)
			if err != nil {
				yield(record, fmt.Errorf("error on line %d: %w", line, err))
				return
			}

			if !record.Complete() {
				logger().Debug(
					"skipping incomplete row",
					"line",
					line,
					"record",
					record,
				)
				dropped += 1
				continue
			}

			if !yield(record, nil) {
				return
			}
		}
	}

	finish := func() int {
		return dropped
	}

	return seq, finish
}

func hasLineBreak(field string) bool {
	return strings.ContainsAny(field, "\r\n")
}

func toRecord(fields []string) (Record, error) {
	record := Record{
		Hash:    fields[0],
		Name:    fields[1],
		Email:   fields[2],
		Subject: strings.Join(fields[4:], ","),
	}

	// An empty date is missing, not malformed
	if fields[3] == "" {
		return record, nil
	}

	date, err := ParseDate(fields[3])
	if err != nil {
		return record, err
	}
	record.Date = date

	return record, nil
}

// Reads all complete records from the CSV stream into memory.
func Read(r io.Reader) (_ []Record, err error) {
	start := time.Now()

	seq, finish := Records(r)

	records, err := iterutils.Collect(seq)
	if err != nil {
		return nil, err
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"read commit log",
		"records",
		len(records),
		"dropped",
		finish(),
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return records, nil
}

// Load reads all complete records from the CSV file at path.
func Load(path string) (_ []Record, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("could not load commit log: %w", err)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // Don't care about error closing when reading

	return Read(f)
}
