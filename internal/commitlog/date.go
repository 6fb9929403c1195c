package commitlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts for the author dates git can print with --date or --pretty.
var dateLayouts = []string{
	time.RFC3339,                     // %aI, --date=iso-strict
	"2006-01-02 15:04:05 -0700",      // %ai, --date=iso
	"Mon Jan 2 15:04:05 2006 -0700",  // %ad, --date=default
	"Mon, 2 Jan 2006 15:04:05 -0700", // %aD, --date=rfc
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// ParseDate parses a timestamp in any of the formats git uses for author
// dates, including Unix seconds.
//
// Timestamps without a zone are taken to be UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: \"%s\"", s)
}
