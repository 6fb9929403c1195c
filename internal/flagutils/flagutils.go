// Custom flag.Value implementations.
package flagutils

import "strings"

// A flag that can be given multiple times, collecting every value.
type SliceFlag []string

func (s *SliceFlag) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

func (s *SliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}
