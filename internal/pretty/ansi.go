// ANSI escape codes
package pretty

var colorEnabled = true

// SetColorEnabled controls whether ANSI color codes are output
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// GetColorEnabled returns whether ANSI color codes are currently enabled
func GetColorEnabled() bool {
	return colorEnabled
}

const resetCode string = "\x1b[0m"
const greenCode string = "\x1b[32m"
const redCode string = "\x1b[31m"
const dimCode string = "\x1b[2m"

// Reset returns the reset ANSI code if colors are enabled, empty string otherwise
func Reset() string {
	if colorEnabled {
		return resetCode
	}
	return ""
}

// Green returns the green ANSI code if colors are enabled, empty string otherwise
func Green() string {
	if colorEnabled {
		return greenCode
	}
	return ""
}

// Red returns the red ANSI code if colors are enabled, empty string otherwise
func Red() string {
	if colorEnabled {
		return redCode
	}
	return ""
}

// Dim returns the dim ANSI code if colors are enabled, empty string otherwise
func Dim() string {
	if colorEnabled {
		return dimCode
	}
	return ""
}

// Colors s green for growth, red for decline and dim when there is no change
// to show.
func Signed(value float64, s string) string {
	switch {
	case value > 0:
		return Green() + s + Reset()
	case value < 0:
		return Red() + s + Reset()
	default:
		return Dim() + s + Reset()
	}
}
