// Package display renders the salat CLI's terminal output: ANSI styling for
// the current and next prayer, and width-aware tables for schedules whose
// cells may hold Bengali or Arabic script.
//
// Styling respects the NO_COLOR environment variable (https://no-color.org/)
// and is disabled automatically when stdout is not a terminal.
package display

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI escape codes for styling.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	fgGray = "\033[90m" // bright black = gray
)

// enabled reports whether color output is active.
// It is set once at init time.
var enabled bool

func init() {
	enabled = shouldEnable()
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	// Respect NO_COLOR (https://no-color.org/).
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	// FORCE_COLOR wins over terminal detection, e.g. inside tmux status lines.
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	// Disable color when stdout is not a terminal (piped/redirected).
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal, including
// Cygwin and MSYS pseudo terminals on Windows.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

// wrap applies an ANSI code around text, only when colors are enabled.
func wrap(code, text string) string {
	if !enabled {
		return text
	}
	return code + text + reset
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return wrap(bold, text)
}

// Dim returns text rendered in dim/faint.
func Dim(text string) string {
	return wrap(dim, text)
}

// Green returns text rendered in green.
func Green(text string) string {
	return wrap(green, text)
}

// Yellow returns text rendered in yellow.
func Yellow(text string) string {
	return wrap(yellow, text)
}

// Cyan returns text rendered in cyan.
func Cyan(text string) string {
	return wrap(cyan, text)
}

// Gray returns text rendered in gray (bright black).
func Gray(text string) string {
	return wrap(fgGray, text)
}

// Accent returns text rendered in the accent color (cyan + bold).
// Used for the "next prayer" highlight; Dim marks the current one.
func Accent(text string) string {
	if !enabled {
		return text
	}
	return bold + cyan + text + reset
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}

// State places a schedule row relative to the current moment.
type State int

const (
	StateUpcoming State = iota
	StatePast
	StateCurrent
	StateNext
)

// StateAt classifies the row at index i given the indexes of the current and
// next prayers (-1 when there is none).
func StateAt(i, current, next int) State {
	switch {
	case i == next:
		return StateNext
	case i == current:
		return StateCurrent
	case next >= 0 && i < next, next < 0 && current >= 0 && i < current:
		return StatePast
	}
	return StateUpcoming
}

// Styled renders text for its schedule state: the next prayer is accented,
// the current one dimmed and past ones grayed.
func Styled(text string, s State) string {
	switch s {
	case StateNext:
		return Accent(text)
	case StateCurrent:
		return Dim(text)
	case StatePast:
		return Gray(text)
	}
	return text
}

// Warn marks a value computed by the high-latitude fallback.
func Warn(text string) string {
	return Yellow(text + "*")
}
