// Package outputs renders matched ranges to the user, preferring an
// external `bat` invocation for syntax highlighting and falling back
// to a plain bordered line-numbered dump when bat is unavailable,
// grounded on the original implementation's outputs.rs
// write_ranges_with_bat / write_ranges_with_std_io pair.
package outputs

import (
	"os/exec"
	"strings"
	"sync"
)

// WrapMode mirrors bat's --wrap values.
type WrapMode int

const (
	WrapAuto WrapMode = iota
	WrapNever
	WrapCharacter
)

func (w WrapMode) String() string {
	switch w {
	case WrapNever:
		return "never"
	case WrapCharacter:
		return "character"
	default:
		return "auto"
	}
}

// Options configures one write_ranges-equivalent call.
type Options struct {
	Wrap         WrapMode
	Plain        int // 0 = full styling; above 0 = no line numbers or decorations (color follows UseColor)
	UseColor     bool
	TerminalCols int // 0 means unknown
}

var (
	batOnce      sync.Once
	batAvailable bool
)

// HasBat reports whether the `bat` binary is on PATH, checked exactly
// once per process per §5's "process-wide state" rule.
func HasBat() bool {
	batOnce.Do(func() {
		_, err := exec.LookPath("bat")
		batAvailable = err == nil
	})

	return batAvailable
}

func dashes(n int, ch byte) string {
	if n <= 0 {
		n = 1
	}

	return strings.Repeat(string(ch), n)
}
