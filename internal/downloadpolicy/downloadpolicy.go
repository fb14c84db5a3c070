// Package downloadpolicy implements the three-state network-access gate
// ({Yes, No, Ask}) that guards every git/curl invocation made by the
// parser Loader.
package downloadpolicy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Policy is one of Yes, No, or Ask.
type Policy int

const (
	// Ask prompts interactively before any network action (the default).
	Ask Policy = iota
	// Yes allows network actions unconditionally.
	Yes
	// No forbids all network actions.
	No
)

// String renders the policy in the lowercase form used on disk and on
// the --download flag.
func (p Policy) String() string {
	switch p {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "ask"
	}
}

// Parse reads a policy keyword, case-insensitively, trimmed of
// surrounding whitespace. Unrecognized input defaults to Ask, matching
// a corrupt or hand-edited policy file degrading to "ask me first"
// rather than silently becoming permissive.
func Parse(raw string) Policy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true":
		return Yes
	case "no", "n", "false":
		return No
	default:
		return Ask
	}
}

// Load reads the policy from the plain-text file at path. A missing
// file is treated as Ask (the documented default).
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Ask, nil
		}

		return Ask, fmt.Errorf("reading downloads policy %s: %w", path, err)
	}

	return Parse(string(data)), nil
}

// Prompter abstracts the interactive confirmation used by Ask mode, so
// it can be driven by a fixed answer in tests.
type Prompter interface {
	Confirm(prompt string) bool
}

// TerminalPrompter asks on stdout/stdin, matching the reference
// implementation's console-based yes/no gate. Non-interactive input
// (not a terminal) degrades to "no".
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prints prompt plus " [y/N] " and reads a line of input.
func (t TerminalPrompter) Confirm(prompt string) bool {
	if !isTerminal(os.Stdin) {
		return false
	}

	in, out := t.In, t.Out
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "%s [y/N] ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CanDownload reports whether a network action described by verb is
// allowed under policy, consulting prompter in Ask mode.
func CanDownload(policy Policy, prompter Prompter, verb string) bool {
	switch policy {
	case Yes:
		return true
	case No:
		return false
	default:
		return prompter.Confirm(fmt.Sprintf("Allow %s?", verb))
	}
}
