package main

import (
	"fmt"

	"golang.org/x/term"

	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/kraklabs/dook/internal/outputs"
)

// enablement is the Auto/Never/Always tri-state shared by --color and
// --paging.
type enablement int

const (
	enableAuto enablement = iota
	enableNever
	enableAlways
)

func parseEnablement(raw string) (enablement, error) {
	switch raw {
	case "", "auto":
		return enableAuto, nil
	case "never":
		return enableNever, nil
	case "always":
		return enableAlways, nil
	default:
		return enableAuto, fmt.Errorf("invalid value %q: expected auto, never, or always", raw)
	}
}

func parseWrapMode(raw string, chopLongLines bool) (outputs.WrapMode, error) {
	if raw == "" && chopLongLines {
		return outputs.WrapNever, nil
	}

	switch raw {
	case "", "auto":
		return outputs.WrapAuto, nil
	case "never":
		return outputs.WrapNever, nil
	case "character":
		return outputs.WrapCharacter, nil
	default:
		return outputs.WrapAuto, fmt.Errorf("invalid value %q: expected auto, never, or character", raw)
	}
}

// resolveColor decides whether output (and the pager, if any) should
// be colored: an explicit --color wins, otherwise auto-detect from
// whether the terminal itself supports color.
func resolveColor(requested enablement, isTerm bool) bool {
	if requested != enableAuto {
		return requested == enableAlways
	}

	return isTerm
}

// resolveDownloadPolicy applies --offline, then an explicit
// --download, then the persisted policy file, matching main.rs's
// offline-overrides-everything-else precedence. An Ask policy that
// would require a prompt downgrades to No when stdout isn't a
// terminal, since there's nobody to ask.
func resolveDownloadPolicy(offline bool, explicit string, persisted downloadpolicy.Policy, isTerm bool) downloadpolicy.Policy {
	policy := persisted
	if explicit != "" {
		policy = downloadpolicy.Parse(explicit)
	}

	if offline {
		policy = downloadpolicy.No
	}

	if policy == downloadpolicy.Ask && !isTerm {
		return downloadpolicy.No
	}

	return policy
}

// resolvePaging decides whether a pager should wrap stdout: an
// explicit --paging wins; auto mode pages only when plain < 2 and
// stdout is a terminal. Paging is further suppressed whenever the
// download policy is Ask, since forking a pager would hide the
// y/n prompt (§9's documented paging/downloads interaction).
func resolvePaging(requested enablement, plain int, isTerm bool, policy downloadpolicy.Policy) bool {
	enabled := false

	switch requested {
	case enableAlways:
		enabled = true
	case enableNever:
		enabled = false
	case enableAuto:
		enabled = plain < 2 && isTerm
	}

	return enabled && policy != downloadpolicy.Ask
}

func terminalSize() (cols int, ok bool) {
	width, _, err := term.GetSize(1) // fd 1: stdout
	if err != nil || width <= 0 {
		return 0, false
	}

	return width, true
}

func isTerminalStdout() bool {
	return term.IsTerminal(1)
}
