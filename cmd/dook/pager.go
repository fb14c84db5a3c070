package main

import (
	"os"
	"os/exec"
	"strings"

	"github.com/kraklabs/dook/internal/outputs"
)

// pagerProcess is a running pager subprocess fed through a pipe; it
// implements io.Writer so the rest of run can treat it as any other
// output destination.
type pagerProcess struct {
	cmd *exec.Cmd
	w   *os.File
}

func (p *pagerProcess) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

// startPager spawns the user's $PAGER (or less, with flags chosen to
// match wrap, the same default the original's pager crate setup
// applied) and pipes subsequent writes to it.
func startPager(wrap outputs.WrapMode) (*pagerProcess, error) {
	pagerCmd := os.Getenv("PAGER")
	if pagerCmd == "" {
		pagerCmd = "less"
	}

	if pagerCmd == "less" {
		if wrap == outputs.WrapNever {
			pagerCmd = "less -RFS"
		} else {
			pagerCmd = "less -RF"
		}
	}

	parts := strings.Fields(pagerCmd)
	if len(parts) == 0 {
		return nil, os.ErrInvalid
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = r
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()

		return nil, err
	}

	r.Close()

	return &pagerProcess{cmd: cmd, w: w}, nil
}

func (p *pagerProcess) stop() {
	p.w.Close()
	_ = p.cmd.Wait()
}
