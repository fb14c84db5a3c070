package loader

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/downloadpolicy"
)

var (
	gitUserAgentOnce sync.Once
	gitUserAgent     string
)

// gitHTTPUserAgent derives a GIT_HTTP_USER_AGENT value from `git
// version`, computed once per process (§5's process-wide lazy state).
func gitHTTPUserAgent() string {
	gitUserAgentOnce.Do(func() {
		out, err := exec.Command("git", "version").Output()
		if err != nil {
			gitUserAgent = "dook"

			return
		}

		gitUserAgent = "dook/" + strings.TrimSpace(strings.TrimPrefix(string(out), "git version "))
	})

	return gitUserAgent
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_HTTP_USER_AGENT="+gitHTTPUserAgent())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &Error{
			Kind:    ChildProcessFailed,
			Verb:    "git " + strings.Join(args, " "),
			Command: cmd.String(),
			Detail:  stderr.String(),
			Err:     err,
		}
	}

	return stdout.String(), nil
}

// loadGitGrammar implements the Git(url, commit, subdir?) resolution
// algorithm from §4.2.
func (l *Loader) loadGitGrammar(src Source) (*sitter.Language, error) {
	repoName := strings.TrimSuffix(filepath.Base(src.CloneURL), ".git")
	repoDir := filepath.Join(l.sourcesDir, repoName)

	if info, err := os.Stat(filepath.Join(repoDir, ".git")); err == nil && info.IsDir() {
		remote, err := runGit(repoDir, "remote", "get-url", "origin")
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(remote) != src.CloneURL {
			return nil, &Error{Kind: GitHasWrongRemote, Detail: repoDir}
		}
	} else {
		if !downloadpolicy.CanDownload(l.policy, l.prompter, "git clone "+src.CloneURL) {
			return nil, &Error{Kind: NotAllowedToDownload, Detail: src.CloneURL}
		}

		if err := ensureParentCacheDir(l.sourcesDir); err != nil {
			return nil, err
		}

		if _, err := runGit(l.sourcesDir, "clone", "--filter=blob:none", src.CloneURL, repoDir); err != nil {
			return nil, err
		}
	}

	if _, err := runGit(repoDir, "cat-file", "-e", src.Commit); err != nil {
		if !downloadpolicy.CanDownload(l.policy, l.prompter, "git fetch "+src.CloneURL) {
			return nil, &Error{Kind: NotAllowedToDownload, Detail: src.CloneURL}
		}

		if _, err := runGit(repoDir, "fetch", "origin", src.Commit); err != nil {
			return nil, err
		}
	}

	head, err := runGit(repoDir, "rev-parse", "HEAD")
	if err != nil {
		return nil, &Error{Kind: GitHeadIsInvalid, Err: err}
	}

	if strings.TrimSpace(head) != src.Commit {
		if _, err := runGit(repoDir, "checkout", src.Commit); err != nil {
			return nil, err
		}
	}

	srcDir := repoDir
	if src.SubdirGit != "" {
		srcDir = filepath.Join(repoDir, src.SubdirGit)
	}

	libPath := filepath.Join(l.libDir, repoName+"."+dllExtension())

	return loadGrammarAtPath(srcDir, libPath, repoName, true)
}
