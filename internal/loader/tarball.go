package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/downloadpolicy"
)

// loadTarballGrammar implements the Tarball{name, url, sha256hex,
// subdir} resolution algorithm from §4.2, including the fast path that
// skips extraction entirely when a suitably fresh compiled library is
// already cached.
func (l *Loader) loadTarballGrammar(src Source) (*sitter.Language, error) {
	expectedHash, err := decodeSHA256Hex(src.SHA256Hex)
	if err != nil {
		return nil, &Error{Kind: ExpectedHashIsInvalid, Detail: src.SHA256Hex}
	}

	tarballPath := filepath.Join(l.sourcesDir, src.TarballName+".tar")
	libPath := filepath.Join(l.libDir, src.TarballName+"."+dllExtension())

	if needsDownload, err := l.ensureTarball(tarballPath, src.URL, expectedHash); err != nil {
		return nil, err
	} else if !needsDownload {
		if lang, ok := l.fastPathFromCache(tarballPath, libPath, src.TarballName); ok {
			return lang, nil
		}
	}

	extractDir, err := os.MkdirTemp("", "dook-tarball-*")
	if err != nil {
		return nil, &Error{Kind: CannotMakeDirectoryForTarball, Err: err}
	}

	if err := extractTarball(tarballPath, extractDir); err != nil {
		return nil, err
	}

	srcDir := extractDir
	if src.SubdirTar != "" {
		srcDir = filepath.Join(extractDir, src.SubdirTar)
	}

	return loadGrammarAtPath(srcDir, libPath, src.TarballName, true)
}

// ensureTarball makes sure tarballPath exists and matches expectedHash,
// downloading it through the policy gate if needed. It returns
// needsDownload=false when the tarball was already present and valid
// (so the caller may still attempt the compiled-library fast path).
func (l *Loader) ensureTarball(tarballPath, url string, expectedHash []byte) (needsDownload bool, err error) {
	if existingHash, err := hashFile(tarballPath); err == nil {
		if bytes.Equal(existingHash, expectedHash) {
			return false, nil
		}
	}

	if !downloadpolicy.CanDownload(l.policy, l.prompter, "curl "+url) {
		return true, &Error{Kind: NotAllowedToDownload, Detail: url}
	}

	if err := ensureParentCacheDir(l.sourcesDir); err != nil {
		return true, err
	}

	cmd := exec.Command("curl", "-LsS", "-o", tarballPath, url)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return true, &Error{Kind: ChildProcessFailed, Verb: "curl", Command: cmd.String(), Detail: stderr.String(), Err: err}
	}

	gotHash, err := hashFile(tarballPath)
	if err != nil {
		return true, &Error{Kind: TarballIsUnreadable, Err: err, Detail: tarballPath}
	}

	if !bytes.Equal(gotHash, expectedHash) {
		return true, &Error{Kind: TarballHasWrongHash, Detail: tarballPath}
	}

	return true, nil
}

// fastPathFromCache implements step 4 of the Tarball algorithm: if a
// compiled library is newer than the tarball and its ABI is in the
// supported window, skip extraction entirely.
func (l *Loader) fastPathFromCache(tarballPath, libPath, name string) (*sitter.Language, bool) {
	tarInfo, err := os.Stat(tarballPath)
	if err != nil {
		return nil, false
	}

	libInfo, err := os.Stat(libPath)
	if err != nil || !libInfo.ModTime().After(tarInfo.ModTime()) {
		return nil, false
	}

	lang, err := loadDynamicGrammar(libPath, name)
	if err != nil || !abiInWindow(lang) {
		return nil, false
	}

	return lang, true
}

func decodeSHA256Hex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) != 32 {
		return nil, &Error{Kind: ExpectedHashIsInvalid, Detail: s}
	}

	return b, nil
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

func extractTarball(tarballPath, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return &Error{Kind: CannotMakeDirectoryForTarball, Err: err}
	}

	cmd := exec.Command("tar", "-C", dest, "-xmkf", tarballPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &Error{Kind: ChildProcessFailed, Verb: "tar", Command: cmd.String(), Detail: stderr.String(), Err: err}
	}

	return nil
}
