package loader

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// dllExtension is the platform-specific shared library suffix used
// when probing the library cache and when naming compiled output.
func dllExtension() string {
	switch runtime.GOOS {
	case "darwin":
		return "dylib"
	case "windows":
		return "dll"
	default:
		return "so"
	}
}

// loadGrammarAtPath implements "grammar-load-at-path": attempt to load
// (compiling if necessary) the grammar whose source tree lives at
// srcDir, compiling into libPath. name is the grammar's base symbol
// name (e.g. "python" for tree_sitter_python). forceRebuild skips the
// fast-load attempt and recompiles unconditionally.
func loadGrammarAtPath(srcDir, libPath, name string, forceRebuild bool) (*sitter.Language, error) {
	if !forceRebuild {
		if lang, err := tryLoadCompiled(libPath, name); err == nil && abiInWindow(lang) {
			return lang, nil
		}
	}

	parserC := filepath.Join(srcDir, "src", "parser.c")
	if _, err := os.Stat(parserC); os.IsNotExist(err) {
		if err := runTreeSitterGenerate(srcDir); err != nil {
			return nil, err
		}
	}

	if err := compileGrammar(srcDir, libPath, name); err != nil {
		return nil, err
	}

	lang, err := tryLoadCompiled(libPath, name)
	if err != nil {
		return nil, err
	}

	if !abiInWindow(lang) {
		return nil, &Error{Kind: CompileFailed, Detail: "compiled grammar ABI out of supported window"}
	}

	return lang, nil
}

func tryLoadCompiled(libPath, name string) (*sitter.Language, error) {
	if _, err := os.Stat(libPath); err != nil {
		return nil, &Error{Kind: DllIsUnreadable, Err: err, Detail: libPath}
	}

	return loadDynamicGrammar(libPath, name)
}

func runTreeSitterGenerate(srcDir string) error {
	if _, err := exec.LookPath("tree-sitter"); err != nil {
		return &Error{Kind: TreeSitterNotFound}
	}

	cmd := exec.Command("tree-sitter", "generate")
	cmd.Dir = srcDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &Error{
			Kind:    ChildProcessFailed,
			Verb:    "tree-sitter generate",
			Command: cmd.String(),
			Detail:  stdout.String() + stderr.String(),
			Err:     err,
		}
	}

	return nil
}

// compileGrammar invokes the platform C compiler to build parser.c
// (and scanner.c, if present) into a shared library at libPath. The
// reference implementation shells out to the tree-sitter CLI's own
// `build` step; this keeps the same "shell out, force rebuild, retry"
// control flow described in §4.2's grammar-load-at-path algorithm.
func compileGrammar(srcDir, libPath, name string) error {
	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}

	srcFiles := []string{filepath.Join(srcDir, "src", "parser.c")}
	if _, err := os.Stat(filepath.Join(srcDir, "src", "scanner.c")); err == nil {
		srcFiles = append(srcFiles, filepath.Join(srcDir, "src", "scanner.c"))
	}

	args := append([]string{"-shared", "-fPIC", "-O2", "-I", filepath.Join(srcDir, "src"), "-o", libPath}, srcFiles...)

	cmd := exec.Command(cc, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &Error{
			Kind:    CompileFailed,
			Verb:    fmt.Sprintf("compile grammar %s", name),
			Command: cmd.String(),
			Detail:  stdout.String() + stderr.String(),
			Err:     err,
		}
	}

	return nil
}
