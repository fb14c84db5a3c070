//go:build !windows

package loader

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

// tree_sitter_language_fn matches the C signature every tree-sitter
// grammar exports: const TSLanguage *tree_sitter_<name>(void).
typedef void *(*tree_sitter_language_fn)(void);

static void *dook_dlopen(const char *path) {
	return dlopen(path, RTLD_NOW | RTLD_LOCAL);
}

static void *dook_dlsym(void *handle, const char *sym) {
	return dlsym(handle, sym);
}

static void *dook_call_language_fn(void *fn) {
	return ((tree_sitter_language_fn)fn)();
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// dynamicLibraryHandles keeps every successfully dlopen'd library
// resident for the lifetime of the process: the grammar it yields
// keeps pointing into the library's mapped memory, so the handle must
// never be dlclose'd (§9's "deliberate leak" design note, the direct
// analogue of the Rust implementation keeping its libloading::Library
// alive by never dropping it).
var dynamicLibraryHandles []unsafe.Pointer

// loadDynamicGrammar dlopens the shared library at libPath and
// resolves the grammar constructor symbol tree_sitter_<symbolName>,
// returning a *sitter.Language built from its result. This has no
// grounding in the retrieved example corpus (every example repo only
// ever links grammars statically via go-sitter-forest); it is the
// direct Go equivalent of the original Rust implementation's
// libloading::Library::new + get::<Symbol<...>>(tree_sitter_<name>),
// using cgo + dlopen/dlsym since the stdlib has no dynamic C-ABI
// loading facility. See DESIGN.md for the explicit justification.
func loadDynamicGrammar(libPath, symbolName string) (*sitter.Language, error) {
	cPath := C.CString(libPath)
	defer C.free(unsafe.Pointer(cPath))

	handle := C.dook_dlopen(cPath)
	if handle == nil {
		return nil, &Error{Kind: DllIsUnreadable, Detail: libPath}
	}

	dynamicLibraryHandles = append(dynamicLibraryHandles, unsafe.Pointer(handle))

	symbol := "tree_sitter_" + symbolName
	cSymbol := C.CString(symbol)
	defer C.free(unsafe.Pointer(cSymbol))

	fn := C.dook_dlsym(handle, cSymbol)
	if fn == nil {
		return nil, &Error{Kind: DllSymbolIsMissing, Detail: fmt.Sprintf("%s in %s", symbol, libPath)}
	}

	langPtr := C.dook_call_language_fn(fn)

	return sitter.NewLanguage(unsafe.Pointer(langPtr)), nil
}
