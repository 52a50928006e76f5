package parser

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DynamicProvider is a LanguageProvider backed by a grammar shared library
// (.so on Linux, .dylib on macOS) loaded at runtime. It lets a formatter
// binary support languages whose grammars were not compiled in.
type DynamicProvider struct {
	language   *tree_sitter.Language
	extensions *ExtensionSet
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// CSymbolName returns the conventional C entry point for a grammar,
// tree_sitter_{name}.
func CSymbolName(lang string) string {
	return "tree_sitter_" + lang
}

// LoadDynamicProvider opens the shared library at soPath and resolves the
// grammar entry point named symbol (see CSymbolName). Failure to open the
// library or a null grammar pointer is reported as an error; the caller
// decides whether that is fatal.
func LoadDynamicProvider(soPath, symbol string, extensions ...string) (*DynamicProvider, error) {
	if _, err := os.Stat(soPath); err != nil {
		return nil, fmt.Errorf("grammar library %s: %w", soPath, err)
	}

	handle, err := purego.Dlopen(soPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", soPath, err)
	}

	var langFunc func() uintptr
	purego.RegisterLibFunc(&langFunc, handle, symbol)

	ptr := langFunc()
	if ptr == 0 {
		return nil, fmt.Errorf("grammar library %s: %s() returned null", soPath, symbol)
	}

	// Convert uintptr from C (purego) to unsafe.Pointer without triggering
	// go vet's unsafeptr check. Safe because ptr is a static TSLanguage*
	// from the grammar library, not a Go-managed pointer.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))

	return &DynamicProvider{
		language:   language,
		extensions: NewExtensionSet(extensions...),
	}, nil
}

// Language returns the dynamically loaded grammar.
func (p *DynamicProvider) Language() *tree_sitter.Language {
	return p.language
}

// Extensions returns the file extensions configured at load time.
func (p *DynamicProvider) Extensions() *ExtensionSet {
	return p.extensions
}
