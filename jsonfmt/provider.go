// Package jsonfmt is the reference consumer of the formatter framework: a
// small JSON formatter built from a compiled-in tree-sitter grammar, a YAML
// config, and a handful of passes covering both pass contracts.
package jsonfmt

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_json "github.com/tree-sitter/tree-sitter-json/bindings/go"

	"github.com/corey/fmtkit/parser"
	"github.com/corey/fmtkit/pipeline"
)

// Language provides the tree-sitter JSON grammar.
type Language struct{}

var jsonExtensions = parser.NewExtensionSet("json")

// Language returns the compiled-in JSON grammar.
func (Language) Language() *tree_sitter.Language {
	return tree_sitter.NewLanguage(ts_json.Language())
}

// Extensions returns the file extensions jsonfmt handles.
func (Language) Extensions() *parser.ExtensionSet {
	return jsonExtensions
}

// Config controls which passes rewrite anything. The zero value disables
// nothing a default config file would enable; see DefaultConfig.
type Config struct {
	SortKeys        bool `yaml:"sort_keys"`
	SpaceAfterColon bool `yaml:"space_after_colon"`
	TrailingNewline bool `yaml:"trailing_newline"`
}

// DefaultConfig enables every pass.
func DefaultConfig() Config {
	return Config{
		SortKeys:        true,
		SpaceAfterColon: true,
		TrailingNewline: true,
	}
}

// Pipeline assembles the jsonfmt passes in their canonical order.
func Pipeline() *pipeline.Pipeline[Config] {
	p := pipeline.New[Config]()
	p.AddPass(SyntaxCheckPass{})
	p.AddPass(ColonSpacingPass{})
	p.AddPass(pipeline.Structured[Config, Member](SortKeysPass{}))
	p.AddPass(TrailingNewlinePass{})
	return p
}
