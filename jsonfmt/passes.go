package jsonfmt

import (
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/fmtkit/pipeline"
)

// SyntaxCheckPass emits a warning per syntax error in the document. It
// rewrites nothing itself; later passes leave broken regions untouched, and
// the warnings explain why those regions came out unformatted.
type SyntaxCheckPass struct{}

func (SyntaxCheckPass) PassName() string { return "syntax-check" }

func (SyntaxCheckPass) Run(ctx *pipeline.Context[Config]) []pipeline.Edit {
	if !ctx.Root().HasError() {
		return nil
	}
	visit(ctx.Root(), func(n *tree_sitter.Node) bool {
		if !n.HasError() {
			return false
		}
		if n.IsError() || n.IsMissing() {
			span := pipeline.Span{Start: n.StartByte(), End: n.EndByte()}
			ctx.Warning("syntax error", &span)
			return false
		}
		return true
	})
	return nil
}

// ColonSpacingPass puts exactly one space between a member's colon and its
// value. Members whose colon and value sit on different lines keep their
// layout.
type ColonSpacingPass struct{}

func (ColonSpacingPass) PassName() string { return "colon-spacing" }

func (ColonSpacingPass) Run(ctx *pipeline.Context[Config]) []pipeline.Edit {
	if !ctx.Config().SpaceAfterColon {
		return nil
	}

	source := ctx.Source()
	var edits []pipeline.Edit
	visit(ctx.Root(), func(n *tree_sitter.Node) bool {
		if n.Kind() != "pair" {
			return true
		}
		colon := childByKind(n, ":")
		if colon == nil {
			return true
		}
		value := colon.NextNamedSibling()
		if value == nil {
			return true
		}
		gap := pipeline.Span{Start: colon.EndByte(), End: value.StartByte()}
		between := source[gap.Start:gap.End]
		if between != " " && !strings.Contains(between, "\n") {
			edits = append(edits, pipeline.Edit{Range: gap, Content: " "})
		}
		return true
	})
	return edits
}

// Member is one object member as extracted by SortKeysPass: the quoted key
// and the verbatim value text.
type Member struct {
	Key   string
	Value string
}

// SortKeysPass orders the members of single-line objects lexicographically
// by key and renders them in canonical `"key": value` form. Multi-line
// objects keep their layout. Only the outermost qualifying object is
// extracted, so edit spans never nest.
type SortKeysPass struct{}

func (SortKeysPass) PassName() string { return "sort-keys" }

func (SortKeysPass) Extract(root *tree_sitter.Node, source string) []pipeline.EditTarget[Member] {
	var targets []pipeline.EditTarget[Member]
	visit(root, func(n *tree_sitter.Node) bool {
		if n.Kind() != "object" {
			return true
		}
		if n.HasError() {
			return true // never rewrite broken objects; a nested one may be intact
		}
		text := nodeText(n, source)
		if strings.Contains(text, "\n") {
			return true // recurse: a nested object may still be single-line
		}

		var members []Member
		pairs := 0
		for i := uint(0); i < uint(n.NamedChildCount()); i++ {
			pair := n.NamedChild(i)
			if pair.Kind() != "pair" {
				continue
			}
			pairs++
			key := childByKind(pair, "string")
			colon := childByKind(pair, ":")
			if key == nil || colon == nil {
				continue
			}
			value := colon.NextNamedSibling()
			if value == nil {
				continue
			}
			members = append(members, Member{
				Key:   nodeText(key, source),
				Value: nodeText(value, source),
			})
		}
		if len(members) != pairs {
			return true // a pair did not decompose cleanly; rebuilding would drop it
		}

		targets = append(targets, pipeline.EditTarget[Member]{
			Range: pipeline.Span{Start: n.StartByte(), End: n.EndByte()},
			Items: members,
		})
		return false // members of this object are already captured verbatim
	})
	return targets
}

func (SortKeysPass) Transform(config Config, _ *tree_sitter.Node, _ string, items []Member) ([]Member, error) {
	if !config.SortKeys {
		return nil, nil
	}
	sorted := make([]Member, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted, nil
}

func (SortKeysPass) Build(_ Config, items []Member) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Key)
		b.WriteString(": ")
		b.WriteString(m.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// TrailingNewlinePass makes the file end with exactly one newline. Empty
// files stay empty.
type TrailingNewlinePass struct{}

func (TrailingNewlinePass) PassName() string { return "trailing-newline" }

func (TrailingNewlinePass) Run(ctx *pipeline.Context[Config]) []pipeline.Edit {
	if !ctx.Config().TrailingNewline {
		return nil
	}

	source := ctx.Source()
	if source == "" {
		return nil
	}

	content := strings.TrimRight(source, "\n")
	tail := pipeline.Span{Start: uint(len(content)), End: uint(len(source))}
	if source[tail.Start:] == "\n" {
		return nil
	}
	return []pipeline.Edit{{Range: tail, Content: "\n"}}
}
