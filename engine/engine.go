// Package engine owns the lifecycle of a source file as it moves through an
// ordered series of formatting passes. For each file it parses the source,
// runs every pass against the live (tree, source) snapshot, normalizes and
// applies the pass's edits, reparses incrementally, and summarizes the net
// effect as an Outcome.
package engine

import (
	"fmt"
	"os"

	"github.com/corey/fmtkit/parser"
	"github.com/corey/fmtkit/pipeline"
)

// Engine drives one pipeline against a set of input files. It owns its
// parser and pipeline for its lifetime; per-file state lives only within a
// single run. The engine is single-threaded; callers wanting parallelism
// instantiate independent engines per worker.
type Engine[C any] struct {
	pipeline *pipeline.Pipeline[C]
	parser   *parser.Parser
}

// New constructs an engine over the pipeline, with a parser bound to the
// provider's grammar. Panics if the grammar cannot be loaded (see
// parser.New).
func New[C any](provider parser.LanguageProvider, p *pipeline.Pipeline[C]) *Engine[C] {
	return &Engine[C]{
		pipeline: p,
		parser:   parser.New(provider),
	}
}

// Check runs the pipeline against each (codes[i], paths[i]) pair purely in
// memory and returns one outcome per input, in input order. It never writes
// to disk. Extra entries of the longer slice are ignored; paths entries may
// be empty for unnamed buffers.
func (e *Engine[C]) Check(config C, codes []string, paths []string) []Outcome {
	results := e.run(config, codes, paths)
	outcomes := make([]Outcome, len(results))
	for i, r := range results {
		outcomes[i] = r.outcome
	}
	return outcomes
}

// FormatAndWrite is Check plus persistence: every changed outcome with a
// path has its final source written to that path before returning. A failed
// write surfaces the I/O error immediately and discards the outcomes
// produced so far.
func (e *Engine[C]) FormatAndWrite(config C, codes []string, paths []string) ([]Outcome, error) {
	results := e.run(config, codes, paths)
	outcomes := make([]Outcome, len(results))
	for i, r := range results {
		if r.outcome.Changed && r.outcome.Path != "" {
			if err := os.WriteFile(r.outcome.Path, []byte(r.final), 0o644); err != nil {
				return nil, fmt.Errorf("writing %s: %w", r.outcome.Path, err)
			}
		}
		outcomes[i] = r.outcome
	}
	return outcomes, nil
}

// Close releases the engine's parser. The engine must not be used after.
func (e *Engine[C]) Close() {
	e.parser.Close()
}

// fileResult pairs an outcome with the final source it summarizes; the final
// text is needed for FormatAndWrite but is not part of the public outcome.
type fileResult struct {
	outcome Outcome
	final   string
}

func (e *Engine[C]) run(config C, codes []string, paths []string) []fileResult {
	n := len(codes)
	if len(paths) < n {
		n = len(paths)
	}
	results := make([]fileResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, e.runFile(config, codes[i], paths[i]))
	}
	return results
}

// runFile is the per-file run loop. Each pass sees a freshly reparsed tree
// over the source as mutated by every pass before it; one pass's edits are
// applied in descending start order so byte offsets of not-yet-applied edits
// stay valid against the shared pre-pass snapshot.
func (e *Engine[C]) runFile(config C, initialSource, path string) fileResult {
	state := parser.NewState(initialSource)
	defer state.Close()

	outcome := Outcome{Path: path}

	if !state.HasTree() {
		e.parser.Parse(state)
	}

	for i, pass := range e.pipeline.Passes() {
		origin := fmt.Sprintf("pass#%d", i)
		if named, ok := pass.(pipeline.NamedPass); ok && named.PassName() != "" {
			origin = named.PassName()
		}

		ctx := pipeline.NewContext(config, state.Tree().RootNode(), state.Source()).WithOrigin(origin)
		edits := pass.Run(ctx)
		outcome.Diagnostics = append(outcome.Diagnostics, ctx.Drain()...)

		if len(edits) == 0 {
			continue
		}

		sorted, conflict := normalize(edits)
		if conflict != nil {
			outcome.Diagnostics = append(outcome.Diagnostics, pipeline.Diagnostic{
				Message:  conflict.Error(),
				Severity: pipeline.SeverityError,
				Source:   origin,
			})
			continue
		}

		for j := len(sorted) - 1; j >= 0; j-- {
			e.parser.ApplyEdit(state, sorted[j].Range.Start, sorted[j].Range.End, sorted[j].Content)
		}
		e.parser.Reparse(state)
	}

	final := state.Source()
	outcome.Changed = final != initialSource
	if outcome.Changed {
		outcome.Diff = unifiedDiff(initialSource, final)
	}

	return fileResult{outcome: outcome, final: final}
}
