// Package pipeline orchestrates the front-end stages (spec.md §6 "Core
// library surface") into the single entry point an embedder actually calls.
// Grounded directly on internal/pipeline/pipeline.go's
// `Pipeline{processors}` / `Run` idiom from the teacher: a flat slice of
// stages run in order, continuing past a stage's own errors so the caller
// still gets every diagnostic collected so far, generalized here to a plain
// `Stage func(*Context) *Context` since the teacher's `Processor` interface
// and `PipelineContext` concrete type were not present in the retrieved
// copy — only call sites were (`analyzer/processor.go`, `parser/processor.go`).
package pipeline

import (
	"github.com/aster-lang/aster-core/internal/analyzer"
	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/canonicalize"
	"github.com/aster-lang/aster-core/internal/coreir"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/lexer"
	"github.com/aster-lang/aster-core/internal/lexicon"
	"github.com/aster-lang/aster-core/internal/manifest"
	"github.com/aster-lang/aster-core/internal/parser"
	"github.com/aster-lang/aster-core/internal/token"
)

// Context threads state through the pipeline stages. Any stage can stop the
// remaining stages by leaving Fatal set; Run still returns what was
// produced so far plus every diagnostic collected.
type Context struct {
	File    string
	Source  string
	Lexicon *lexicon.Lexicon

	Canonical string
	Tokens    []token.Token
	AST       *ast.Module
	Core      *coreir.Module

	CapabilityManifest *manifest.CapabilityManifest
	EffectConfig       *analyzer.EffectConfig
	StrictPii          bool

	Diagnostics []diagnostics.Diagnostic
	Fatal       bool
}

// Stage is one pipeline step; it reads/writes Context fields and returns
// the (possibly same) Context for the next stage.
type Stage func(*Context) *Context

// Pipeline is an ordered sequence of Stages.
type Pipeline struct {
	stages []Stage
}

// New builds a Pipeline from the given stages, run in order.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order. Stages continue to run even after a
// prior stage reports Fatal, unless the stage itself checks ctx.Fatal and
// chooses to skip (matching the teacher's "continue on errors to collect
// diagnostics from all stages" comment).
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		ctx = stage(ctx)
	}
	return ctx
}

func (ctx *Context) lex() *lexicon.Lexicon {
	if ctx.Lexicon != nil {
		return ctx.Lexicon
	}
	return lexicon.English()
}

// CanonicalizeStage runs Component B.
func CanonicalizeStage(ctx *Context) *Context {
	ctx.Canonical = canonicalize.Canonicalize(ctx.Source, canonicalize.Options{Lexicon: ctx.lex()})
	return ctx
}

// LexStage runs Component C. Lex errors are fatal (spec.md §7): the caller
// still receives every diagnostic produced up to this point.
func LexStage(ctx *Context) *Context {
	if ctx.Fatal {
		return ctx
	}
	toks, diags := lexer.Lex(ctx.Canonical)
	ctx.Tokens = toks
	ctx.Diagnostics = append(ctx.Diagnostics, diags...)
	if diagnostics.HasErrors(diags) {
		ctx.Fatal = true
	}
	return ctx
}

// ParseStage runs Components D and E: keyword translation back to the
// canonical English vocabulary (Component D) happens inside
// parser.ParseWithLexicon before the module is actually parsed. Parse
// errors are fatal.
func ParseStage(ctx *Context) *Context {
	if ctx.Fatal {
		return ctx
	}
	mod, diags := parser.ParseWithLexicon(ctx.Tokens, ctx.lex())
	ctx.Diagnostics = append(ctx.Diagnostics, diags...)
	if diagnostics.HasErrors(diags) {
		ctx.Fatal = true
		return ctx
	}
	ctx.AST = mod
	return ctx
}

// LowerStage runs Component G.
func LowerStage(ctx *Context) *Context {
	if ctx.Fatal || ctx.AST == nil {
		return ctx
	}
	core, diags := coreir.Lower(ctx.AST, ctx.File)
	ctx.Diagnostics = append(ctx.Diagnostics, diags...)
	ctx.Core = core
	return ctx
}

// AnalyzeStage runs Components H and I over the lowered Core IR. Unlike
// the lex/parse stages, analyzer errors never set Fatal: spec.md §7 treats
// semantic/PII/manifest diagnostics as non-fatal.
func AnalyzeStage(ctx *Context) *Context {
	if ctx.Core == nil {
		return ctx
	}
	ctx.Diagnostics = append(ctx.Diagnostics, analyzer.AnalyzeEffects(ctx.Core, ctx.CapabilityManifest, ctx.EffectConfig)...)
	ctx.Diagnostics = append(ctx.Diagnostics, analyzer.AnalyzePiiFlow(ctx.Core, nil, ctx.StrictPii)...)
	return ctx
}

// Default builds the standard canonicalize -> lex -> parse (incl.
// translate) -> lower -> analyze pipeline (spec.md §2 overview order).
func Default() *Pipeline {
	return New(CanonicalizeStage, LexStage, ParseStage, LowerStage, AnalyzeStage)
}
