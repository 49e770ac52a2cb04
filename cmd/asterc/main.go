// Command asterc is a thin demonstration wrapper around the core compiler
// pipeline (spec.md §6: "implementers of a CLI may mirror existing
// shapes"). Grounded on cmd/funxy/main.go's argument-handling style, using
// the standard library flag package (the teacher never reaches for a CLI
// framework — see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aster-lang/aster-core/internal/analyzer"
	"github.com/aster-lang/aster-core/internal/coreir"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/lexicon"
	"github.com/aster-lang/aster-core/internal/manifest"
	"github.com/aster-lang/aster-core/internal/pipeline"
)

var (
	logger            = log.New(os.Stderr, "asterc: ", 0)
	effectConfigCache = analyzer.NewEffectConfigCache()
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: asterc emit-core [flags] <file>")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "emit-core":
		return runEmitCore(args[1:])
	case "-help", "--help", "help":
		usage()
		return 0
	default:
		usage()
		return 2
	}
}

func runEmitCore(args []string) int {
	fs := flag.NewFlagSet("emit-core", flag.ContinueOnError)
	lexiconID := fs.String("lexicon", "en", "source lexicon id the file is written in")
	manifestPath := fs.String("capability-manifest", "", "path to a §6 capability manifest (allow/deny of module.func)")
	packageManifestPath := fs.String("manifest", "", "path to the §4.J package manifest (aster.json)")
	effectConfigPath := fs.String("effect-config", "", "path to a §6 effect-config JSON document; reloaded on mtime change")
	strictPii := fs.Bool("strict-pii", false, "escalate PII diagnostics to errors")
	fs.Usage = usage
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		usage()
		return 2
	}
	file := fs.Arg(0)

	source, err := os.ReadFile(file)
	if err != nil {
		logger.Printf("reading %s: %s", file, err)
		return 2
	}

	lex := lexicon.Global().Get(*lexiconID)
	if lex == nil {
		logger.Printf("unknown lexicon %q", *lexiconID)
		return 2
	}

	ctx := &pipeline.Context{
		File:      file,
		Source:    string(source),
		Lexicon:   lex,
		StrictPii: *strictPii,
	}

	if *packageManifestPath != "" {
		if _, diags := manifest.ParseManifest(*packageManifestPath); len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d.String())
			}
		}
	}

	if *manifestPath != "" {
		cm, err := manifest.LoadCapabilityManifest(*manifestPath)
		if err != nil {
			logger.Printf("loading capability manifest: %s", err)
			return 2
		}
		ctx.CapabilityManifest = cm
	}

	if *effectConfigPath != "" {
		cfg, err := effectConfigCache.Load(*effectConfigPath)
		if err != nil {
			logger.Printf("loading effect config: %s", err)
			return 2
		}
		ctx.EffectConfig = cfg
	}

	result := pipeline.Default().Run(ctx)

	hasErr := false
	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
		hasErr = hasErr || d.Severity == diagnostics.Error
	}

	if result.Core == nil {
		return 1
	}

	data, err := coreir.Encode(result.Core, map[string]string{"file": file})
	if err != nil {
		logger.Printf("encoding core ir: %s", err)
		return 1
	}
	fmt.Println(string(data))

	if hasErr || result.Fatal {
		return 1
	}
	return 0
}
