package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kraklabs/dook/internal/config"
	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
	"github.com/kraklabs/dook/internal/mainsearch"
	"github.com/kraklabs/dook/internal/outputs"
	"github.com/kraklabs/dook/internal/querycompiler"
)

// flags mirrors every CLI switch dook accepts, populated directly by
// cobra/pflag before run is called.
type flags struct {
	pattern string

	configPath string
	stdin      bool
	offline    bool
	color      string
	paging     string
	wrap       string
	chopLong   bool
	download   string
	plain      int
	recurse    bool
	dump       string
	onlyNames  bool
	ignoreCase int
	verbose    int
}

func run(ctx context.Context, stdout io.Writer, f *flags) error {
	isTerm := isTerminalStdout()

	colorLevel, err := parseEnablement(f.color)
	if err != nil {
		return err
	}

	pagingLevel, err := parseEnablement(f.paging)
	if err != nil {
		return err
	}

	wrapMode, err := parseWrapMode(f.wrap, f.chopLong)
	if err != nil {
		return err
	}

	useColor := resolveColor(colorLevel, isTerm)

	cols, hasCols := terminalSize()

	outOpts := outputs.Options{
		Wrap:     wrapMode,
		Plain:    f.plain,
		UseColor: useColor,
	}
	if hasCols {
		outOpts.TerminalCols = cols
	}

	policyPath, err := downloadsPolicyPath()
	if err != nil {
		return fmt.Errorf("locate downloads policy: %w", err)
	}

	persistedPolicy, err := downloadpolicy.Load(policyPath)
	if err != nil {
		return err
	}

	downloadsPolicy := resolveDownloadPolicy(f.offline, f.download, persistedPolicy, isTerm)

	enablePaging := resolvePaging(pagingLevel, f.plain, isTerm, downloadsPolicy)

	var activePager *pagerProcess
	if enablePaging {
		activePager, err = startPager(wrapMode)
		if err == nil {
			stdout = activePager
		}
	}

	logger := newLogger(f.verbose, stdout, enablePaging && downloadsPolicy != downloadpolicy.Ask)

	if activePager != nil {
		defer func() {
			maybeWarnPagingVsDownloads(logger, enablePaging, downloadsPolicy, policyPath)
			activePager.stop()
		}()
	} else {
		defer maybeWarnPagingVsDownloads(logger, enablePaging, downloadsPolicy, policyPath)
	}

	resolvedConfig, err := loadResolvedConfig(f.configPath)
	if err != nil {
		return err
	}

	sourcesDir, libDir, err := parserCacheDirs()
	if err != nil {
		return fmt.Errorf("resolve parser cache dir: %w", err)
	}

	ld := loader.New(sourcesDir, libDir, downloadsPolicy, nil)
	qc := querycompiler.New(ld, resolvedConfig)

	if f.dump != "" {
		return runDump(ctx, stdout, qc, f.dump, useColor)
	}

	if f.pattern == "" {
		return fmt.Errorf("pattern is required unless using --dump")
	}

	rawPattern := f.pattern
	if f.ignoreCase >= 2 {
		recased, err := uncase(rawPattern)
		if err != nil {
			return err
		}

		rawPattern = recased
	}

	var stdinFile *inputs.LoadedFile
	if f.stdin {
		stdinFile, err = inputs.LoadStdin(os.Stdin)
		if err != nil {
			return err
		}

		logger.Debug("loaded stdin", "language", stdinFile.Language)
	}

	seenNames := make(map[string]bool)

	emit := func(o mainsearch.FileOutcome) error {
		return emitOutcome(ctx, stdout, o, f.onlyNames, seenNames, outOpts)
	}

	runParams := mainsearch.RunParams{
		RawPattern: rawPattern,
		IgnoreCase: f.ignoreCase,
		Recurse:    f.recurse,
		OnlyNames:  f.onlyNames,
		UseStdin:   f.stdin,
		Root:       ".",
	}

	err = mainsearch.Run(ctx, logger, qc, mainsearch.GrepCandidates, stdinFile, runParams, emit)
	if outputs.IsBrokenPipe(err) {
		return &brokenPipeError{}
	}

	return err
}

// brokenPipeError signals cmd/dook's top-level handler to exit 141
// quietly instead of printing a stack of wrapped errors.
type brokenPipeError struct{}

func (*brokenPipeError) Error() string { return "broken pipe" }

func emitOutcome(ctx context.Context, w io.Writer, o mainsearch.FileOutcome, onlyNames bool, seenNames map[string]bool, opts outputs.Options) error {
	if onlyNames {
		for _, name := range o.Results.MatchedNames {
			if seenNames[name] {
				continue
			}

			seenNames[name] = true

			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}

		return nil
	}

	if o.Results.Ranges.IsEmpty() {
		return nil
	}

	label := o.Path
	if label == "" {
		label = "stdin"
	}

	recipeName := ""
	languageHint := ""

	if o.Path == "" && o.File != nil {
		recipeName = o.File.Recipe
		languageHint = string(o.File.Language)
	}

	var content []byte
	if o.File != nil {
		content = o.File.Bytes
	}

	return outputs.WriteRanges(ctx, w, o.Path, label, recipeName, languageHint, content, o.Results.Ranges, opts)
}

// loadResolvedConfig layers a user config (if any) over the embedded
// default and resolves every language's `extends` chain.
func loadResolvedConfig(explicitPath string) (map[langname.Name]config.LanguageConfig, error) {
	userConfig, err := config.LoadFile(explicitPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	merged := config.Default()
	if userConfig != nil {
		merged = config.Merge(merged, userConfig)
	}

	resolved, err := merged.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}

	return resolved, nil
}

func newLogger(verbose int, stdout io.Writer, toStdout bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose >= 1 {
		level = slog.LevelDebug
	}

	target := io.Writer(os.Stderr)
	if toStdout {
		target = stdout
	}

	return slog.New(slog.NewTextHandler(target, &slog.HandlerOptions{Level: level}))
}

func maybeWarnPagingVsDownloads(logger *slog.Logger, enablePaging bool, policy downloadpolicy.Policy, policyPath string) {
	if enablePaging && policy == downloadpolicy.Ask {
		logger.Warn("paging was disabled so we could ask to download new parsers if the need arose; " +
			"to enable paging, use --download=yes or --download=no, or write yes/no to " + policyPath)
	}
}
