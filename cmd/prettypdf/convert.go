package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	prettypdf "github.com/prettypdf/go-prettypdf"
	"github.com/prettypdf/go-prettypdf/internal/config"
	"github.com/prettypdf/go-prettypdf/internal/fileutil"
	"github.com/prettypdf/go-prettypdf/internal/frontmatter"
	"github.com/prettypdf/go-prettypdf/internal/pipeline"
	"github.com/prettypdf/go-prettypdf/internal/style"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidExtension       = errors.New("input must have .md or .markdown extension")
	ErrInvalidOutputExtension = errors.New("invalid output extension")
	ErrInvalidTimeout         = errors.New("invalid timeout")
	ErrWriteOutput            = errors.New("failed to write output file")
)

// Defaults when neither flags nor config name a file.
const (
	defaultInput  = "input.md"
	defaultOutput = "output.pdf"
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// Converter is the interface for the conversion backend.
type Converter interface {
	Convert(ctx context.Context, input prettypdf.Input) (*prettypdf.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*prettypdf.Converter)(nil)

// runConvert loads the configuration, composes every input into one
// document and writes the result.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment, logger *slog.Logger) error {
	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// CLI flags win over the config file.
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, env, cfg)
	if err != nil {
		return err
	}

	inputs, err := resolveInputs(args, cfg)
	if err != nil {
		return err
	}

	if flags.outputMode.dumpMetadata {
		delimiter, err := resolveDelimiter(cfg)
		if err != nil {
			return err
		}
		return dumpMetadata(env.Stdout, inputs, delimiter, logger)
	}

	htmlOnly := flags.outputMode.htmlOnly
	outPath, err := resolveOutputPath(flags.output, cfg, htmlOnly)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg, timeout, env, logger)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			logger.Warn("closing converter", "error", err)
		}
	}()

	logger.Debug("converting", "inputs", len(inputs), "output", outPath)
	start := env.Now()

	result, err := conv.Convert(ctx, buildInput(inputs, cfg, htmlOnly))
	if err != nil {
		return err
	}

	if err := writeOutputs(result, outPath, htmlOnly, cfg.Output.KeepHTML); err != nil {
		return err
	}

	if !flags.common.quiet {
		printResult(env, outPath, len(inputs), env.Now().Sub(start), flags.common.verbose)
	}
	return nil
}

// loadConfig reads the config named by --config, then PRETTYPDF_CONFIG.
// Without either, defaults are used.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	if name == "" {
		name = env.Getenv(envConfig)
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Set flags override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.outputMode.html {
		cfg.Output.KeepHTML = true
	}

	// Assets
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Template.Name = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.rules != "" {
		cfg.Style.RulesFile = flags.assets.rules
	}
	if flags.assets.replaceRules {
		cfg.Style.ReplaceRules = true
	}

	// Parser
	if flags.parser.noTables {
		cfg.Parser.Tables = false
	}
	if flags.parser.smart {
		cfg.Parser.SmartPunctuation = true
	}
	if flags.parser.noHighlight {
		cfg.Parser.Highlight = false
	}
	if flags.parser.highlightStyle != "" {
		cfg.Parser.HighlightStyle = flags.parser.highlightStyle
	}
	if flags.parser.delimiter != "" {
		cfg.Parser.Delimiter = flags.parser.delimiter
	}

	// Page
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Footer
	if flags.footer.enabled || flags.footer.text != "" || flags.footer.pageNumber || flags.footer.position != "" {
		cfg.Footer.Enabled = true
	}
	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
	}

	if flags.toc {
		cfg.TOC.Force = true
	}
	if flags.inline.strict {
		cfg.Inline.Strict = true
	}
	if flags.inline.markFailed {
		cfg.Inline.MarkFailures = true
	}
}

// resolveTimeout picks the timeout from --timeout, PRETTYPDF_TIMEOUT, then
// the config file. Zero means the converter default.
func resolveTimeout(flagValue string, env *Environment, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout("--timeout", flagValue)
	}
	if v := env.Getenv(envTimeout); v != "" {
		return parseTimeout(envTimeout, v)
	}
	return time.Duration(cfg.Timeout), nil
}

func parseTimeout(source, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidTimeout, source, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s %q must be positive", ErrInvalidTimeout, source, value)
	}
	return d, nil
}

// resolveInputs expands positional arguments, falling back to the config's
// input paths and then to input.md. Every file must be markdown.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		args = cfg.Input.Paths
	}
	if len(args) == 0 {
		args = []string{defaultInput}
	}

	files, err := fileutil.ExpandInputs(args)
	if err != nil {
		return nil, fmt.Errorf("reading inputs: %w", err)
	}
	for _, f := range files {
		if !fileutil.IsMarkdown(f) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, f)
		}
	}
	return files, nil
}

// resolveOutputPath validates the output extension. In HTML-only mode the
// default .pdf name becomes .html.
func resolveOutputPath(flagOutput string, cfg *config.Config, htmlOnly bool) (string, error) {
	path := cfg.Output.Path
	if path == "" {
		path = defaultOutput
	}

	if htmlOnly {
		if flagOutput == "" && fileutil.HasExtension(path, ".pdf") {
			path = fileutil.ReplaceExtension(path, ".html")
		}
		if !fileutil.HasExtension(path, ".html", ".htm") {
			return "", fmt.Errorf("%w: %s (must end in .html with --html-only)", ErrInvalidOutputExtension, path)
		}
		return path, nil
	}

	if !fileutil.HasExtension(path, ".pdf") {
		return "", fmt.Errorf("%w: %s (must end in .pdf)", ErrInvalidOutputExtension, path)
	}
	return path, nil
}

// buildOptions turns the merged config into converter options.
func buildOptions(cfg *config.Config, timeout time.Duration, env *Environment, logger *slog.Logger) ([]prettypdf.Option, error) {
	delimiter, err := resolveDelimiter(cfg)
	if err != nil {
		return nil, err
	}

	opts := []prettypdf.Option{
		prettypdf.WithAssetPath(cfg.Assets.BasePath),
		prettypdf.WithParserConfig(pipeline.Config{
			Tables:           cfg.Parser.Tables,
			SmartPunctuation: cfg.Parser.SmartPunctuation,
			Highlight:        cfg.Parser.Highlight,
			HighlightStyle:   cfg.Parser.HighlightStyle,
		}),
		prettypdf.WithDelimiter(delimiter),
		prettypdf.WithLogger(logger),
		prettypdf.WithClock(env.Now),
		prettypdf.WithStrictAssets(cfg.Inline.Strict),
		prettypdf.WithMarkFailedAssets(cfg.Inline.MarkFailures),
	}
	if cfg.Style.Name != "" {
		opts = append(opts, prettypdf.WithStyle(cfg.Style.Name))
	}
	if cfg.Template.Name != "" {
		opts = append(opts, prettypdf.WithTemplate(cfg.Template.Name))
	}
	if timeout > 0 {
		opts = append(opts, prettypdf.WithTimeout(timeout))
	}

	if cfg.Style.RulesFile != "" {
		rules, err := style.LoadRules(cfg.Style.RulesFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("rules loaded", "file", cfg.Style.RulesFile, "count", len(rules), "replace", cfg.Style.ReplaceRules)
		opts = append(opts, prettypdf.WithRules(rules, cfg.Style.ReplaceRules))
	}
	return opts, nil
}

// resolveDelimiter returns the configured metadata fence character.
func resolveDelimiter(cfg *config.Config) (rune, error) {
	if cfg.Parser.Delimiter == "" {
		return frontmatter.DefaultDelimiter, nil
	}
	return config.DelimiterRune(cfg.Parser.Delimiter)
}

// buildInput assembles the conversion input. Blank page fields fall back to
// the defaults.
func buildInput(files []string, cfg *config.Config, htmlOnly bool) prettypdf.Input {
	sources := make([]prettypdf.Source, len(files))
	for i, f := range files {
		sources[i] = prettypdf.Source{Path: f}
	}

	page := prettypdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}

	input := prettypdf.Input{
		Sources:  sources,
		Page:     page,
		ForceTOC: cfg.TOC.Force,
		HTMLOnly: htmlOnly,
	}
	if cfg.Footer.Enabled {
		input.Footer = &prettypdf.Footer{
			Position:       cfg.Footer.Position,
			ShowPageNumber: cfg.Footer.ShowPageNumber,
			Text:           cfg.Footer.Text,
		}
	}
	return input
}

// writeOutputs writes the PDF, or the HTML in HTML-only mode. With keepHTML
// the HTML is also written next to the PDF.
func writeOutputs(result *prettypdf.ConvertResult, outPath string, htmlOnly, keepHTML bool) error {
	if htmlOnly {
		return writeFile(outPath, result.HTML)
	}
	if err := writeFile(outPath, result.PDF); err != nil {
		return err
	}
	if keepHTML {
		return writeFile(fileutil.ReplaceExtension(outPath, ".html"), result.HTML)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// printResult reports the written file.
func printResult(env *Environment, outPath string, inputs int, elapsed time.Duration, verbose bool) {
	if verbose {
		fmt.Fprintf(env.Stdout, "Created %s from %d file(s) (%v)\n", outPath, inputs, elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
}
