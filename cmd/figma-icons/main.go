package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	figmaicons "github.com/kataras/figma-icons"
	"github.com/kataras/figma-icons/pkg/codegen"
	"github.com/kataras/figma-icons/pkg/config"
	"github.com/kataras/figma-icons/pkg/figma"
	"github.com/kataras/figma-icons/pkg/formatter"
	"github.com/kataras/figma-icons/pkg/writer"
)

const version = figma.Version

var (
	errAborted  = errors.Base("aborted")
	errFailures = errors.Base("some icons could not be generated")
)

type flags struct {
	configFile  string
	outDir      string
	force       bool
	accessToken string
	reportFile  string
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailures) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "figma-icons",
		Short:         "Generate React icon components from Figma",
		Long:          "A tool to extract SVG icons from Figma files and generate TSX components, a lazy index and a lookup helper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var f flags
	iconsCmd := &cobra.Command{
		Use:   "react-icons",
		Short: "Replace the output directory with freshly generated icon components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	iconsCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Configuration file (default: first of "+strings.Join(config.FileNames, ", ")+")")
	iconsCmd.Flags().StringVarP(&f.outDir, "out", "o", "", "Output directory, overrides outDir")
	iconsCmd.Flags().BoolVarP(&f.force, "force", "f", false, "Replace the output directory without asking")
	iconsCmd.Flags().StringVarP(&f.accessToken, "token", "t", "", "Figma Personal Access Token, overrides token and "+config.TokenEnv)
	iconsCmd.Flags().StringVar(&f.reportFile, "report", "", "Write a markdown report of the run to this file")
	iconsCmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log every request and batch")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "figma-icons version %s\n", version)
		},
	}

	rootCmd.AddCommand(iconsCmd, versionCmd)
	return rootCmd
}

func run(cmd *cobra.Command, f flags) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Fprintln(out, "\n🎨 Figma Icons")
	cyan.Fprintln(out, "==============")
	cyan.Fprintln(out)

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	if cfg.Token == "" {
		if cfg.Token, err = prompt(out, in, "Figma access token: "); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("invalid configuration %s: %w", cfg.Path, err)
	}

	if !cfg.Force {
		answer, err := prompt(out, in, fmt.Sprintf("This replaces everything in %s. Continue? [y/N] ", cfg.OutDir))
		if err != nil {
			return err
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			return errAborted
		}
	}

	ctx := slogctx.NewCtx(cmd.Context(), newLogger(cmd.ErrOrStderr(), f.verbose))

	opts := figmaicons.Options{
		AccessToken: cfg.Token,
		Sources:     cfg.Sources,
		Generator: codegen.Generator{
			RootName:      cfg.RootName,
			WrapperImport: cfg.WrapperImport,
			ComponentsDir: cfg.ComponentsDir,
			Formatter:     newFormatter(cfg.Formatter),
		},
		BatchSize: cfg.BatchSize,
		Logger:    slogctx.FromCtx(ctx),
	}

	result, err := figmaicons.Run(ctx, opts)
	if err != nil {
		return err
	}

	cyan.Fprintln(out, "\n📊 Extraction Summary:")
	for _, a := range result.Assets {
		green.Fprintf(out, "  ✓ %s.%s.%s", a.PageAlias, a.Section, a.Name)
		fmt.Fprintf(out, " (%s)\n", a.FileName)
	}
	for _, d := range result.Duplicates {
		yellow.Fprintf(out, "  ⚠ skipped %s: %s\n", d.Asset.NodeID, d.Reason)
	}
	for _, fl := range result.Failures {
		red.Fprintf(out, "  ✗ %v\n", fl)
	}

	green.Fprintf(out, "\n💾 Writing to %s... ", cfg.OutDir)
	stats, err := writer.Replace(cfg.OutDir, result.Units)
	if err != nil {
		red.Fprintln(out, "✗")
		return err
	}
	green.Fprintf(out, "✓ %d files, %s\n", stats.Files, humanize.Bytes(uint64(stats.Bytes)))

	if f.reportFile != "" {
		report := formatter.ToMarkdown(result, cfg.Path)
		if err := os.WriteFile(f.reportFile, []byte(report), 0o644); err != nil {
			return errors.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "  • Report: %s\n", f.reportFile)
	}

	if err := result.Err(); err != nil {
		red.Fprintf(out, "\n%d icon(s) failed, see above\n\n", len(result.Failures))
		return errFailures
	}

	green.Fprintf(out, "\n✨ Successfully generated %d icon(s) in %s\n\n", len(result.Assets), cfg.OutDir)
	return nil
}

func loadConfig(f flags) (*config.Config, error) {
	path := f.configFile
	if path == "" {
		var err error
		if path, err = config.Find("."); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f.outDir != "" {
		cfg.OutDir = f.outDir
	}
	if f.accessToken != "" {
		cfg.Token = f.accessToken
	}
	if f.force {
		cfg.Force = true
	}
	return cfg, nil
}

func newFormatter(f config.Formatter) codegen.Formatter {
	if len(f.Command) == 0 {
		return codegen.Normalizer{}
	}
	return codegen.Command{Name: f.Command[0], Args: f.Command[1:]}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    color.NoColor,
	})
	return slog.New(slogctx.NewHandler(handler, nil))
}

func prompt(out io.Writer, in *bufio.Reader, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
