package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/logger"
	"github.com/nsxbet/sqlcheck/pkg/report"
	"github.com/nsxbet/sqlcheck/pkg/reviewer"
	"github.com/nsxbet/sqlcheck/pkg/splitter"
)

const stdinName = "-"

var checkCmd = &cobra.Command{
	Use:   "check [flags] [sql-file...]",
	Short: "Check SQL statements for anti-patterns",
	Long: `Check SQL statements in one or more files for anti-patterns.

With no file, or with "-", statements are read from standard input. Every
statement that triggers a rule is printed followed by its findings, and a
summary closes the report.`,
	Example: `  sqlcheck check schema.sql
  cat query.sql | sqlcheck check -r 3
  sqlcheck check --dialect mysql --output json migrations/*.sql`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

var thresholdFlags = map[string]config.Threshold{
	"index-count":      config.IndexCountThreshold,
	"join-count":       config.JoinCountThreshold,
	"distinct-count":   config.DistinctCountThreshold,
	"nesting":          config.NestingThreshold,
	"spaghetti-length": config.SpaghettiLengthThreshold,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Flags for check command
	checkCmd.Flags().StringP("config-file", "f", "", "path to a YAML or JSON check configuration")
	checkCmd.Flags().IntP("risk-level", "r", 0, "risk level: 1 all anti-patterns, 2 medium and high risk, 3 only high risk")
	checkCmd.Flags().String("min-severity", "", "minimum severity to report (info, warn, error)")
	checkCmd.Flags().StringSlice("categories", nil, "categories to check (logical, physical, query, application)")
	checkCmd.Flags().StringSlice("disable-category", nil, "categories to skip")
	checkCmd.Flags().Bool("no-statement", false, "do not print the offending statement")
	checkCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	checkCmd.Flags().StringP("color", "c", "auto", "color mode for text output (auto, always, never)")
	checkCmd.Flags().String("dialect", string(splitter.DialectGeneric), "statement splitting dialect (generic, mysql, postgres)")
	checkCmd.Flags().StringP("delimiter", "d", splitter.DefaultDelimiter, "statement delimiter")
	checkCmd.Flags().Int("workers", 1, "number of goroutines reviewing statements and files")
	checkCmd.Flags().Int("index-count", 0, "index count that triggers Too Many Indexes (0 keeps the configured value)")
	checkCmd.Flags().Int("join-count", 0, "join count that triggers Reduce Number of JOINs (0 keeps the configured value)")
	checkCmd.Flags().Int("distinct-count", 0, "distinct count that triggers Eliminate Unnecessary DISTINCT (0 keeps the configured value)")
	checkCmd.Flags().Int("nesting", 0, "nested select count that triggers Nested Subqueries (0 keeps the configured value)")
	checkCmd.Flags().Int("spaghetti-length", 0, "statement length that triggers Spaghetti Query Alert (0 keeps the configured value)")
	checkCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if high risk anti-patterns are found")
	checkCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if medium risk anti-patterns are found")

	// Bind flags to viper
	checkCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})
}

// checkOptions carries the resolved check flags.
type checkOptions struct {
	ConfigFile        string
	RiskLevel         int
	MinSeverity       string
	Categories        []string
	DisableCategories []string
	NoStatement       bool
	Verbose           bool
	Output            string
	Color             string
	Dialect           string
	Delimiter         string
	Workers           int
	Thresholds        map[config.Threshold]int
	FailOnError       bool
	FailOnWarning     bool
}

func checkOptionsFromViper() checkOptions {
	opts := checkOptions{
		ConfigFile:        viper.GetString("config-file"),
		RiskLevel:         viper.GetInt("risk-level"),
		MinSeverity:       viper.GetString("min-severity"),
		Categories:        viper.GetStringSlice("categories"),
		DisableCategories: viper.GetStringSlice("disable-category"),
		NoStatement:       viper.GetBool("no-statement"),
		Verbose:           viper.GetBool("verbose"),
		Output:            viper.GetString("output"),
		Color:             viper.GetString("color"),
		Dialect:           viper.GetString("dialect"),
		Delimiter:         viper.GetString("delimiter"),
		Workers:           viper.GetInt("workers"),
		Thresholds:        make(map[config.Threshold]int),
		FailOnError:       viper.GetBool("fail-on-error"),
		FailOnWarning:     viper.GetBool("fail-on-warning"),
	}
	for name, t := range thresholdFlags {
		if v := viper.GetInt(name); v != 0 {
			opts.Thresholds[t] = v
		}
	}
	return opts
}

func runCheck(cmd *cobra.Command, args []string) error {
	slog.Debug("Starting check command", "args", args)
	opts := checkOptionsFromViper()

	summary, err := check(cmd.Context(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if opts.FailOnError && summary.Errors > 0 {
		return errors.Errorf("found %d high risk anti-pattern(s)", summary.Errors)
	}
	if opts.FailOnWarning && summary.Warnings > 0 {
		return errors.Errorf("found %d medium risk anti-pattern(s)", summary.Warnings)
	}
	return nil
}

// check reviews every input and writes the report to stdout.
func check(ctx context.Context, opts checkOptions, paths []string, stdin io.Reader, stdout io.Writer) (reviewer.Summary, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return reviewer.Summary{}, err
	}

	format, err := report.ParseFormat(opts.Output)
	if err != nil {
		return reviewer.Summary{}, err
	}
	color, err := report.ParseColorMode(opts.Color)
	if err != nil {
		return reviewer.Summary{}, err
	}
	dialect, err := splitter.ParseDialect(opts.Dialect)
	if err != nil {
		return reviewer.Summary{}, errors.Wrap(config.ErrInvalidOption, err.Error())
	}

	r, err := reviewer.New(cfg,
		reviewer.WithDialect(dialect),
		reviewer.WithDelimiter(opts.Delimiter),
		reviewer.WithWorkers(max(opts.Workers, 1)),
		reviewer.WithLogger(slog.Default()),
	)
	if err != nil {
		return reviewer.Summary{}, err
	}

	if len(paths) == 0 {
		paths = []string{stdinName}
	}

	// Files are read and reviewed concurrently; results keep argument order.
	mapper := iter.Mapper[string, report.Source]{MaxGoroutines: max(opts.Workers, 1)}
	sources, err := mapper.MapErr(paths, func(path *string) (report.Source, error) {
		name, content, err := readInput(*path, stdin)
		if err != nil {
			return report.Source{}, err
		}
		result, err := r.Review(ctx, content)
		if err != nil {
			return report.Source{}, errors.Wrapf(err, "failed to review %s", name)
		}
		slog.Info("Reviewed input", "file", name, "statements", result.Summary.Statements, "findings", result.Summary.Total)
		return report.Source{Name: name, Result: result}, nil
	})
	if err != nil {
		return reviewer.Summary{}, err
	}

	if err := report.Write(stdout, sources, report.Options{
		Format:          format,
		Verbose:         opts.Verbose,
		Color:           color,
		MinimumSeverity: cfg.MinimumSeverity,
	}); err != nil {
		return reviewer.Summary{}, err
	}
	return report.Total(sources), nil
}

// buildConfig loads the configuration file, if any, and applies the flags
// on top of it.
func buildConfig(opts checkOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.LoadFromFile(opts.ConfigFile)
		if err != nil {
			slog.Error("failed to load configuration", logger.Error(err))
			return nil, err
		}
		cfg = loaded
	}

	var options []config.Option
	if opts.RiskLevel != 0 {
		options = append(options, config.WithRiskLevel(opts.RiskLevel))
	}
	if opts.MinSeverity != "" {
		options = append(options, config.WithMinimumSeverity(opts.MinSeverity))
	}
	if len(opts.Categories) > 0 {
		options = append(options, config.WithCategories(opts.Categories...))
	}
	if len(opts.DisableCategories) > 0 {
		options = append(options, config.WithoutCategories(opts.DisableCategories...))
	}
	if opts.NoStatement {
		options = append(options, config.WithPrintOffendingStatement(false))
	}
	for t, v := range opts.Thresholds {
		options = append(options, config.WithThreshold(t, v))
	}

	if err := cfg.Apply(options...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readInput(path string, stdin io.Reader) (string, string, error) {
	if path == stdinName {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "failed to read standard input")
		}
		return "stdin", string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, "failed to read SQL file: %s", path)
	}
	slog.Debug("SQL file read successfully", "file", path, "size", len(content))
	return path, string(content), nil
}
