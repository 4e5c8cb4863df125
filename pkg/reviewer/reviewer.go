// Package reviewer provides a high-level API for SQL anti-pattern review.
//
// A Reviewer splits a script into statements, runs every statement through
// the rule catalog, and collects the findings in input order.
//
// # Quick Start
//
//	r, err := reviewer.New(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Review(context.Background(), "SELECT * FROM users;")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Found %d issues\n", result.Summary.Total)
//	for _, f := range result.Findings() {
//	    fmt.Printf("[%s] %s\n", f.Rule.Severity, f.Rule.Title)
//	}
//
// # Using Custom Configuration
//
//	cfg, err := config.New(config.WithRiskLevel(2), config.WithoutCategories("query"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := reviewer.New(cfg, reviewer.WithDialect(splitter.DialectMySQL), reviewer.WithWorkers(4))
package reviewer

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/logger"
	"github.com/nsxbet/sqlcheck/pkg/rules"
	"github.com/nsxbet/sqlcheck/pkg/splitter"
	"github.com/nsxbet/sqlcheck/pkg/statement"
)

// Reviewer runs the rule catalog over SQL statements.
//
// Reviewer is safe for concurrent use by multiple goroutines once built.
// WithConfig and WithConfigObject must not race with Review or Run.
type Reviewer struct {
	config    *config.Config
	rules     []*advisor.Rule
	dialect   splitter.Dialect
	delimiter string
	workers   int
	logger    logger.Interface
}

// New creates a Reviewer using cfg, or the default configuration when cfg
// is nil. The configuration is validated.
func New(cfg *config.Config, opts ...Option) (*Reviewer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Reviewer{
		config:    cfg,
		rules:     rules.Catalog(),
		dialect:   splitter.DialectGeneric,
		delimiter: splitter.DefaultDelimiter,
		workers:   1,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// WithConfig loads configuration from a YAML or JSON file.
// This replaces the current configuration.
func (r *Reviewer) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to load config from %s", filename)
	}
	r.config = cfg
	return nil
}

// WithConfigObject sets a configuration object directly. A nil cfg restores
// the default configuration.
//
// Returns the Reviewer for method chaining.
func (r *Reviewer) WithConfigObject(cfg *config.Config) *Reviewer {
	if cfg == nil {
		cfg = config.Default()
	}
	r.config = cfg
	return r
}

// Config returns the configuration in use.
func (r *Reviewer) Config() *config.Config {
	return r.config
}

// Rules returns the rules evaluated, in order.
func (r *Reviewer) Rules() []*advisor.Rule {
	return append([]*advisor.Rule(nil), r.rules...)
}

// Review splits sql into statements and runs every statement through the
// catalog.
//
// The context parameter supports cancellation. When it is cancelled the
// result holds the findings of the statements completed before the first
// unfinished one, and the context error is returned alongside it.
func (r *Reviewer) Review(ctx context.Context, sql string) (*ReviewResult, error) {
	pieces := splitter.Split(sql, r.dialect, r.delimiter)
	statements := make([]*statement.Statement, 0, len(pieces))
	for _, piece := range pieces {
		statements = append(statements, statement.NewAt(piece.Text, piece.Start))
	}
	return r.ReviewStatements(ctx, statements)
}

// ReviewStatements is Review for statements that are already split.
func (r *Reviewer) ReviewStatements(ctx context.Context, statements []*statement.Statement) (*ReviewResult, error) {
	entries, err := r.Run(ctx, statements)
	return newReviewResult(len(statements), entries), err
}

// Run evaluates statements and returns their entries in input order. A
// statement with findings contributes a statement entry, unless printing
// the offending statement is disabled, followed by one entry per finding in
// catalog order. A statement without findings contributes nothing.
func (r *Reviewer) Run(ctx context.Context, statements []*statement.Statement) ([]Entry, error) {
	if r.workers <= 1 || len(statements) <= 1 {
		return r.runSequential(ctx, statements)
	}
	return r.runParallel(ctx, statements)
}

func (r *Reviewer) runSequential(ctx context.Context, statements []*statement.Statement) ([]Entry, error) {
	var entries []Entry
	for _, stmt := range statements {
		select {
		case <-ctx.Done():
			return entries, ctx.Err()
		default:
		}
		entries = append(entries, r.check(stmt)...)
	}
	r.logger.Debug("reviewed statements", "statements", len(statements), "entries", len(entries))
	return entries, nil
}

func (r *Reviewer) runParallel(ctx context.Context, statements []*statement.Statement) ([]Entry, error) {
	slots := make([][]Entry, len(statements))
	done := make([]bool, len(statements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, stmt := range statements {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = r.check(stmt)
			done[i] = true
			return nil
		})
	}
	waitErr := g.Wait()

	var entries []Entry
	for i := range slots {
		if !done[i] {
			break
		}
		entries = append(entries, slots[i]...)
	}

	if err := ctx.Err(); err != nil {
		return entries, err
	}
	if waitErr != nil {
		return entries, waitErr
	}
	r.logger.Debug("reviewed statements", "statements", len(statements), "entries", len(entries), "workers", r.workers)
	return entries, nil
}

func (r *Reviewer) check(stmt *statement.Statement) []Entry {
	var entries []Entry
	for _, rule := range r.rules {
		finding, ok := advisor.Evaluate(r.config, stmt, rule)
		if !ok {
			continue
		}
		if entries == nil && r.config.PrintOffendingStatement {
			entries = append(entries, Entry{Kind: EntryStatement, Statement: stmt})
		}
		entries = append(entries, Entry{Kind: EntryFinding, Statement: stmt, Finding: finding})
	}
	return entries
}
