// Package pkg provides lexical SQL anti-pattern detection for Go applications.
//
// sqlcheck matches normalized statement text against an ordered catalog of
// rules. No database connection or full parse is needed, so any dialect can
// be checked.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - reviewer: High-level API for reviewing scripts (recommended starting point)
//   - advisor: Rule definitions, match policies and the evaluator
//   - rules: The built-in catalog of anti-pattern rules
//   - statement: Statement normalization, DDL detection and table name extraction
//   - splitter: Dialect-aware splitting of scripts into statements
//   - config: Severity floor, enabled categories and thresholds
//   - report: Text, JSON and YAML rendering of results
//   - types: Severity, Category and Position
//   - logger: Logging abstraction layer
//
// # Getting Started
//
// For most use cases, start with the reviewer package:
//
//	r, err := reviewer.New(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := r.Review(context.Background(), sqlStatements)
//	// Process results...
//
// # Rule Categories
//
// Logical Database Design: multi-valued attributes, recursive dependencies,
// primary and foreign keys, generic primary keys, entity-attribute-value
// tables, metadata tribbles.
//
// Physical Database Design: imprecise data types, values in definitions,
// external files, index counts, index attribute order.
//
// Query: SELECT *, NULL usage, string concatenation, GROUP BY, ORDER BY
// RAND(), pattern matching, spaghetti queries, JOIN and DISTINCT counts,
// implicit columns, HAVING, nested subqueries, OR and UNION usage.
//
// Application: readable passwords.
//
// # Configuration
//
// Configuration can be loaded from YAML/JSON files or built programmatically:
//
//	cfg, err := config.New(config.WithRiskLevel(2), config.WithThreshold(config.JoinCountThreshold, 3))
//	r, err := reviewer.New(cfg)
//
//	if err := r.WithConfig("sqlcheck.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// Result filtering:
//
//	errors := result.FilterBySeverity(types.SeverityError)
//	queries := result.FilterByCategory(types.CategoryQuery)
//
// # Custom Rules
//
// Rules are plain values. A custom catalog replaces the built-in one:
//
//	custom := &advisor.Rule{
//	    ID:       "TruncateTable",
//	    Title:    "TRUNCATE TABLE",
//	    Category: types.CategoryQuery,
//	    Severity: types.SeverityWarning,
//	    Pattern:  regexp.MustCompile(`truncate\s+table`),
//	    Policy:   advisor.Any(),
//	}
//	r, err := reviewer.New(nil, reviewer.WithCatalog(append(rules.Catalog(), custom)))
//
// # Thread Safety
//
// The catalog is immutable and a built Reviewer is safe for concurrent use.
// WithWorkers shards statements over goroutines; the output is identical to
// a sequential run.
//
// # Error Handling
//
// Invalid configuration is rejected when it is built or loaded, wrapping
// config.ErrInvalidOption. A rule that panics is logged and produces no
// finding. Review returns an error only when its context is cancelled.
package pkg
