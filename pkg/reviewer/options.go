package reviewer

import (
	"github.com/pkg/errors"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/logger"
	"github.com/nsxbet/sqlcheck/pkg/splitter"
)

// Option is a functional option for customizing a Reviewer.
type Option func(*Reviewer) error

// WithWorkers shards statements over n goroutines. Output is identical to
// the sequential run. Values below 1 are rejected.
//
// Example:
//
//	r, err := reviewer.New(cfg, reviewer.WithWorkers(runtime.NumCPU()))
func WithWorkers(n int) Option {
	return func(r *Reviewer) error {
		if n < 1 {
			return errors.Wrapf(config.ErrInvalidOption, "workers: must be at least 1, got %d", n)
		}
		r.workers = n
		return nil
	}
}

// WithDialect selects how scripts are split into statements.
func WithDialect(dialect splitter.Dialect) Option {
	return func(r *Reviewer) error {
		switch dialect {
		case splitter.DialectGeneric, splitter.DialectMySQL, splitter.DialectPostgres:
			r.dialect = dialect
			return nil
		default:
			return errors.Wrapf(config.ErrInvalidOption, "dialect: unsupported value %q", string(dialect))
		}
	}
}

// WithDelimiter sets the statement delimiter. The default is ";".
func WithDelimiter(delimiter string) Option {
	return func(r *Reviewer) error {
		if delimiter == "" {
			return errors.Wrap(config.ErrInvalidOption, "delimiter: must not be empty")
		}
		r.delimiter = delimiter
		return nil
	}
}

// WithCatalog replaces the built-in rules. Rules run in the given order.
//
// Example:
//
//	r, err := reviewer.New(cfg, reviewer.WithCatalog(rules.ByCategory(types.CategoryLogical)))
func WithCatalog(catalog []*advisor.Rule) Option {
	return func(r *Reviewer) error {
		for _, rule := range catalog {
			if rule == nil {
				return errors.Wrap(config.ErrInvalidOption, "catalog: nil rule")
			}
			if err := rule.Validate(); err != nil {
				return errors.Wrap(config.ErrInvalidOption, err.Error())
			}
		}
		r.rules = append([]*advisor.Rule(nil), catalog...)
		return nil
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l logger.Interface) Option {
	return func(r *Reviewer) error {
		if l == nil {
			l = logger.Discard()
		}
		r.logger = l
		return nil
	}
}
