// Package advisor defines anti-pattern rules and the evaluator that runs one
// rule against one statement.
package advisor

import (
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/pkg/errors"

	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/statement"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

// PolicyKind selects how matches are turned into a verdict.
type PolicyKind int

const (
	// AnyMatch fires on the first occurrence.
	AnyMatch PolicyKind = iota
	// CountAtLeast fires once the occurrence count reaches a threshold.
	CountAtLeast
	// LengthAtLeast fires on statement length alone.
	LengthAtLeast
)

func (k PolicyKind) String() string {
	switch k {
	case AnyMatch:
		return "any"
	case CountAtLeast:
		return "count"
	case LengthAtLeast:
		return "length"
	default:
		return "unknown"
	}
}

// MatchPolicy pairs a PolicyKind with the threshold it reads from config.
type MatchPolicy struct {
	Kind      PolicyKind
	Threshold config.Threshold
}

// Any returns the AnyMatch policy.
func Any() MatchPolicy {
	return MatchPolicy{Kind: AnyMatch}
}

// Count returns a CountAtLeast policy bound to t.
func Count(t config.Threshold) MatchPolicy {
	return MatchPolicy{Kind: CountAtLeast, Threshold: t}
}

// Length returns a LengthAtLeast policy bound to t.
func Length(t config.Threshold) MatchPolicy {
	return MatchPolicy{Kind: LengthAtLeast, Threshold: t}
}

// Guard restricts a rule to statements it applies to.
type Guard func(*statement.Statement) bool

// PatternFunc builds a statement dependent pattern.
type PatternFunc func(*statement.Statement) (*regexp.Regexp, error)

// Rule is one anti-pattern detector. Rules are built once and never mutated.
type Rule struct {
	ID       string
	Code     Code
	Title    string
	Category types.Category
	Severity types.Severity
	Guard    Guard
	// Exactly one of Pattern and PatternFunc is set, except for length rules.
	Pattern     *regexp.Regexp
	PatternFunc PatternFunc
	Policy      MatchPolicy
	Message     string
}

// Finding records a rule that fired on a statement.
type Finding struct {
	Statement *statement.Statement
	Rule      *Rule
	// Count is the number of non-overlapping matches. Length rules report 1.
	Count int
	// Match is the text of the first match, empty for length rules.
	Match string
}

// Validate rejects rule definitions the evaluator cannot run.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return errors.New("advisor: rule without ID")
	}
	if r.Title == "" {
		return errors.Errorf("advisor: rule %s has no title", r.ID)
	}
	switch r.Policy.Kind {
	case LengthAtLeast:
		return nil
	case AnyMatch, CountAtLeast:
		if (r.Pattern == nil) == (r.PatternFunc == nil) {
			return errors.Errorf("advisor: rule %s needs exactly one of Pattern and PatternFunc", r.ID)
		}
		return nil
	default:
		return errors.Errorf("advisor: rule %s has unknown policy %d", r.ID, r.Policy.Kind)
	}
}

// Applies reports whether cfg enables r at all.
func (r *Rule) Applies(cfg *config.Config) bool {
	return cfg.CategoryEnabled(r.Category) && cfg.SeverityEnabled(r.Severity)
}

// Evaluate runs rule against stmt. A panicking guard or pattern factory is
// logged and treated as no finding.
func Evaluate(cfg *config.Config, stmt *statement.Statement, rule *Rule) (finding *Finding, ok bool) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			err, isErr := panicErr.(error)
			if !isErr {
				err = errors.Errorf("%v", panicErr)
			}
			slog.Error("advisor evaluate PANIC RECOVER", "rule", rule.ID, "error", err)
			finding, ok = nil, false
		}
	}()

	if !rule.Applies(cfg) {
		return nil, false
	}
	if rule.Guard != nil && !rule.Guard(stmt) {
		return nil, false
	}

	if rule.Policy.Kind == LengthAtLeast {
		if stmt.Len() < cfg.Threshold(rule.Policy.Threshold) {
			return nil, false
		}
		return &Finding{Statement: stmt, Rule: rule, Count: 1}, true
	}

	pattern := rule.Pattern
	if rule.PatternFunc != nil {
		p, err := rule.PatternFunc(stmt)
		if err != nil {
			slog.Warn("failed to build rule pattern", "rule", rule.ID, "error", err)
			return nil, false
		}
		pattern = p
	}
	if pattern == nil {
		return nil, false
	}

	text := stmt.Text()
	var matches [][]int
	switch rule.Policy.Kind {
	case AnyMatch:
		matches = pattern.FindAllStringIndex(text, 1)
		if len(matches) == 0 {
			return nil, false
		}
		// Report the full count even though one match is enough to fire.
		matches = pattern.FindAllStringIndex(text, -1)
	case CountAtLeast:
		matches = pattern.FindAllStringIndex(text, -1)
		if len(matches) == 0 || len(matches) < cfg.Threshold(rule.Policy.Threshold) {
			return nil, false
		}
	default:
		return nil, false
	}

	first := matches[0]
	return &Finding{
		Statement: stmt,
		Rule:      rule,
		Count:     len(matches),
		Match:     text[first[0]:first[1]],
	}, true
}

// Registry is an ordered, ID indexed set of rules.
type Registry struct {
	mu    sync.RWMutex
	rules []*Rule
	byID  map[string]*Rule
}

// NewRegistry returns a registry holding rules in the given order.
// It panics on an invalid or duplicate rule.
func NewRegistry(rules ...*Rule) *Registry {
	r := &Registry{byID: make(map[string]*Rule, len(rules))}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// Register appends rule to the registry.
// If Register is called twice with the same ID or if rule is invalid,
// it panics.
func (r *Registry) Register(rule *Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule == nil {
		panic("advisor: Register rule is nil")
	}
	if err := rule.Validate(); err != nil {
		panic(err.Error())
	}
	if _, dup := r.byID[rule.ID]; dup {
		panic(fmt.Sprintf("advisor: Register called twice for rule %s", rule.ID))
	}
	r.rules = append(r.rules, rule)
	r.byID[rule.ID] = rule
}

// Rules returns the rules in registration order.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Rule(nil), r.rules...)
}

// Lookup returns the rule registered under id.
func (r *Registry) Lookup(id string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
