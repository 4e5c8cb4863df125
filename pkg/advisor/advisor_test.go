package advisor

import (
	"regexp"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/statement"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

func newRule(pattern string, policy MatchPolicy) *Rule {
	return &Rule{
		ID:       "TestRule",
		Code:     SelectStar,
		Title:    "Test Rule",
		Category: types.CategoryQuery,
		Severity: types.SeverityWarning,
		Pattern:  regexp.MustCompile(pattern),
		Policy:   policy,
	}
}

func TestEvaluateAnyMatch(t *testing.T) {
	rule := newRule(`join`, Any())
	cfg := config.Default()

	finding, ok := Evaluate(cfg, statement.New("SELECT a FROM t JOIN u ON x JOIN v ON y"), rule)
	require.True(t, ok)
	require.Equal(t, 2, finding.Count)
	require.Equal(t, "join", finding.Match)
	require.Same(t, rule, finding.Rule)

	_, ok = Evaluate(cfg, statement.New("SELECT a FROM t"), rule)
	require.False(t, ok)
}

func TestEvaluateCountAtLeast(t *testing.T) {
	rule := newRule(`join`, Count(config.JoinCountThreshold))
	cfg := config.Default()

	four := "select a from t1 join t2 on a join t3 on b join t4 on c join t5 on d"
	_, ok := Evaluate(cfg, statement.New(four), rule)
	require.False(t, ok)

	finding, ok := Evaluate(cfg, statement.New(four+" join t6 on e"), rule)
	require.True(t, ok)
	require.Equal(t, 5, finding.Count)

	lowered, err := config.New(config.WithThreshold(config.JoinCountThreshold, 4))
	require.NoError(t, err)
	_, ok = Evaluate(lowered, statement.New(four), rule)
	require.True(t, ok)
}

func TestEvaluateLengthAtLeast(t *testing.T) {
	rule := &Rule{
		ID:       "Long",
		Title:    "Long",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Policy:   Length(config.SpaghettiLengthThreshold),
	}
	cfg := config.Default()

	_, ok := Evaluate(cfg, statement.New("select "+strings.Repeat("a", 492)), rule)
	require.False(t, ok)

	finding, ok := Evaluate(cfg, statement.New("select "+strings.Repeat("a", 493)), rule)
	require.True(t, ok)
	require.Equal(t, 1, finding.Count)
	require.Empty(t, finding.Match)
}

func TestEvaluateGates(t *testing.T) {
	rule := newRule(`select`, Any())

	noQuery, err := config.New(config.WithoutCategories("query"))
	require.NoError(t, err)
	_, ok := Evaluate(noQuery, statement.New("select 1"), rule)
	require.False(t, ok)

	errorsOnly, err := config.New(config.WithMinimumSeverity("error"))
	require.NoError(t, err)
	_, ok = Evaluate(errorsOnly, statement.New("select 1"), rule)
	require.False(t, ok)

	rule.Guard = func(s *statement.Statement) bool { return s.IsDDL() }
	_, ok = Evaluate(config.Default(), statement.New("select 1"), rule)
	require.False(t, ok)
	_, ok = Evaluate(config.Default(), statement.New("create table t (a int) as select 1"), rule)
	require.True(t, ok)
}

func TestEvaluatePatternFunc(t *testing.T) {
	rule := &Rule{
		ID:       "SelfRef",
		Title:    "SelfRef",
		Category: types.CategoryLogical,
		Severity: types.SeverityError,
		PatternFunc: func(s *statement.Statement) (*regexp.Regexp, error) {
			name, _ := s.TableName()
			return regexp.Compile(`references\s+` + regexp.QuoteMeta(name))
		},
		Policy: Any(),
	}
	cfg := config.Default()

	finding, ok := Evaluate(cfg, statement.New("CREATE TABLE node (parent int REFERENCES node(id))"), rule)
	require.True(t, ok)
	require.Equal(t, "references node", finding.Match)

	rule.PatternFunc = func(*statement.Statement) (*regexp.Regexp, error) {
		return nil, errors.New("boom")
	}
	_, ok = Evaluate(cfg, statement.New("create table node (a int)"), rule)
	require.False(t, ok)
}

func TestEvaluateRecoversPanic(t *testing.T) {
	rule := newRule(`select`, Any())
	rule.Guard = func(*statement.Statement) bool { panic("guard exploded") }

	finding, ok := Evaluate(config.Default(), statement.New("select 1"), rule)
	require.False(t, ok)
	require.Nil(t, finding)
}

func TestEvaluateEmptyStatement(t *testing.T) {
	for _, policy := range []MatchPolicy{Any(), Count(config.NestingThreshold)} {
		_, ok := Evaluate(config.Default(), statement.New(""), newRule(`select`, policy))
		require.False(t, ok)
	}
}

func TestRuleValidate(t *testing.T) {
	require.NoError(t, newRule(`x`, Any()).Validate())

	missing := newRule(`x`, Any())
	missing.Pattern = nil
	require.Error(t, missing.Validate())

	both := newRule(`x`, Any())
	both.PatternFunc = func(*statement.Statement) (*regexp.Regexp, error) { return nil, nil }
	require.Error(t, both.Validate())

	require.Error(t, (&Rule{Title: "no id"}).Validate())
}

func TestRegistry(t *testing.T) {
	a := newRule(`a`, Any())
	a.ID = "A"
	b := newRule(`b`, Any())
	b.ID = "B"

	r := NewRegistry(b, a)
	require.Equal(t, 2, r.Len())
	require.Equal(t, []*Rule{b, a}, r.Rules())

	got, ok := r.Lookup("A")
	require.True(t, ok)
	require.Same(t, a, got)

	_, ok = r.Lookup("C")
	require.False(t, ok)

	require.Panics(t, func() { r.Register(a) })
	require.Panics(t, func() { r.Register(nil) })
}

func TestPolicyKindString(t *testing.T) {
	require.Equal(t, "any", AnyMatch.String())
	require.Equal(t, "count", CountAtLeast.String())
	require.Equal(t, "length", LengthAtLeast.String())
}
