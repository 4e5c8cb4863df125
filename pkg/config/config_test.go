package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, types.SeverityInfo, cfg.MinimumSeverity)
	require.Equal(t, types.AllCategories, cfg.EnabledCategories)
	require.True(t, cfg.PrintOffendingStatement)
	require.Equal(t, 3, cfg.Threshold(IndexCountThreshold))
	require.Equal(t, 5, cfg.Threshold(JoinCountThreshold))
	require.Equal(t, 5, cfg.Threshold(DistinctCountThreshold))
	require.Equal(t, 2, cfg.Threshold(NestingThreshold))
	require.Equal(t, 500, cfg.Threshold(SpaghettiLengthThreshold))
}

func TestDefaultIsNotShared(t *testing.T) {
	a := Default()
	a.EnabledCategories[0] = types.CategoryQuery
	require.Equal(t, types.CategoryLogical, Default().EnabledCategories[0])
	require.Equal(t, types.CategoryLogical, types.AllCategories[0])
}

func TestNew(t *testing.T) {
	cfg, err := New(
		WithMinimumSeverity("warn"),
		WithCategories("logical", "query"),
		WithPrintOffendingStatement(false),
		WithThreshold(JoinCountThreshold, 7),
	)
	require.NoError(t, err)
	require.Equal(t, types.SeverityWarning, cfg.MinimumSeverity)
	require.True(t, cfg.CategoryEnabled(types.CategoryLogical))
	require.True(t, cfg.CategoryEnabled(types.CategoryQuery))
	require.False(t, cfg.CategoryEnabled(types.CategoryPhysical))
	require.False(t, cfg.PrintOffendingStatement)
	require.Equal(t, 7, cfg.Threshold(JoinCountThreshold))
	require.False(t, cfg.SeverityEnabled(types.SeverityInfo))
	require.True(t, cfg.SeverityEnabled(types.SeverityError))
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		message string
	}{
		{name: "unknown category", opt: WithCategories("query", "security"), message: `unknown category "security"`},
		{name: "unknown disabled category", opt: WithoutCategories("nope"), message: `unknown category "nope"`},
		{name: "unknown severity", opt: WithMinimumSeverity("critical"), message: `unknown severity "critical"`},
		{name: "risk level", opt: WithRiskLevel(4), message: "riskLevel"},
		{name: "no categories", opt: WithCategories(), message: "at least one category"},
		{name: "zero threshold", opt: WithThreshold(IndexCountThreshold, 0), message: "thresholds.indexCount"},
		{name: "negative length", opt: WithThreshold(SpaghettiLengthThreshold, -1), message: "thresholds.spaghettiLength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.opt)
			require.Nil(t, cfg)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidOption))
			require.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestWithRiskLevel(t *testing.T) {
	for level, want := range map[int]types.Severity{1: types.SeverityInfo, 2: types.SeverityWarning, 3: types.SeverityError} {
		cfg, err := New(WithRiskLevel(level))
		require.NoError(t, err)
		require.Equal(t, want, cfg.MinimumSeverity)
	}
}

func TestWithoutCategories(t *testing.T) {
	cfg, err := New(WithoutCategories("query"))
	require.NoError(t, err)
	require.Equal(t, []types.Category{types.CategoryLogical, types.CategoryPhysical, types.CategoryApplication}, cfg.EnabledCategories)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(`
minimumSeverity: warn
enabledCategories: [physical, application]
printOffendingStatement: false
thresholds:
  joinCount: 8
`))
	require.NoError(t, err)
	require.Equal(t, types.SeverityWarning, cfg.MinimumSeverity)
	require.Equal(t, []types.Category{types.CategoryPhysical, types.CategoryApplication}, cfg.EnabledCategories)
	require.False(t, cfg.PrintOffendingStatement)
	require.Equal(t, 8, cfg.Thresholds.JoinCount)
	// Untouched keys keep their defaults.
	require.Equal(t, 3, cfg.Thresholds.IndexCount)
	require.Equal(t, 500, cfg.Thresholds.SpaghettiLength)
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"minimumSeverity": "error", "enabledCategories": ["query"]}`))
	require.NoError(t, err)
	require.Equal(t, types.SeverityError, cfg.MinimumSeverity)
	require.Equal(t, []types.Category{types.CategoryQuery}, cfg.EnabledCategories)
	require.True(t, cfg.PrintOffendingStatement)
}

func TestParseRejectsUnknownCategory(t *testing.T) {
	_, err := Parse([]byte("enabledCategories: [query, security]\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidOption))
	require.Contains(t, err.Error(), "security")
}

func TestParseRejectsUnknownKey(t *testing.T) {
	tests := []struct {
		name string
		data string
		key  string
	}{
		{name: "yaml misspelled severity", data: "minimumSeverty: error\n", key: "minimumSeverty"},
		{name: "yaml misspelled categories", data: "enabledCategory: [query]\n", key: "enabledCategory"},
		{name: "yaml nested threshold", data: "thresholds:\n  joins: 3\n", key: "joins"},
		{name: "json", data: `{"minimumSeverity": "warn", "printStatement": false}`, key: "printStatement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidOption))
			require.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParseRejectsZeroThreshold(t *testing.T) {
	_, err := Parse([]byte("thresholds:\n  nesting: 0\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "thresholds.nesting")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("minimumSeverity: error\n"), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, types.SeverityError, cfg.MinimumSeverity)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config file")
}

func TestApplyOverLoadedConfig(t *testing.T) {
	cfg, err := Parse([]byte("minimumSeverity: warn\nthresholds:\n  joinCount: 7\n"))
	require.NoError(t, err)

	require.NoError(t, cfg.Apply(WithoutCategories("physical"), WithThreshold(NestingThreshold, 4)))
	require.Equal(t, types.SeverityWarning, cfg.MinimumSeverity)
	require.Equal(t, 7, cfg.Threshold(JoinCountThreshold))
	require.Equal(t, 4, cfg.Threshold(NestingThreshold))
	require.False(t, cfg.CategoryEnabled(types.CategoryPhysical))

	err = cfg.Apply(WithThreshold(IndexCountThreshold, 0))
	require.True(t, errors.Is(err, ErrInvalidOption))
}
