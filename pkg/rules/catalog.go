// Package rules is the built-in anti-pattern catalog.
//
// Rules are evaluated in catalog order: logical design, physical design,
// query, then application rules. New rules only need an entry here.
package rules

import (
	"strings"
	"sync"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/statement"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

var defaultRegistry = sync.OnceValue(func() *advisor.Registry {
	ordered := make([]*advisor.Rule, 0, len(logicalRules)+len(physicalRules)+len(queryRules)+len(applicationRules))
	ordered = append(ordered, logicalRules...)
	ordered = append(ordered, physicalRules...)
	ordered = append(ordered, queryRules...)
	ordered = append(ordered, applicationRules...)
	return advisor.NewRegistry(ordered...)
})

// Registry returns the shared registry holding the built-in catalog.
func Registry() *advisor.Registry {
	return defaultRegistry()
}

// Catalog returns the built-in rules in evaluation order.
func Catalog() []*advisor.Rule {
	return defaultRegistry().Rules()
}

// Lookup returns the built-in rule with the given ID.
func Lookup(id string) (*advisor.Rule, bool) {
	return defaultRegistry().Lookup(id)
}

// ByCategory returns the built-in rules of the given categories, in order.
// With no categories every rule is returned.
func ByCategory(categories ...types.Category) []*advisor.Rule {
	all := Catalog()
	if len(categories) == 0 {
		return all
	}
	var out []*advisor.Rule
	for _, rule := range all {
		for _, c := range categories {
			if rule.Category == c {
				out = append(out, rule)
				break
			}
		}
	}
	return out
}

func isDDL(s *statement.Statement) bool {
	return s.IsDDL()
}

func isCreateTable(s *statement.Statement) bool {
	return s.IsCreateTable()
}

func hasTableName(s *statement.Statement) bool {
	_, ok := s.TableName()
	return ok
}

func tableNameContains(substr string) advisor.Guard {
	return func(s *statement.Statement) bool {
		name, ok := s.TableName()
		return ok && strings.Contains(name, substr)
	}
}
