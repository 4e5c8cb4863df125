package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/report"
	"github.com/nsxbet/sqlcheck/pkg/rules"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the anti-pattern rules",
	Example: `  sqlcheck rules
  sqlcheck rules --category query
  sqlcheck rules --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		output, _ := cmd.Flags().GetString("output")
		return listRules(cmd.OutOrStdout(), category, output)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().String("category", "", "only list rules of this category")
	rulesCmd.Flags().StringP("output", "o", "table", "output format (table, json)")
}

// ruleInfo is the JSON shape of a catalog entry.
type ruleInfo struct {
	ID       string         `json:"id"`
	Code     int32          `json:"code"`
	Title    string         `json:"title"`
	Category types.Category `json:"category"`
	Severity types.Severity `json:"severity"`
	Policy   string         `json:"policy"`
}

func listRules(w io.Writer, category, output string) error {
	catalog := rules.Catalog()
	if category != "" {
		cat, err := types.ParseCategory(category)
		if err != nil {
			return errors.Wrap(config.ErrInvalidOption, err.Error())
		}
		catalog = rules.ByCategory(cat)
	}

	switch output {
	case "json":
		infos := make([]ruleInfo, 0, len(catalog))
		for _, r := range catalog {
			infos = append(infos, ruleInfo{
				ID:       r.ID,
				Code:     r.Code.Int32(),
				Title:    r.Title,
				Category: r.Category,
				Severity: r.Severity,
				Policy:   describePolicy(r.Policy),
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case "table", "text", "":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Code", "ID", "Title", "Category", "Risk", "Fires On"})
		for _, r := range catalog {
			t.AppendRow(table.Row{r.Code.Int(), r.ID, r.Title, r.Category, report.RiskLabel(r.Severity), describePolicy(r.Policy)})
		}
		t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d rules", len(catalog))})
		t.Render()
		return nil
	default:
		return errors.Wrapf(config.ErrInvalidOption, "output: unsupported format %q (want table or json)", output)
	}
}

func describePolicy(p advisor.MatchPolicy) string {
	switch p.Kind {
	case advisor.CountAtLeast:
		return fmt.Sprintf("matches >= %s", p.Threshold)
	case advisor.LengthAtLeast:
		return fmt.Sprintf("length >= %s", p.Threshold)
	default:
		return "any match"
	}
}
