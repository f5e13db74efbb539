package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cubby/internal/classify"
)

func newRulesCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "rules",
		Short:       "Show which extensions land in which category folder",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				return writeJSON(cmd, buildRuleViews())
			}

			categories := classify.AllCategories()
			rows := make([][]string, 0, len(categories))
			for _, category := range categories {
				display := strings.Join(classify.ExtensionsFor(category), " ")
				if display == "" {
					display = "(everything else)"
				}
				rows = append(rows, []string{classify.DisplayName(category), display})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Category", "Extensions"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the rules as JSON")
	return cmd
}

type ruleView struct {
	Category   string   `json:"category"`
	Folder     string   `json:"folder"`
	Extensions []string `json:"extensions,omitempty"`
}

func buildRuleViews() []ruleView {
	categories := classify.AllCategories()
	views := make([]ruleView, 0, len(categories))
	for _, category := range categories {
		views = append(views, ruleView{
			Category:   classify.DisplayName(category),
			Folder:     string(category),
			Extensions: classify.ExtensionsFor(category),
		})
	}
	return views
}
