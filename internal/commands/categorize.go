package commands

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/categorize"
	"github.com/cleared-dev/cashflow/internal/model"
	"github.com/cleared-dev/cashflow/internal/report"
)

type categorizationJSON struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	Tags        []string `json:"tags"`
}

func newCategorizeCommand() *cobra.Command {
	var repoDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categorize DESCRIPTION...",
		Short: "Show how transaction descriptions would be categorized",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := categorizeEngine(cmd, repoDir)
			if err != nil {
				return err
			}

			results := make([]model.Categorization, len(args))
			for i, desc := range args {
				results[i] = eng.Categorize(desc)
			}

			if asJSON {
				out := make([]categorizationJSON, len(args))
				for i, c := range results {
					out[i] = categorizationJSON{Description: args[i], Category: c.Category, Confidence: c.Confidence, Tags: c.Tags}
					if out[i].Tags == nil {
						out[i].Tags = []string{}
					}
				}
				return report.WriteJSON(cmd.OutOrStdout(), out)
			}
			return report.Categorizations(cmd.OutOrStdout(), args, results)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of a table")

	return cmd
}

// categorizeEngine uses the project's rule table when repoDir is a project,
// and the built-in table otherwise.
func categorizeEngine(cmd *cobra.Command, repoDir string) (*categorize.Engine, error) {
	p, err := openProject(cmd, repoDir)
	if errors.Is(err, fs.ErrNotExist) {
		return categorize.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return p.engine()
}
