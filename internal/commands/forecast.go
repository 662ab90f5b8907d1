package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/forecast"
	"github.com/cleared-dev/cashflow/internal/ledger"
	"github.com/cleared-dev/cashflow/internal/logger"
	"github.com/cleared-dev/cashflow/internal/report"
)

func newForecastCommand() *cobra.Command {
	var repoDir, user string
	var horizon int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project monthly cash flow under each scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())

			if !cmd.Flags().Changed("horizon") {
				horizon = p.cfg.Forecast.HorizonMonths
			}

			eng, err := p.engine()
			if err != nil {
				return err
			}
			records, err := p.ledger(eng).ReadRange(p.user(user), time.Time{}, time.Time{})
			if err != nil {
				return err
			}
			income, expenses := forecast.BaselineFromTransactions(ledger.Transactions(records), p.cfg.Forecast.BaselineMonths)
			log.Debug().
				Str("income", income.StringFixed(2)).
				Str("expenses", expenses.StringFixed(2)).
				Msg("forecast baseline")

			scenarios, err := forecast.LoadScenarios(p.path(p.cfg.Forecast.ScenariosFile))
			if err != nil {
				return err
			}
			points, err := forecast.Project(income, expenses, scenarios, horizon)
			if err != nil {
				return err
			}
			summaries := forecast.Summarize(points, scenarios, horizon, expenses)

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewForecastJSON(income, expenses, horizon, points, summaries))
			}
			return report.Forecast(cmd.OutOrStdout(), income, expenses, horizon, summaries)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&user, "user", "", "ledger owner (defaults to profile.user)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "months to project (defaults to forecast.horizon_months)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of a table")

	return cmd
}
