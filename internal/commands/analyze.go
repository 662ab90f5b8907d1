package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/analytics"
	"github.com/cleared-dev/cashflow/internal/ledger"
	"github.com/cleared-dev/cashflow/internal/logger"
	"github.com/cleared-dev/cashflow/internal/model"
	"github.com/cleared-dev/cashflow/internal/report"
)

const dateLayout = "2006-01-02"

func newAnalyzeCommand() *cobra.Command {
	var repoDir, user, from, to, granularity string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Aggregate ledger transactions into periods with trend and health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())

			if granularity == "" {
				granularity = p.cfg.Analytics.Granularity
			}
			g, err := model.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			fromDate, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}
			if !fromDate.IsZero() && !toDate.IsZero() && toDate.Before(fromDate) {
				return fmt.Errorf("--to %s is before --from %s", to, from)
			}

			eng, err := p.engine()
			if err != nil {
				return err
			}
			records, err := p.ledger(eng).ReadRange(p.user(user), fromDate, toDate)
			if err != nil {
				return err
			}
			log.Debug().Int("transactions", len(records)).Str("granularity", string(g)).Msg("analyzing ledger")

			a := analytics.Aggregate(ledger.Transactions(records), g)
			insights := analytics.BuildInsights(a)

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewAnalyticsJSON(a, insights))
			}
			return report.Analytics(cmd.OutOrStdout(), a, insights)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&user, "user", "", "ledger owner (defaults to profile.user)")
	cmd.Flags().StringVar(&from, "from", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&granularity, "granularity", "", "month, quarter or year (defaults to analytics.granularity)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of tables")

	return cmd
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: want YYYY-MM-DD", name, value)
	}
	return t, nil
}
