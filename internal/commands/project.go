package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/categorize"
	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/ledger"
)

// project is an initialized cashflow directory and its configuration.
type project struct {
	root string
	cfg  *config.Config
}

// openProject loads cashflow.yaml from repoDir. Logging settings from the
// file apply unless overridden by flags.
func openProject(cmd *cobra.Command, repoDir string) (*project, error) {
	absDir, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadRepo(absDir)
	if err != nil {
		return nil, fmt.Errorf("opening project at %s (run 'cashflow init' first): %w", absDir, err)
	}

	level, _ := cmd.Root().PersistentFlags().GetString(flagLogLevel)
	json, _ := cmd.Root().PersistentFlags().GetBool(flagLogJSON)
	if !flagChanged(cmd, flagLogLevel) && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	if !flagChanged(cmd, flagLogJSON) {
		json = cfg.Logging.JSON
	}
	setLogger(cmd, level, json)

	return &project{root: absDir, cfg: cfg}, nil
}

func (p *project) path(rel string) string {
	return config.Resolve(p.root, rel)
}

// engine loads the configured rule table, falling back to the built-in one.
func (p *project) engine() (*categorize.Engine, error) {
	eng, err := categorize.Load(p.path(p.cfg.Categorization.RulesFile))
	if err != nil {
		return nil, fmt.Errorf("loading categorization rules: %w", err)
	}
	return eng, nil
}

func (p *project) ledger(eng *categorize.Engine) *ledger.Service {
	return ledger.NewService(p.root, eng)
}

// user returns the flag value, or the configured profile user.
func (p *project) user(flag string) string {
	switch {
	case flag != "":
		return flag
	case p.cfg.Profile.User != "":
		return p.cfg.Profile.User
	default:
		return ledger.DefaultUser
	}
}
