package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/importer"
	"github.com/cleared-dev/cashflow/internal/importlog"
	"github.com/cleared-dev/cashflow/internal/ledger"
	"github.com/cleared-dev/cashflow/internal/logger"
	"github.com/cleared-dev/cashflow/internal/model"
	"github.com/cleared-dev/cashflow/internal/pipeline"
	"github.com/cleared-dev/cashflow/internal/report"
)

func newImportCommand() *cobra.Command {
	var repoDir string
	var user string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import statement files from import/ into the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), p, p.user(user))
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&user, "user", "", "ledger owner (defaults to profile.user)")

	return cmd
}

func runImport(ctx context.Context, out io.Writer, p *project, user string) error {
	runID := importlog.NewRunID()
	log := logger.FromContext(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx, log)

	eng, err := p.engine()
	if err != nil {
		return err
	}
	store := p.ledger(eng)
	reg := importer.DefaultRegistry()

	proc := pipeline.New(reg, eng, p.cfg.Categorization.Workers)
	proc.Existing = func(from, to time.Time) ([]model.RawTransaction, error) {
		records, err := store.ReadRange(user, from, to)
		if err != nil {
			return nil, err
		}
		return ledger.Raw(records), nil
	}

	files, err := importer.Scan(p.root, reg)
	if err != nil {
		return err
	}
	log.Info().Int("files", len(files)).Str("user", user).Msg("starting import")

	var rows []report.ImportRow
	var entries []importlog.Entry
	failed := 0
	for _, f := range files {
		row, err := importFile(ctx, p.root, proc, store, user, f)
		entry := importlog.Entry{
			Timestamp:  time.Now().UTC(),
			RunID:      runID,
			File:       f.Name,
			Format:     row.Summary.Format,
			Parsed:     row.Summary.Count,
			Duplicates: row.Duplicates,
			Stored:     row.Stored,
		}
		if err != nil {
			row.Err = err
			entry.Error = err.Error()
			if isInputError(err) {
				log.Warn().Err(err).Str("file", f.Name).Msg("skipping unreadable statement")
			} else {
				log.Error().Err(err).Str("file", f.Name).Msg("import failed")
				failed++
			}
		}
		rows = append(rows, row)
		entries = append(entries, entry)
	}

	if err := importlog.Append(p.root, entries); err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}
	logged, err := importlog.Read(p.root)
	if err != nil {
		return fmt.Errorf("reading import log: %w", err)
	}
	if err := report.Imports(out, runID, rows); err != nil {
		return err
	}
	if err := report.ImportTotals(out, importlog.ByRun(logged, runID)); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

// importFile processes one statement, stores new rows and moves the file to
// import/processed/. On error the file stays where it is.
func importFile(ctx context.Context, root string, proc *pipeline.Processor, store *ledger.Service, user string, f importer.FileInfo) (report.ImportRow, error) {
	row := report.ImportRow{Summary: pipeline.Summary{File: f.Name}}

	fh, err := os.Open(f.Path)
	if err != nil {
		return row, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	res, err := proc.Process(ctx, f.Name, fh)
	fh.Close()
	if err != nil {
		return row, err
	}
	row.Summary = res.Summary
	row.Duplicates = res.Duplicates

	ids, err := store.Append(user, res.Transactions, f.Name)
	if err != nil {
		return row, fmt.Errorf("storing %s: %w", f.Name, err)
	}
	row.Stored = len(ids)

	if err := importer.MarkProcessed(root, f.Name); err != nil {
		return row, err
	}
	return row, nil
}

// isInputError reports whether err means the file itself is unusable.
func isInputError(err error) bool {
	var fe *importer.FormatError
	var ee *importer.ExtractionError
	return errors.As(err, &fe) || errors.As(err, &ee)
}
