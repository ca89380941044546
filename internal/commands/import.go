package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/florin-dev/florin/internal/accounts"
	"github.com/florin-dev/florin/internal/config"
	"github.com/florin-dev/florin/internal/importer"
	"github.com/florin-dev/florin/internal/importlog"
	"github.com/florin-dev/florin/internal/logging"
	"github.com/florin-dev/florin/internal/pipeline"
	"github.com/florin-dev/florin/internal/storage/csvfile"
	"github.com/florin-dev/florin/internal/transactions"
)

func newImportCommand() *cobra.Command {
	var projectDir string
	var userID string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statement CSVs",
		Long: `Import bank statement CSVs into the project's transaction store.

With file arguments, imports those files. Without arguments, imports
every CSV waiting in the project's import/ directory and moves each
successfully imported file to import/processed/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving project dir: %w", err)
			}
			return runImport(cmd, absDir, userID, args)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().StringVar(&userID, "user", "", "importing user ID (defaults to florin.yaml)")

	return cmd
}

// fileResult pairs one imported file with its pipeline summary.
type fileResult struct {
	file     string
	summary  pipeline.Summary
	duration time.Duration
}

func runImport(cmd *cobra.Command, projectDir, userID string, args []string) error {
	cfg, err := config.Load(filepath.Join(projectDir, config.FileName))
	if err != nil {
		return fmt.Errorf("loading project config (run 'florin init'?): %w", err)
	}
	if userID == "" {
		userID = cfg.User.ID
	}
	if userID == "" {
		return fmt.Errorf("no user ID: pass --user or set user.id in %s", config.FileName)
	}

	logger := logging.NewLogger(cfg.Log.Level)
	defer logger.Sync()

	store, err := csvfile.Open(filepath.Join(projectDir, cfg.Import.DataDir))
	if err != nil {
		return err
	}

	imp := pipeline.New(accounts.NewResolver(store), transactions.NewWriter(store))
	imp.ProgressEvery = cfg.Import.ProgressEvery
	imp.Progress = func(rows int, bytes int64) {
		logger.Debug("import progress", zap.Int("rows", rows), zap.Int64("bytes", bytes))
	}

	// Explicit file arguments import in place; a bare "florin import"
	// drains the import/ directory and moves files to processed/.
	fromImportDir := len(args) == 0
	var files []importer.FileInfo
	if fromImportDir {
		files, err = importer.ScanFiles(projectDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No statement files in import/")
			return nil
		}
	} else {
		for _, a := range args {
			info, err := os.Stat(a)
			if err != nil {
				return fmt.Errorf("stat %s: %w", a, err)
			}
			files = append(files, importer.FileInfo{Name: filepath.Base(a), Path: a, Size: info.Size()})
		}
	}

	var mu sync.Mutex
	var results []fileResult

	g, ctx := errgroup.WithContext(cmd.Context())
	if n := cfg.Import.MaxConcurrentFiles; n > 0 {
		g.SetLimit(n)
	}

	for _, file := range files {
		file := file
		g.Go(func() error {
			f, err := os.Open(file.Path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", file.Name, err)
			}
			defer f.Close()

			start := time.Now()
			summary, err := imp.Import(ctx, f, userID)
			if err != nil {
				return fmt.Errorf("importing %s: %w", file.Name, err)
			}

			logger.Info("statement imported",
				zap.String("file", file.Name),
				zap.Int64("size_bytes", file.Size),
				zap.Int("total_rows", summary.TotalRows),
				zap.Int("converted", summary.Converted),
				zap.Int("failed", summary.ErrorCount()),
				zap.Int("persisted", summary.Persisted),
				zap.Duration("duration", time.Since(start)),
			)
			for _, rowErr := range summary.Errors {
				logger.Warn("row skipped", zap.String("file", file.Name), zap.String("error", rowErr.Error()))
			}

			if fromImportDir {
				if err := importer.MarkProcessed(projectDir, file.Name); err != nil {
					return err
				}
			}

			mu.Lock()
			results = append(results, fileResult{file: file.Name, summary: summary, duration: time.Since(start)})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var entries []importlog.Entry
	for _, r := range results {
		entries = append(entries, importlog.Entry{
			Timestamp: time.Now(),
			File:      r.file,
			UserID:    userID,
			TotalRows: r.summary.TotalRows,
			Converted: r.summary.Converted,
			Failed:    r.summary.ErrorCount(),
			Persisted: r.summary.Persisted,
			Duration:  r.duration,
		})
	}
	if err := importlog.Append(projectDir, entries); err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d converted, %d failed, %d persisted\n",
			r.file, r.summary.TotalRows, r.summary.Converted, r.summary.ErrorCount(), r.summary.Persisted)
	}
	return nil
}
