package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/florin-dev/florin/internal/importlog"
)

func newLogCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the project's import history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving project dir: %w", err)
			}
			return runLog(cmd, absDir)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")

	return cmd
}

func runLog(cmd *cobra.Command, projectDir string) error {
	entries, err := importlog.Read(projectDir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: %d rows, %d converted, %d failed, %d persisted (%s)\n",
			e.Timestamp.Format(time.RFC3339), e.File,
			e.TotalRows, e.Converted, e.Failed, e.Persisted, e.Duration)
	}
	return nil
}
