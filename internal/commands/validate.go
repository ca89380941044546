package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/florin-dev/florin/internal/importer"
)

func newValidateCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a statement CSV without importing it",
		Long: `Parse a statement CSV, detect its bank format and convert every row,
reporting what an import would do. Nothing is written to any store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "validate", "user ID used during conversion")

	return cmd
}

func runValidate(cmd *cobra.Command, path, userID string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var total, converted int
	formats := make(map[importer.Format]int)

	s := importer.NewScanner(f, userID)
	for s.Scan() {
		res := s.Result()
		total++
		if res.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %v\n", res.Err)
			continue
		}
		converted++
		formats[res.Format]++
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d convertible, %d with errors\n",
		path, total, converted, total-converted)
	for format, n := range formats {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d rows\n", format, n)
	}
	return nil
}
