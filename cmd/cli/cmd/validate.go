// Package cmd - validate command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"policy-lookup/internal/logging"
)

// validateCmd loads the dataset and reports whether it is usable
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the policy payload",
	Long: `Load the policy payload, check every record's schema and the
uniqueness of the lookup key, and print a short summary.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		return err
	}
	ds := eng.Dataset()

	categories := eng.Categories()
	logging.Info("dataset validated",
		zap.Int("records", ds.Len()),
		zap.Int("categories", categories.Len()),
	)

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "✓ Dataset valid")
	fmt.Fprintf(w, "  Records:    %d\n", ds.Len())
	if !ds.GeneratedAt().IsZero() {
		fmt.Fprintf(w, "  Generated:  %s\n", ds.GeneratedAt().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "  Categories: %d\n", categories.Len())
	return nil
}
