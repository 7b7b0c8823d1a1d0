// Package cmd - lookup command
package cmd

import (
	"github.com/spf13/cobra"

	"policy-lookup/core/output"
	perrors "policy-lookup/internal/errors"
)

var (
	lookupFlags  selectionFlags
	lookupStrict bool
)

// lookupCmd resolves a selection to its policy breakdown
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up the policy for a selection",
	Long: `Resolve a selection to exactly one policy row and print the breakdown.

A selection without a TV product only matches rows without TV.

Examples:
  policy-lookup lookup --category 홈결합 --internet 베이직
  policy-lookup lookup --category 홈결합 --internet 베이직 --tv 라이트/베이직 --one-stop
  policy-lookup lookup --format json --category 홈결합 --internet 슬림`,
	Args: cobra.NoArgs,
	RunE: runLookup,
}

func init() {
	lookupFlags.register(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupStrict, "strict", false, "exit non-zero when no policy is found")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	format, err := resolvedFormat()
	if err != nil {
		return err
	}
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}

	sel := lookupFlags.selection()
	view := eng.View(sel)
	if err := output.RenderLookup(cmd.OutOrStdout(), format, view); err != nil {
		return err
	}
	if lookupStrict && !view.Found {
		return perrors.NotFound("policy", string(view.Reason)).WithContext("summary", view.Summary)
	}
	return nil
}
