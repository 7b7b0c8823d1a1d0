// Package cmd - options and categories commands
package cmd

import (
	"github.com/spf13/cobra"

	"policy-lookup/core/output"
	"policy-lookup/core/types"
)

var optionsFlags selectionFlags

// optionsCmd lists the valid choices for one attribute
var optionsCmd = &cobra.Command{
	Use:   "options <attribute>",
	Short: "List valid choices for an attribute",
	Long: `List the values of an attribute that remain valid given the other
selected attributes. Attributes: category, internet, tv, one_stop, extra_device.

Examples:
  policy-lookup options internet --category 홈결합
  policy-lookup options tv --category 홈결합 --internet 베이직 --one-stop`,
	Args: cobra.ExactArgs(1),
	RunE: runOptions,
}

// categoriesCmd lists every category
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List bundle categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	optionsFlags.register(optionsCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	attr, err := types.ParseAttribute(args[0])
	if err != nil {
		return err
	}
	return printOptions(cmd, optionsFlags.selection(), attr)
}

func runCategories(cmd *cobra.Command, args []string) error {
	format, err := resolvedFormat()
	if err != nil {
		return err
	}
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	return output.RenderOptions(cmd.OutOrStdout(), format, eng.Categories())
}

func printOptions(cmd *cobra.Command, sel types.Selection, attr types.Attribute) error {
	format, err := resolvedFormat()
	if err != nil {
		return err
	}
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	opts, err := eng.ValidOptions(sel, attr)
	if err != nil {
		return err
	}
	return output.RenderOptions(cmd.OutOrStdout(), format, opts)
}
