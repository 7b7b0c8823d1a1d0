package cmd

import (
	"github.com/spf13/cobra"

	"policy-lookup/core/types"
)

// selectionFlags binds the selection attributes to a command's flags
type selectionFlags struct {
	category    string
	internet    string
	tv          string
	oneStop     bool
	extraDevice bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "bundle category")
	cmd.Flags().StringVar(&f.internet, "internet", "", "internet product")
	cmd.Flags().StringVar(&f.tv, "tv", "", "TV product (empty for none)")
	cmd.Flags().BoolVar(&f.oneStop, "one-stop", false, "one-stop bundling")
	cmd.Flags().BoolVar(&f.extraDevice, "extra-device", false, "extra device (GiGA Genie 3)")
}

func (f *selectionFlags) selection() types.Selection {
	return types.Selection{}.
		WithCategory(f.category).
		WithInternet(f.internet).
		WithSecondary(f.tv).
		WithOneStop(f.oneStop).
		WithExtraDevice(f.extraDevice)
}
