package cli

import (
	"github.com/spf13/cobra"
)

// NewAcceptCommand creates the accept command: verify with update mode
// forced, the explicit "accept new baseline" path.
func NewAcceptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts, Update: true}

	cmd := &cobra.Command{
		Use:   "accept <state-file>",
		Short: "Accept the current state as the new baseline",
		Long: `Accept overwrites (or creates) the baseline for a specification with
the fingerprint and snapshot of the given state document, regardless of
whether it matches the existing baseline.

Examples:
  semshot accept checkout.yaml
  semshot accept checkout.yaml --name checkout_page`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "specification name (default: state file stem)")
	cmd.Flags().StringArrayVar(&opts.ExcludeNames, "exclude", nil, "field name to exclude wherever it appears (repeatable)")
	cmd.Flags().StringArrayVar(&opts.ExcludePaths, "exclude-path", nil, "dotted field path to exclude (repeatable)")

	return cmd
}
