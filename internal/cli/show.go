package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semshot/semshot/internal/baseline"
	"github.com/semshot/semshot/internal/config"
)

// ShowReport is the JSON payload for the show command.
type ShowReport struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	Snapshot    string `json:"snapshot"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <name>",
		Short:         "Print the stored baseline for a specification",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, name string, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	spec, err := baseline.NewStore(cfg.BaselineDir).Load(name)
	if err != nil {
		if errors.Is(err, baseline.ErrNotFound) {
			return NewExitError(ExitCommandError, fmt.Sprintf("no baseline for %q", name))
		}
		return WrapExitError(ExitCommandError, "load baseline", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		f := &OutputFormatter{Format: "json", Writer: out}
		return f.Success(ShowReport{
			Name:        spec.Name,
			Fingerprint: spec.Fingerprint,
			Snapshot:    spec.Snapshot,
		})
	}

	fmt.Fprintf(out, "%s  %s\n", spec.Fingerprint, spec.Name)
	fmt.Fprint(out, spec.Snapshot)
	return nil
}
