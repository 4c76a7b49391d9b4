package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semshot/semshot/internal/config"
	"github.com/semshot/semshot/internal/journal"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <name>",
		Short: "Print recorded verification runs for a specification",
		Long: `History lists the journal rows for a specification, oldest first.
Requires a journal path in the config file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runHistory(opts *RootOptions, name string, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if cfg.JournalPath == "" {
		return NewExitError(ExitCommandError, "no journal configured (set journal: in the config file)")
	}

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	runs, err := j.History(cmd.Context(), name)
	if err != nil {
		return WrapExitError(ExitCommandError, "query journal", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		f := &OutputFormatter{Format: "json", Writer: out}
		return f.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded for %q.\n", name)
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%6d  %-8s  %s  %s\n", r.Seq, r.Outcome, r.Fingerprint, r.ID)
	}
	return nil
}
