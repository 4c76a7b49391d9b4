package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/semshot/semshot/internal/baseline"
	"github.com/semshot/semshot/internal/config"
	"github.com/semshot/semshot/internal/journal"
	"github.com/semshot/semshot/internal/state"
	"github.com/semshot/semshot/internal/verify"
)

// VerifyOptions holds flags for the verify and accept commands.
type VerifyOptions struct {
	*RootOptions
	Name         string
	Update       bool
	ExcludeNames []string
	ExcludePaths []string
}

// VerifyReport is the JSON payload for verification results.
type VerifyReport struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Fingerprint string `json:"fingerprint"`
	RunID       string `json:"run_id"`
	Diff        string `json:"diff,omitempty"`
	Artifact    string `json:"artifact,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <state-file>",
		Short: "Verify a state document against its baseline",
		Long: `Verify a captured state document (YAML or JSON) against the accepted
baseline for its specification name.

The first verification under a name creates the baseline. A mismatch
prints a line diff, writes the actual canonical text to the artifact
directory, and exits with code 1.

Exit codes:
  0 - Pass, or baseline created/updated
  1 - Fingerprint mismatch
  2 - Command error (bad input, unreadable storage, etc.)

Examples:
  semshot verify checkout.yaml
  semshot verify checkout.yaml --name checkout_page
  semshot verify checkout.yaml --exclude session_id --exclude captured_at
  SEMSHOT_UPDATE=1 semshot verify checkout.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "specification name (default: state file stem)")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "accept the current state as the new baseline")
	cmd.Flags().StringArrayVar(&opts.ExcludeNames, "exclude", nil, "field name to exclude wherever it appears (repeatable)")
	cmd.Flags().StringArrayVar(&opts.ExcludePaths, "exclude-path", nil, "dotted field path to exclude (repeatable)")

	return cmd
}

func runVerify(opts *VerifyOptions, statePath string, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Update {
		cfg.Update = true
	}

	value, err := LoadStateFile(statePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load state", err)
	}

	name := opts.Name
	if name == "" {
		name = SpecNameFromPath(statePath)
	}

	controller, cleanup, err := buildController(opts, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := controller.Verify(cmd.Context(), name, value)
	if err != nil {
		return WrapExitError(ExitCommandError, "verify", err)
	}

	return reportOutcome(opts, cmd, outcome, cfg)
}

// buildController assembles the verification controller from config and
// flags. The returned cleanup closes the journal, if one was opened.
func buildController(opts *VerifyOptions, cfg config.Config) (*verify.Controller, func(), error) {
	rules := state.Rules{
		Names: opts.ExcludeNames,
		Paths: opts.ExcludePaths,
	}

	controllerOpts := []verify.Option{
		verify.WithRules(rules),
		verify.WithUpdate(cfg.Update),
		verify.WithArtifacts(baseline.NewArtifactWriter(cfg.ArtifactDir)),
	}
	if opts.Verbose {
		controllerOpts = append(controllerOpts,
			verify.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	cleanup := func() {}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open journal", err)
		}
		controllerOpts = append(controllerOpts, verify.WithJournal(j))
		cleanup = func() { j.Close() }
	}

	return verify.New(baseline.NewStore(cfg.BaselineDir), controllerOpts...), cleanup, nil
}

func reportOutcome(opts *VerifyOptions, cmd *cobra.Command, outcome *verify.Outcome, cfg config.Config) error {
	out := cmd.OutOrStdout()
	color := cfg.Color && !opts.NoColor && opts.Format != "json"

	report := VerifyReport{
		Name:        outcome.Name,
		Status:      string(outcome.Status),
		Fingerprint: outcome.Fingerprint,
		RunID:       outcome.RunID,
		Artifact:    outcome.ArtifactPath,
	}
	if outcome.Diff != nil {
		report.Diff = outcome.Diff.Render(false)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: "json", Writer: out}
		if err := f.Success(report); err != nil {
			return err
		}
	} else {
		switch outcome.Status {
		case verify.StatusCreated:
			fmt.Fprintf(out, "Baseline created for %q (%s)\n", outcome.Name, outcome.Fingerprint)
		case verify.StatusUpdated:
			fmt.Fprintf(out, "Baseline updated for %q (%s)\n", outcome.Name, outcome.Fingerprint)
		case verify.StatusPass:
			fmt.Fprintf(out, "Pass: %q\n", outcome.Name)
		case verify.StatusFail:
			fmt.Fprintf(out, "Mismatch for %q:\n%s", outcome.Name, outcome.Diff.Render(color))
			if outcome.ArtifactPath != "" {
				fmt.Fprintf(out, "Actual state written to %s\n", outcome.ArtifactPath)
			}
		}
	}

	if outcome.Failed() {
		return NewExitError(ExitFailure, fmt.Sprintf("state mismatch for %q", outcome.Name))
	}
	return nil
}
