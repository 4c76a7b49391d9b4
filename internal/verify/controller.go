package verify

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/semshot/semshot/internal/baseline"
	"github.com/semshot/semshot/internal/diff"
	"github.com/semshot/semshot/internal/journal"
	"github.com/semshot/semshot/internal/state"
)

// Controller runs the verification state machine against a baseline store.
type Controller struct {
	store     *baseline.Store
	artifacts *baseline.ArtifactWriter
	journal   *journal.Journal
	rules     state.Rules
	update    bool
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithRules sets the field exclusion rules applied before encoding.
func WithRules(rules state.Rules) Option {
	return func(c *Controller) { c.rules = rules }
}

// WithUpdate forces WriteBaseline regardless of comparison outcome - the
// "accept new baseline" path. Explicit and opt-in; never triggered
// implicitly by a mismatch.
func WithUpdate(update bool) Option {
	return func(c *Controller) { c.update = update }
}

// WithArtifacts sets the writer for on-failure mismatch artifacts.
// Without one, failing runs produce a diff but no artifact file.
func WithArtifacts(w *baseline.ArtifactWriter) Option {
	return func(c *Controller) { c.artifacts = w }
}

// WithJournal records every outcome in the given journal.
func WithJournal(j *journal.Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// New creates a Controller over the given store. By default there are no
// exclusions, no artifact writer, no journal, and logging is discarded.
func New(store *baseline.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Verify runs one verification call for the named specification:
//
//  1. ComputeFingerprint: exclusion filter, canonical encoder, and
//     fingerprint generator applied to value.
//  2. ResolveBaseline: absent baseline, or update mode, persists the
//     current fingerprint and snapshot (Created / Updated).
//  3. Compare: equal fingerprints pass with no side effects; unequal
//     fingerprints render a diff, persist a mismatch artifact, and return
//     a Fail outcome.
//
// A Fail outcome is not an error. Errors indicate configuration, encoding,
// or storage problems. Nothing is retried internally.
func (c *Controller) Verify(ctx context.Context, name string, value state.Value) (*Outcome, error) {
	if err := baseline.ValidateName(name); err != nil {
		return nil, &Error{Code: CodeConfig, Err: err}
	}

	canonical, err := state.Canonicalize(value, c.rules)
	if err != nil {
		return nil, &Error{Code: CodeEncode, Name: name, Err: err}
	}
	fp, err := state.Fingerprint(canonical)
	if err != nil {
		return nil, &Error{Code: CodeEncode, Name: name, Err: err}
	}
	pretty, err := state.MarshalPretty(canonical)
	if err != nil {
		return nil, &Error{Code: CodeEncode, Name: name, Err: err}
	}
	snapshot := string(pretty) + "\n"

	outcome := &Outcome{
		Name:        name,
		Fingerprint: fp,
		RunID:       uuid.NewString(),
	}
	logger := c.logger.With("spec", name, "run_id", outcome.RunID)

	stored, err := c.store.Load(name)
	switch {
	case errors.Is(err, baseline.ErrNotFound):
		if err := c.writeBaseline(name, fp, snapshot); err != nil {
			return nil, err
		}
		outcome.Status = StatusCreated
		logger.Info("baseline created", "fingerprint", fp)

	case err != nil:
		return nil, &Error{Code: CodeStorage, Name: name, Err: err}

	case c.update:
		if err := c.writeBaseline(name, fp, snapshot); err != nil {
			return nil, err
		}
		outcome.Status = StatusUpdated
		logger.Info("baseline updated", "fingerprint", fp)

	case stored.Fingerprint == fp:
		outcome.Status = StatusPass
		logger.Debug("baseline matched", "fingerprint", fp)

	default:
		outcome.Status = StatusFail
		outcome.Diff = diff.Compare(stored.Snapshot, snapshot)
		if c.artifacts != nil {
			path, err := c.artifacts.Write(name, snapshot)
			if err != nil {
				return nil, &Error{Code: CodeStorage, Name: name, Err: err}
			}
			outcome.ArtifactPath = path
		}
		logger.Warn("baseline mismatch",
			"expected", stored.Fingerprint,
			"actual", fp,
			"differing_lines", len(outcome.Diff.Lines))
	}

	if c.journal != nil {
		err := c.journal.Record(ctx, journal.Run{
			ID:          outcome.RunID,
			Spec:        name,
			Fingerprint: fp,
			Outcome:     string(outcome.Status),
		})
		if err != nil {
			return nil, &Error{Code: CodeStorage, Name: name, Err: err}
		}
	}

	return outcome, nil
}

func (c *Controller) writeBaseline(name, fp, snapshot string) error {
	err := c.store.Save(&baseline.Spec{
		Name:        name,
		Fingerprint: fp,
		Snapshot:    snapshot,
	})
	if err != nil {
		return &Error{Code: CodeStorage, Name: name, Err: err}
	}
	return nil
}
