package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/semshot/semshot/internal/state"
)

// NotFound is the sentinel substituted for fields whose locator never
// resolved within the timeout.
var NotFound = state.String("<not found>")

// Plan maps logical field names to locators for a single-element capture.
type Plan map[string]Locator

// CollectionPlan captures an ordered sequence of repeating elements: the
// container locator gates presence, the item locator selects the elements.
type CollectionPlan struct {
	Container Locator
	Item      Locator
}

// Capturer resolves plans against a document with bounded waiting.
type Capturer struct {
	doc      Document
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithTimeout bounds how long each locator is polled for presence.
func WithTimeout(d time.Duration) Option {
	return func(c *Capturer) { c.timeout = d }
}

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(c *Capturer) { c.interval = d }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) { c.logger = logger }
}

// New creates a Capturer over doc. Defaults: 5s timeout, 100ms interval,
// discarded logging.
func New(doc Document, opts ...Option) *Capturer {
	c := &Capturer{
		doc:      doc,
		timeout:  5 * time.Second,
		interval: 100 * time.Millisecond,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture resolves every field of the plan and returns the captured
// mapping. Unresolvable locators yield the NotFound sentinel; only context
// cancellation and resolver failures other than absence abort the capture.
func (c *Capturer) Capture(ctx context.Context, plan Plan) (state.Map, error) {
	out := make(state.Map, len(plan))
	for field, loc := range plan {
		el, err := c.resolve(ctx, loc)
		switch {
		case errors.Is(err, ErrTimeout):
			c.logger.Warn("element not found", "field", field, "locator", string(loc))
			out[field] = NotFound
		case err != nil:
			return nil, fmt.Errorf("capture %q: %w", field, err)
		default:
			out[field] = semanticValue(el)
		}
	}
	return out, nil
}

// CaptureCollection waits for the container, then resolves the item
// locator to an ordered sequence of per-item semantic values in document
// order. A container that never appears yields an empty sequence, which
// differs from any populated baseline and is therefore detectable.
func (c *Capturer) CaptureCollection(ctx context.Context, plan CollectionPlan) (state.Seq, error) {
	if _, err := c.resolve(ctx, plan.Container); err != nil {
		if errors.Is(err, ErrTimeout) {
			c.logger.Warn("container not found", "locator", string(plan.Container))
			return state.Seq{}, nil
		}
		return nil, fmt.Errorf("capture container %q: %w", plan.Container, err)
	}

	items, err := c.doc.FindAll(ctx, plan.Item)
	if err != nil {
		return nil, fmt.Errorf("capture items %q: %w", plan.Item, err)
	}

	seq := make(state.Seq, len(items))
	for i, el := range items {
		seq[i] = semanticValue(el)
	}
	return seq, nil
}

// resolve polls the document for a locator until present or timeout.
// Absence keeps polling; any other resolver error is fatal.
func (c *Capturer) resolve(ctx context.Context, loc Locator) (Element, error) {
	var found Element
	err := Until(ctx, c.timeout, c.interval, func(ctx context.Context) (bool, error) {
		el, err := c.doc.Find(ctx, loc)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// semanticValue extracts the per-kind semantic value of an element.
func semanticValue(el Element) state.Value {
	switch el.Kind() {
	case KindInput:
		return state.String(el.Value())
	case KindInteractive:
		m := state.Map{
			"text":     state.String(el.Text()),
			"enabled":  state.Bool(el.Enabled()),
			"selected": state.Bool(el.Selected()),
		}
		for _, attr := range []string{"placeholder", "label", "type"} {
			if v := el.Attr(attr); v != "" {
				m[attr] = state.String(v)
			}
		}
		return m
	default:
		b := el.Bounds()
		meta := state.Map{}
		for _, attr := range []string{"id", "class", "role"} {
			if v := el.Attr(attr); v != "" {
				meta[attr] = state.String(v)
			}
		}
		return state.Map{
			"text":     state.String(el.Text()),
			"position": state.Map{"x": state.Int(b.X), "y": state.Int(b.Y)},
			"size":     state.Map{"width": state.Int(b.Width), "height": state.Int(b.Height)},
			"metadata": meta,
		}
	}
}
