package capture

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/semshot/semshot/internal/state"
)

// fakeElement implements Element for tests.
type fakeElement struct {
	kind     Kind
	text     string
	value    string
	enabled  bool
	selected bool
	attrs    map[string]string
	bounds   Rect
}

func (e *fakeElement) Kind() Kind           { return e.kind }
func (e *fakeElement) Text() string         { return e.text }
func (e *fakeElement) Value() string        { return e.value }
func (e *fakeElement) Enabled() bool        { return e.enabled }
func (e *fakeElement) Selected() bool       { return e.selected }
func (e *fakeElement) Attr(name string) string { return e.attrs[name] }
func (e *fakeElement) Bounds() Rect         { return e.bounds }

// fakeDocument implements Document over a static locator map.
type fakeDocument struct {
	elements    map[Locator]*fakeElement
	collections map[Locator][]*fakeElement
	failWith    error
}

func (d *fakeDocument) Find(ctx context.Context, loc Locator) (Element, error) {
	if d.failWith != nil {
		return nil, d.failWith
	}
	el, ok := d.elements[loc]
	if !ok {
		return nil, ErrNotFound
	}
	return el, nil
}

func (d *fakeDocument) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	els := d.collections[loc]
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out, nil
}

func fastCapturer(doc Document) *Capturer {
	return New(doc, WithTimeout(50*time.Millisecond), WithInterval(5*time.Millisecond))
}

func TestCaptureSemanticValues(t *testing.T) {
	doc := &fakeDocument{elements: map[Locator]*fakeElement{
		"#email": {kind: KindInput, value: "user@example.com"},
		"#submit": {
			kind: KindInteractive, text: "Submit", enabled: true,
			attrs: map[string]string{"type": "submit", "label": "Submit order"},
		},
		"#banner": {
			kind: KindOther, text: "Welcome",
			attrs:  map[string]string{"id": "banner"},
			bounds: Rect{X: 10, Y: 20, Width: 300, Height: 40},
		},
	}}

	got, err := fastCapturer(doc).Capture(context.Background(), Plan{
		"email":  "#email",
		"submit": "#submit",
		"banner": "#banner",
	})
	require.NoError(t, err)

	require.Equal(t, state.String("user@example.com"), got["email"])
	require.Equal(t, state.Map{
		"text":     state.String("Submit"),
		"enabled":  state.Bool(true),
		"selected": state.Bool(false),
		"type":     state.String("submit"),
		"label":    state.String("Submit order"),
	}, got["submit"])
	require.Equal(t, state.Map{
		"text":     state.String("Welcome"),
		"position": state.Map{"x": state.Int(10), "y": state.Int(20)},
		"size":     state.Map{"width": state.Int(300), "height": state.Int(40)},
		"metadata": state.Map{"id": state.String("banner")},
	}, got["banner"])
}

func TestCaptureMissingElementYieldsSentinel(t *testing.T) {
	doc := &fakeDocument{elements: map[Locator]*fakeElement{
		"#present": {kind: KindInput, value: "here"},
	}}

	got, err := fastCapturer(doc).Capture(context.Background(), Plan{
		"present": "#present",
		"gone":    "#gone",
	})
	require.NoError(t, err)
	require.Equal(t, NotFound, got["gone"])
	require.Equal(t, state.String("here"), got["present"])
}

func TestCaptureSentinelChangesFingerprint(t *testing.T) {
	// A disappeared element must be a detectable regression.
	with := state.Map{"field": state.String("here")}
	without := state.Map{"field": NotFound}

	cWith, err := state.Canonicalize(with, state.Rules{})
	require.NoError(t, err)
	cWithout, err := state.Canonicalize(without, state.Rules{})
	require.NoError(t, err)

	fpWith, err := state.Fingerprint(cWith)
	require.NoError(t, err)
	fpWithout, err := state.Fingerprint(cWithout)
	require.NoError(t, err)
	require.NotEqual(t, fpWith, fpWithout)
}

func TestCaptureResolverFailureAborts(t *testing.T) {
	doc := &fakeDocument{failWith: errors.New("document closed")}

	_, err := fastCapturer(doc).Capture(context.Background(), Plan{"f": "#f"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "document closed")
}

func TestCaptureCollectionOrdering(t *testing.T) {
	items := make([]*fakeElement, 5)
	for i := range items {
		items[i] = &fakeElement{kind: KindInput, value: fmt.Sprintf("row-%d", i)}
	}
	doc := &fakeDocument{
		elements:    map[Locator]*fakeElement{"#list": {kind: KindOther}},
		collections: map[Locator][]*fakeElement{".row": items},
	}

	seq, err := fastCapturer(doc).CaptureCollection(context.Background(), CollectionPlan{
		Container: "#list",
		Item:      ".row",
	})
	require.NoError(t, err)
	require.Len(t, seq, 5)
	for i := range items {
		require.Equal(t, state.String(fmt.Sprintf("row-%d", i)), seq[i])
	}
}

func TestCaptureCollectionMissingContainer(t *testing.T) {
	doc := &fakeDocument{}

	seq, err := fastCapturer(doc).CaptureCollection(context.Background(), CollectionPlan{
		Container: "#list",
		Item:      ".row",
	})
	require.NoError(t, err)
	require.Empty(t, seq)
}

func TestUntilSucceedsOnLaterAttempt(t *testing.T) {
	var calls atomic.Int32

	err := Until(context.Background(), time.Second, time.Millisecond,
		func(ctx context.Context) (bool, error) {
			return calls.Add(1) >= 3, nil
		})
	require.NoError(t, err)
	require.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestUntilTimesOut(t *testing.T) {
	err := Until(context.Background(), 20*time.Millisecond, 5*time.Millisecond,
		func(ctx context.Context) (bool, error) { return false, nil })
	require.ErrorIs(t, err, ErrTimeout)
}

func TestUntilHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Until(ctx, time.Second, time.Millisecond,
		func(ctx context.Context) (bool, error) { return false, nil })
	require.ErrorIs(t, err, context.Canceled)
}
