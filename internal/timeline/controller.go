package timeline

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/trend"
)

var (
	// ErrUnknownFeature is returned when hovering an id not in the collection.
	ErrUnknownFeature = eris.New("timeline: unknown feature")
	// ErrHiddenFeature is returned when hovering a feature with no data in
	// the current year.
	ErrHiddenFeature = eris.New("timeline: feature has no data in current year")
)

// Applier pushes a complete frame to the render target in one call.
type Applier interface {
	Apply(Frame) error
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(Frame) error

// Apply calls fn(fr).
func (fn ApplierFunc) Apply(fr Frame) error { return fn(fr) }

// Layer is an in-memory render target holding the last applied frame.
type Layer struct {
	mu      sync.RWMutex
	frame   Frame
	applied int
}

// Apply replaces the held frame.
func (l *Layer) Apply(fr Frame) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frame = fr
	l.applied++
	return nil
}

// Frame returns the last applied frame.
func (l *Layer) Frame() Frame {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frame
}

// Applied returns how many frames were applied.
func (l *Layer) Applied() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.applied
}

// Options controls hover behavior.
type Options struct {
	ShowTrend        bool
	HideTrendOnLeave bool
	Trend            trend.Config
}

// Controller is a single-writer session: it owns the current year, the
// hovered feature and the open trend panel. Callers serialize access.
type Controller struct {
	id      string
	snap    *Snapshot
	applier Applier
	opts    Options
	log     *zap.Logger

	year    int
	frame   Frame
	hovered string
	panel   *trend.Panel
}

// NewController opens a session on the snapshot's default year.
func NewController(snap *Snapshot, applier Applier, opts Options) (*Controller, error) {
	if applier == nil {
		applier = &Layer{}
	}
	if opts.Trend.Width == 0 && opts.Trend.Height == 0 {
		opts.Trend = trend.DefaultConfig()
	}
	id := uuid.NewString()
	c := &Controller{
		id:      id,
		snap:    snap,
		applier: applier,
		opts:    opts,
		log:     zap.L().With(zap.String("component", "timeline"), zap.String("session", id)),
	}
	if _, err := c.SetYear(snap.DefaultYear); err != nil {
		return nil, eris.Wrap(err, "timeline: open session")
	}
	return c, nil
}

// SessionID returns the session's uuid.
func (c *Controller) SessionID() string { return c.id }

// Snapshot returns the session's immutable snapshot.
func (c *Controller) Snapshot() *Snapshot { return c.snap }

// Year returns the current year.
func (c *Controller) Year() int { return c.year }

// Frame returns the last applied frame.
func (c *Controller) Frame() Frame { return c.frame }

// Panel returns the open trend panel, or nil.
func (c *Controller) Panel() *trend.Panel { return c.panel }

// Hovered returns the hovered feature id, or "".
func (c *Controller) Hovered() string { return c.hovered }

// SetYear makes t the current year and applies its frame. On error the
// current state is unchanged.
func (c *Controller) SetYear(t int) (Frame, error) {
	fr, err := Compute(c.snap, t)
	if err != nil {
		return Frame{}, err
	}
	hovered := c.hovered
	if hovered != "" && !visible(fr, hovered) {
		hovered = ""
	}
	fr = highlight(fr, hovered, c.snap.Style.HoverOpacity)
	if err := c.applier.Apply(fr); err != nil {
		return Frame{}, eris.Wrapf(err, "timeline: apply year %d", t)
	}
	c.year = t
	c.frame = fr
	if hovered == "" && c.hovered != "" {
		c.panel = nil
	}
	c.hovered = hovered
	c.log.Debug("year set", zap.Int("year", t), zap.Int("visible", fr.Visible))
	return fr, nil
}

// Hover highlights the feature and, when trends are shown, builds its panel.
func (c *Controller) Hover(id string) (*trend.Panel, error) {
	f, ok := c.snap.Features.Get(id)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownFeature, "timeline: hover %q", id)
	}
	if !visible(c.frame, id) {
		return nil, eris.Wrapf(ErrHiddenFeature, "timeline: hover %q in %d", id, c.year)
	}

	fr, err := Compute(c.snap, c.year)
	if err != nil {
		return nil, err
	}
	fr = highlight(fr, id, c.snap.Style.HoverOpacity)
	if err := c.applier.Apply(fr); err != nil {
		return nil, eris.Wrapf(err, "timeline: apply hover %q", id)
	}
	c.frame = fr
	c.hovered = id

	if !c.opts.ShowTrend {
		return nil, nil
	}
	p, err := trend.Build(f, c.snap.Years(), c.opts.Trend)
	if err != nil {
		return nil, eris.Wrapf(err, "timeline: trend for %q", id)
	}
	c.panel = &p
	c.log.Debug("hover", zap.String("feature", id))
	return c.panel, nil
}

// Leave restores the symbol's base opacity. Leaving a feature that is not
// hovered is a no-op.
func (c *Controller) Leave(id string) error {
	if c.hovered != id {
		return nil
	}
	fr, err := Compute(c.snap, c.year)
	if err != nil {
		return err
	}
	if err := c.applier.Apply(fr); err != nil {
		return eris.Wrapf(err, "timeline: apply leave %q", id)
	}
	c.frame = fr
	c.hovered = ""
	if c.opts.HideTrendOnLeave {
		c.panel = nil
	}
	return nil
}

func visible(fr Frame, id string) bool {
	for _, s := range fr.Symbols {
		if s.ID == id {
			return s.Visible
		}
	}
	return false
}
