package scratch

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/gogpu/scratch/loader"
	"github.com/gogpu/scratch/surface"
	"github.com/gogpu/scratch/text"
)

// imageCacheSize bounds the decoded images kept by the default loader.
const imageCacheSize = 16

// Card is a scratch card: a reward surface beneath a cover surface that
// pointer strokes erase. Once the erased share of the cover reaches the
// threshold, the cover fades out, is cleared, and OnSuccess fires.
//
// A Card is safe for concurrent use. Callbacks run on the goroutine that
// delivered the triggering event or timer, never while the card's lock is
// held, so they may call back into the card.
type Card struct {
	mu sync.Mutex

	cfg    Config
	mount  Mount
	log    *slog.Logger
	loader ImageLoader
	sched  Scheduler

	cover  *surface.Surface
	reward *surface.Surface
	face   *text.Face
	radius float64

	rewardColor       color.NRGBA
	fontColor         color.NRGBA
	coverColor        color.NRGBA
	transparentReward bool

	state    State
	locked   bool
	ready    bool
	done     bool
	gesture  gesture
	coverage coverageCounter
	percent  float64
	punches  int

	// gen is bumped by Set and Close; delayed work from an older
	// generation is dropped.
	gen         uint64
	pending     int
	painting    bool
	rewardTimer Timer
	clearTimer  Timer

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup
	closed bool
}

// New creates a card in mount, paints its reward and cover, and unlocks
// it once painting has finished. Images are loaded in the background; use
// Wait to block until they are drawn.
func New(mount Mount, opts ...Option) (*Card, error) {
	if mount == nil {
		return nil, ErrInvalidMount
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spec, err := text.ParseSpec(cfg.Font)
	if err != nil {
		return nil, configError("font", err)
	}
	face, err := text.NewFace(spec.Scale(cfg.PixelRatio))
	if err != nil {
		return nil, configError("font", err)
	}

	c := &Card{
		cfg:               cfg,
		mount:             mount,
		log:               cfg.Logger,
		loader:            cfg.Loader,
		sched:             cfg.Scheduler,
		face:              face,
		radius:            cfg.Radius * cfg.PixelRatio,
		rewardColor:       surface.MustParseColor(cfg.RewardColor),
		fontColor:         surface.MustParseColor(cfg.FontColor),
		coverColor:        surface.MustParseColor(cfg.CoverColor),
		transparentReward: surface.IsTransparent(cfg.RewardColor),
		state:             StateLocked,
		locked:            true,
	}
	if c.log == nil {
		c.log = Logger()
	}
	if c.loader == nil {
		c.loader = loader.New(loader.WithCache(imageCacheSize))
	}
	if c.sched == nil {
		c.sched = SystemScheduler()
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.reward = surface.New(cfg.Width, cfg.Height, cfg.PixelRatio)
	c.cover = surface.New(cfg.Width, cfg.Height, cfg.PixelRatio)

	if a, ok := mount.(Attacher); ok {
		a.Attach(cfg.ContainerClass, c.reward, c.cover)
	}

	c.log.Debug("scratch: card created",
		slog.Int("width", c.cover.Width()),
		slog.Int("height", c.cover.Height()),
		slog.String("mode", cfg.Mode.String()))

	fns := c.update(func() []func() {
		c.gen++
		c.painting = true
		c.paintReward(c.gen)
		c.paintCover(c.gen)
		return c.unlockIfPainted()
	})
	c.emit(fns)
	return c, nil
}

// SetLock locks or unlocks the card. A locked card ignores pointer input
// and hides the reward; unlocking shows it again.
func (c *Card) SetLock(locked bool) {
	c.update(func() []func() {
		if !c.closed {
			c.painting = false
			c.setLock(locked)
		}
		return nil
	})
}

// SetLockValue is SetLock for dynamically typed callers. It returns
// ErrInvalidArgument unless v is a bool.
func (c *Card) SetLockValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: lock value must be a bool, got %T", ErrInvalidArgument, v)
	}
	c.SetLock(b)
	return nil
}

// Set replaces the reward image, reward text and cover image and starts a
// new reveal cycle. The card locks, any stroke or pending clear is
// abandoned, the cover is repainted at once and the reward 30ms later.
// The card unlocks when both layers are painted.
func (c *Card) Set(opts ...ContentOption) {
	c.update(func() []func() {
		if c.closed {
			return nil
		}
		v := c.cfg.content()
		for _, o := range opts {
			o(&v)
		}
		c.cfg.setContent(v)

		c.gen++
		c.stopTimers()
		c.pending = 0
		c.painting = true
		c.done = false
		c.punches = 0
		c.setLock(true)
		c.setState(StateLocked)

		gen := c.gen
		c.paintCover(gen)
		c.pending++
		c.rewardTimer = c.sched.AfterFunc(rewardDelay, func() {
			c.emit(c.update(func() []func() {
				if c.closed || gen != c.gen {
					return nil
				}
				c.rewardTimer = nil
				c.pending--
				c.paintReward(gen)
				return c.unlockIfPainted()
			}))
		})
		return nil
	})
}

// Clear fades out and removes the cover as if the threshold had been
// reached. It does nothing while a clear is already underway or after one
// has completed.
func (c *Card) Clear() {
	c.emit(c.update(func() []func() {
		if c.closed || c.state == StateClearing || c.state == StateCleared {
			return nil
		}
		return c.startClear()
	}))
}

// PointerDown starts a stroke. The first accepted pointer-down fires
// OnReady. The press itself erases a dot but does not report progress.
func (c *Card) PointerDown(ev *PointerEvent) {
	ev.PreventDefault()
	defer c.recoverPanic("pointer down")
	c.emit(c.update(func() []func() {
		if c.closed || c.locked {
			return nil
		}
		var fns []func()
		if !c.ready {
			c.ready = true
			if fn := c.cfg.OnReady; fn != nil {
				fns = append(fns, fn)
			}
		}
		if c.cfg.Mode == ModeSector {
			c.cover.BeginPath()
		}
		c.cover.SetCompositeOp(surface.DestinationOut)
		c.gesture.begin(c.mount.Bounds())
		c.erase(ev)
		if !c.done {
			c.setState(StateStroking)
		}
		return fns
	}))
}

// PointerMove erases along an active stroke, reports progress, and starts
// the clear once the threshold is reached.
func (c *Card) PointerMove(ev *PointerEvent) {
	ev.PreventDefault()
	defer c.recoverPanic("pointer move")
	c.emit(c.update(func() []func() {
		if c.closed || c.locked || !c.gesture.active || c.done {
			return nil
		}
		c.erase(ev)

		pct := c.coverage.percent(c.cover)
		c.percent = pct
		var fns []func()
		if fn := c.cfg.OnProgress; fn != nil {
			fns = append(fns, func() { fn(pct) })
		}
		if pct >= c.cfg.Threshold {
			fns = append(fns, c.startClear()...)
		}
		return fns
	}))
}

// PointerUp ends the stroke.
func (c *Card) PointerUp(ev *PointerEvent) {
	c.endStroke(ev, "pointer up")
}

// PointerCancel ends the stroke.
func (c *Card) PointerCancel(ev *PointerEvent) {
	c.endStroke(ev, "pointer cancel")
}

// PointerLeave ends the stroke.
func (c *Card) PointerLeave(ev *PointerEvent) {
	c.endStroke(ev, "pointer leave")
}

func (c *Card) endStroke(ev *PointerEvent, what string) {
	ev.PreventDefault()
	defer c.recoverPanic(what)
	c.update(func() []func() {
		if c.closed || c.locked {
			return nil
		}
		c.cover.SetCompositeOp(surface.SourceOver)
		c.gesture.end()
		if c.state == StateStroking {
			c.setState(StateReady)
		}
		return nil
	})
}

// State returns the lifecycle state.
func (c *Card) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Percent returns the erased percentage computed by the last accepted
// pointer-move.
func (c *Card) Percent() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.percent
}

// IsReady reports whether the card has ever accepted a pointer-down.
func (c *Card) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// IsDone reports whether the current reveal cycle reached completion and
// is clearing.
func (c *Card) IsDone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Locked reports whether pointer input is currently rejected.
func (c *Card) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Punches returns the number of punches erased in the current reveal
// cycle. Set starts a new cycle.
func (c *Card) Punches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.punches
}

// Cover returns the cover surface. Read it only while no event is being
// delivered to the card.
func (c *Card) Cover() *surface.Surface {
	return c.cover
}

// Reward returns the reward surface. Read it only while no event is being
// delivered to the card.
func (c *Card) Reward() *surface.Surface {
	return c.reward
}

// Config returns a copy of the current configuration, including content
// replaced by Set.
func (c *Card) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Wait blocks until every image load started so far has been applied or
// dropped.
func (c *Card) Wait() {
	c.loads.Wait()
}

// Close stops pending timers, cancels image loads and releases the
// surfaces. Close is idempotent.
func (c *Card) Close() error {
	c.update(func() []func() {
		if c.closed {
			return nil
		}
		c.closed = true
		c.gen++
		c.stopTimers()
		c.cancel()
		c.gesture.end()
		return nil
	})
	c.loads.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.face == nil {
		return nil
	}
	err := c.face.Close()
	c.face = nil
	_ = c.cover.Close()
	_ = c.reward.Close()
	return err
}

// erase punches the cover at the first contact of ev. c.mu must be held.
func (c *Card) erase(ev *PointerEvent) {
	st := MapPointer(ev, c.gesture.anchor, c.cover.PixelRatio(), c.radius)
	c.gesture.last = st
	if c.locked || c.done || !c.gesture.active || st.Radius <= 0 {
		return
	}
	r := punchBounds(c.cover, st, c.cfg.Mode)
	c.coverage.track(c.cover, r, func() {
		Punch(c.cover, st, c.cfg.Mode)
	})
	c.punches++
}

// startClear marks the cycle done and fades the cover, finishing at once
// when the duration is not positive. c.mu must be held.
func (c *Card) startClear() []func() {
	c.done = true
	c.painting = false
	c.gesture.end()
	c.setState(StateClearing)

	d := c.cfg.Duration
	if d >= 0 {
		c.cover.SetTransition(surface.Transition{Property: "all", Duration: d, Timing: surface.TimingLinear})
		c.cover.SetOpacity(0)
	}
	if d <= 0 {
		return c.finishClear()
	}

	gen := c.gen
	c.clearTimer = c.sched.AfterFunc(d, func() {
		c.emit(c.update(func() []func() {
			if c.closed || gen != c.gen || c.clearTimer == nil {
				return nil
			}
			return c.finishClear()
		}))
	})
	return nil
}

// finishClear removes the cover and locks the card. c.mu must be held.
func (c *Card) finishClear() []func() {
	c.clearTimer = nil
	c.cover.SetTransition(surface.Transition{})
	c.cover.Clear()
	c.cover.SetCompositeOp(surface.SourceOver)
	c.coverage.invalidate()
	c.done = false
	c.locked = true
	c.gesture.end()
	c.setState(StateCleared)

	if fn := c.cfg.OnSuccess; fn != nil {
		return []func(){fn}
	}
	return nil
}

// setLock applies a lock change. c.mu must be held.
func (c *Card) setLock(locked bool) {
	c.locked = locked
	if locked {
		c.reward.SetOpacity(0)
		c.gesture.end()
		if c.state == StateReady || c.state == StateStroking {
			c.setState(StateLocked)
		}
		return
	}
	c.reward.SetOpacity(1)
	if c.state == StateLocked || c.state == StateCleared {
		c.setState(StateReady)
	}
}

// unlockIfPainted unlocks the card once every paint of the current
// generation has finished, unless SetLock was called meanwhile. c.mu must
// be held.
func (c *Card) unlockIfPainted() []func() {
	if c.painting && c.pending == 0 {
		c.painting = false
		c.setLock(false)
	}
	return nil
}

func (c *Card) stopTimers() {
	if c.rewardTimer != nil {
		c.rewardTimer.Stop()
		c.rewardTimer = nil
	}
	if c.clearTimer != nil {
		c.clearTimer.Stop()
		c.clearTimer = nil
	}
}

func (c *Card) setState(s State) {
	if c.state == s {
		return
	}
	c.log.Debug("scratch: state", slog.String("from", c.state.String()), slog.String("to", s.String()))
	c.state = s
}

// update runs fn with c.mu held and returns the callbacks it collected.
func (c *Card) update(fn func() []func()) []func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}

// emit runs callbacks without the lock. A panicking callback is logged
// and does not stop the others.
func (c *Card) emit(fns []func()) {
	for _, fn := range fns {
		c.call(fn)
	}
}

func (c *Card) call(fn func()) {
	defer c.recoverPanic("callback")
	fn()
}

func (c *Card) recoverPanic(what string) {
	if r := recover(); r != nil {
		c.log.Warn("scratch: recovered panic", slog.String("in", what), slog.Any("panic", r))
	}
}
