package zhlive

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timings.
const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultCopyHighlight  = 1 * time.Second
	DefaultShareHighlight = 2 * time.Second
)

// Coordinator holds the state of one translation session and reacts to user
// events. All methods are safe for concurrent use; state changes and display
// writes are serialized.
type Coordinator struct {
	backend   Backend
	display   Display
	clipboard Clipboard
	player    Player
	speech    Synthesizer
	clock     Clock
	logger    *zap.SugaredLogger

	debounce       time.Duration
	copyHighlight  time.Duration
	shareHighlight time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	input     string
	target    Variant
	pending   Timer
	pendingID uint64
	seq       uint64 // latest translate task
	inflight  context.CancelFunc
	state     DisplayState
	shown     TranslationResult // mirror of the display fields

	speakSeq uint64 // latest speak request
	active   *playbackSlot
	shareURL string

	highlights   map[Widget]Timer
	highlightGen map[Widget]uint64
}

// Option is a functional option for configuring the Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for debounce and highlight timers.
func WithClock(clock Clock) Option {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDebounce sets the quiet period before a translation is requested.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		c.debounce = d
	}
}

// WithCopyHighlight sets how long a copy button stays highlighted.
func WithCopyHighlight(d time.Duration) Option {
	return func(c *Coordinator) {
		c.copyHighlight = d
	}
}

// WithShareHighlight sets how long the share-link copy button stays highlighted.
func WithShareHighlight(d time.Duration) Option {
	return func(c *Coordinator) {
		c.shareHighlight = d
	}
}

// WithClipboard sets the clipboard.
func WithClipboard(clipboard Clipboard) Option {
	return func(c *Coordinator) {
		c.clipboard = clipboard
	}
}

// WithPlayer sets the player for backend-synthesized audio.
func WithPlayer(player Player) Option {
	return func(c *Coordinator) {
		c.player = player
	}
}

// WithSynthesizer sets the local speech synthesizer used for English.
func WithSynthesizer(speech Synthesizer) Option {
	return func(c *Coordinator) {
		c.speech = speech
	}
}

// WithVariant sets the initial target variant.
func WithVariant(v Variant) Option {
	return func(c *Coordinator) {
		c.target = v
	}
}

// NewCoordinator creates a Coordinator for one session and publishes the
// initial variant label to the display.
func NewCoordinator(backend Backend, display Display, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend:        backend,
		display:        display,
		clock:          RealClock(),
		logger:         zap.NewNop().Sugar(),
		debounce:       DefaultDebounce,
		copyHighlight:  DefaultCopyHighlight,
		shareHighlight: DefaultShareHighlight,
		target:         Simplified,
		highlights:     make(map[Widget]Timer),
		highlightGen:   make(map[Widget]uint64),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.display.SetVariantLabel(c.target.Label())

	return c
}

// Input handles a change of the input box. The source field is updated
// immediately; the translation is requested once no further input arrives
// within the debounce period.
func (c *Coordinator) Input(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.input = text
	c.setFieldLocked(FieldSource, text)

	c.stopPendingLocked()
	c.pendingID++
	id := c.pendingID
	c.pending = c.clock.AfterFunc(c.debounce, func() {
		c.fire(id)
	})
}

// fire runs when a debounce timer expires.
func (c *Coordinator) fire(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer keystroke or a toggle got there first.
	if c.closed || c.pending == nil || id != c.pendingID {
		return
	}
	c.pending = nil
	c.translateLocked(c.input)
}

// Flush issues the pending debounced translation right away.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.pending == nil {
		return
	}
	c.stopPendingLocked()
	c.translateLocked(c.input)
}

// Toggle handles the variant switch: checked selects Traditional Chinese.
func (c *Coordinator) Toggle(traditional bool) {
	c.SetVariant(VariantFromSwitch(traditional))
}

// SetVariant changes the target variant. When the input box is not empty the
// text is translated again immediately under the new variant.
func (c *Coordinator) SetVariant(v Variant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.target = v
	c.display.SetVariantLabel(v.Label())
	c.logger.Infow("variant changed", "target", v.Code())

	if c.input != "" {
		c.stopPendingLocked()
		c.translateLocked(c.input)
	}
}

// translateLocked starts a translate task for text. Any earlier task is
// cancelled and its result will be discarded.
func (c *Coordinator) translateLocked(text string) {
	c.seq++
	seq := c.seq
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}

	if isBlank(text) {
		c.setFieldLocked(FieldSource, "")
		c.setFieldLocked(FieldTranslation, "")
		c.setFieldLocked(FieldPronunciation, "")
		c.state = StateIdle
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.inflight = cancel

	c.setFieldLocked(FieldTranslation, MsgTranslating)
	c.setFieldLocked(FieldPronunciation, "")
	c.state = StateTranslating

	req := TranslateRequest{
		Text:   text,
		Source: SourceLang,
		Target: c.target.Code(),
	}
	c.logger.Debugw("translate dispatched", "seq", seq, "target", req.Target, "length", len(text))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		result, err := c.backend.Translate(ctx, req)
		c.complete(seq, req, result, err)
	}()
}

// complete applies the outcome of translate task seq unless it was superseded.
func (c *Coordinator) complete(seq uint64, req TranslateRequest, result *TranslationResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		c.logger.Debugw("discarding stale translation", "seq", seq, "latest", c.seq)
		return
	}
	c.inflight = nil

	if err == nil && result == nil {
		err = &BackendError{Endpoint: "/translate", Message: "empty response"}
	}

	if err != nil {
		c.logger.Errorw("translation failed", "error", err, "seq", seq, "target", req.Target)
		c.setFieldLocked(FieldTranslation, userMessage(err))
		c.setFieldLocked(FieldPronunciation, "")
		c.state = StateError
		return
	}

	// Keystrokes typed since dispatch own the source field until they settle.
	if c.pending == nil {
		source := result.SourceText
		if source == "" {
			source = req.Text
		}
		c.setFieldLocked(FieldSource, source)
	}
	c.setFieldLocked(FieldTranslation, result.Translation)
	c.setFieldLocked(FieldPronunciation, result.Pronunciation)
	c.state = StateDisplayed
	c.logger.Debugw("translation displayed", "seq", seq, "target", req.Target)
}

func (c *Coordinator) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// setFieldLocked writes a display field and keeps the mirror in sync.
func (c *Coordinator) setFieldLocked(field Field, text string) {
	switch field {
	case FieldSource:
		c.shown.SourceText = text
	case FieldTranslation:
		c.shown.Translation = text
	case FieldPronunciation:
		c.shown.Pronunciation = text
	}
	c.display.SetField(field, text)
}

// State returns the state of the translation display.
func (c *Coordinator) State() DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Variant returns the current target variant.
func (c *Coordinator) Variant() Variant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Text returns the current content of the input box.
func (c *Coordinator) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Shown returns the text currently shown in the three display fields,
// including placeholder and error messages.
func (c *Coordinator) Shown() TranslationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}

// Wait blocks until all dispatched translate tasks have completed.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close stops timers and playback and cancels in-flight requests. The
// coordinator ignores all events afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopPendingLocked()
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
	c.stopActiveLocked()
	for w, t := range c.highlights {
		t.Stop()
		delete(c.highlights, w)
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
