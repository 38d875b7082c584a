package zhlive

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeBackend answers from a fixed dictionary and records every call.
type fakeBackend struct {
	mu           sync.Mutex
	translations map[string]string // "target|text" -> translation
	translateErr error
	speakErr     error
	shareURL     string
	shareErr     error

	// translateHook runs before Translate answers; it may block.
	translateHook func(ctx context.Context, req TranslateRequest)

	translates []TranslateRequest
	speaks     []SpeakRequest
	shares     []ShareRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		translations: map[string]string{
			"zh|hello":           "你好",
			"zh|hello world":     "你好世界",
			"zh-TW|hello":        "你好",
			"zh-TW|hello world":  "你好世界",
			"zh|good morning":    "早上好",
			"zh-TW|good morning": "早安",
		},
		shareURL: "https://zhlive.example/s/abc123",
	}
}

func (b *fakeBackend) Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error) {
	b.mu.Lock()
	b.translates = append(b.translates, req)
	hook := b.translateHook
	b.mu.Unlock()

	if hook != nil {
		hook(ctx, req)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.translateErr != nil {
		return nil, b.translateErr
	}

	translation, ok := b.translations[req.Target+"|"+req.Text]
	if !ok {
		translation = fmt.Sprintf("[%s:%s]", req.Target, req.Text)
	}
	return &TranslationResult{
		SourceText:    req.Text,
		Translation:   translation,
		Pronunciation: "pinyin(" + translation + ")",
	}, nil
}

func (b *fakeBackend) Speak(ctx context.Context, req SpeakRequest) (*Audio, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.speaks = append(b.speaks, req)
	if b.speakErr != nil {
		return nil, b.speakErr
	}
	return &Audio{Data: []byte(req.Text), ContentType: "audio/mpeg"}, nil
}

func (b *fakeBackend) Share(ctx context.Context, req ShareRequest) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shares = append(b.shares, req)
	if b.shareErr != nil {
		return "", b.shareErr
	}
	return b.shareURL, nil
}

func (b *fakeBackend) translateCalls() []TranslateRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]TranslateRequest(nil), b.translates...)
}

func (b *fakeBackend) speakCalls() []SpeakRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SpeakRequest(nil), b.speaks...)
}

func (b *fakeBackend) shareCalls() []ShareRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ShareRequest(nil), b.shares...)
}

// fakeDisplay records what the coordinator renders.
type fakeDisplay struct {
	mu         sync.Mutex
	fields     map[Field]string
	label      string
	highlights map[Widget]bool
	shareURL   string
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		fields:     make(map[Field]string),
		highlights: make(map[Widget]bool),
	}
}

func (d *fakeDisplay) SetField(field Field, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[field] = text
}

func (d *fakeDisplay) SetVariantLabel(label string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.label = label
}

func (d *fakeDisplay) SetHighlight(widget Widget, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.highlights[widget] = on
}

func (d *fakeDisplay) ShowShareURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shareURL = url
}

func (d *fakeDisplay) field(f Field) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[f]
}

func (d *fakeDisplay) variantLabel() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.label
}

func (d *fakeDisplay) highlighted(w Widget) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.highlights[w]
}

func (d *fakeDisplay) sharedURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shareURL
}

// fakeClipboard records copied text or fails on demand.
type fakeClipboard struct {
	mu      sync.Mutex
	err     error
	panicOn bool
	texts   []string
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.panicOn {
		panic("clipboard exploded")
	}
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

func (c *fakeClipboard) copied() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

// eventLog collects playback events in order and tracks live handles.
type eventLog struct {
	mu      sync.Mutex
	events  []string
	live    int
	maxLive int
}

func (l *eventLog) add(event string, delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	l.live += delta
	if l.live > l.maxLive {
		l.maxLive = l.live
	}
}

func (l *eventLog) snapshot() ([]string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...), l.maxLive
}

type fakePlayback struct {
	name string
	log  *eventLog
	once sync.Once
	done chan struct{}
}

func newFakePlayback(name string, log *eventLog) *fakePlayback {
	log.add("start:"+name, 1)
	return &fakePlayback{name: name, log: log, done: make(chan struct{})}
}

func (p *fakePlayback) Stop() {
	p.once.Do(func() {
		p.log.add("stop:"+p.name, -1)
		close(p.done)
	})
}

// finish ends playback as if the utterance was over.
func (p *fakePlayback) finish() {
	p.once.Do(func() {
		p.log.add("end:"+p.name, -1)
		close(p.done)
	})
}

func (p *fakePlayback) Done() <-chan struct{} {
	return p.done
}

type fakePlayer struct {
	log       *eventLog
	err       error
	mu        sync.Mutex
	playbacks []*fakePlayback
}

func (p *fakePlayer) Play(ctx context.Context, audio *Audio) (Playback, error) {
	if p.err != nil {
		return nil, p.err
	}
	pb := newFakePlayback(string(audio.Data), p.log)

	p.mu.Lock()
	p.playbacks = append(p.playbacks, pb)
	p.mu.Unlock()
	return pb, nil
}

func (p *fakePlayer) last() *fakePlayback {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playbacks) == 0 {
		return nil
	}
	return p.playbacks[len(p.playbacks)-1]
}

type fakeSynth struct {
	log   *eventLog
	mu    sync.Mutex
	langs []string
}

func (s *fakeSynth) Speak(ctx context.Context, text string, lang string) (Playback, error) {
	s.mu.Lock()
	s.langs = append(s.langs, lang)
	s.mu.Unlock()
	return newFakePlayback(text, s.log), nil
}

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

// manualEpoch is the wall time of a manual clock that was never advanced.
var manualEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return manualEpoch.Add(c.now)
}

// waiting returns the number of timers that have not fired or been stopped.
func (c *manualClock) waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs the timers that became due, in order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	var rest []*manualTimer
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case t.at <= c.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// waitFor polls cond until it holds or the test times out.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// lingeringPlayback releases its resources a little after Stop, like a
// process that takes time to exit.
type lingeringPlayback struct {
	once sync.Once
	done chan struct{}
}

func (p *lingeringPlayback) Stop() {
	p.once.Do(func() {
		go func() {
			time.Sleep(20 * time.Millisecond)
			close(p.done)
		}()
	})
}

func (p *lingeringPlayback) Done() <-chan struct{} {
	return p.done
}

// lingeringPlayer counts plays that started while an earlier handle was
// still holding its resources.
type lingeringPlayer struct {
	mu       sync.Mutex
	handles  []*lingeringPlayback
	overlaps int
}

func (p *lingeringPlayer) Play(ctx context.Context, audio *Audio) (Playback, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range p.handles {
		select {
		case <-h.done:
		default:
			p.overlaps++
		}
	}
	pb := &lingeringPlayback{done: make(chan struct{})}
	p.handles = append(p.handles, pb)
	return pb, nil
}

func (p *lingeringPlayer) stats() (plays, overlaps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles), p.overlaps
}
