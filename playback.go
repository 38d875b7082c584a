package zhlive

import (
	"context"

	"github.com/abadojack/whatlanggo"
)

// playbackSlot is the single active utterance.
type playbackSlot struct {
	id uint64
	pb Playback
}

// SpeakSource speaks the displayed source text with the local synthesizer.
func (c *Coordinator) SpeakSource(ctx context.Context) {
	c.mu.Lock()
	text := c.shown.SourceText
	c.mu.Unlock()

	c.speakLocal(ctx, text)
}

// SpeakTranslation fetches audio for the displayed translation from the
// backend and plays it.
func (c *Coordinator) SpeakTranslation(ctx context.Context) {
	c.mu.Lock()
	text := c.shown.Translation
	state := c.state
	lang := c.target.SpeakLang()
	c.mu.Unlock()

	if state != StateDisplayed {
		c.logger.Debugw("no translation to speak", "state", state.String())
		return
	}
	c.speakRemote(ctx, text, lang)
}

// Speak speaks arbitrary text. Chinese text is synthesized by the backend in
// the current variant; anything else goes to the local synthesizer.
func (c *Coordinator) Speak(ctx context.Context, text string) {
	if whatlanggo.DetectLang(text) != whatlanggo.Cmn {
		c.speakLocal(ctx, text)
		return
	}

	c.mu.Lock()
	lang := c.target.SpeakLang()
	c.mu.Unlock()

	c.speakRemote(ctx, text, lang)
}

// Stop stops the active utterance and drops any speak request still waiting
// for audio.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.speakSeq++
	c.stopActiveLocked()
}

// WaitPlayback blocks until no utterance holds the playback slot.
func (c *Coordinator) WaitPlayback() {
	for {
		c.mu.Lock()
		slot := c.active
		c.mu.Unlock()

		if slot == nil {
			return
		}
		<-slot.pb.Done()

		c.mu.Lock()
		if c.active == slot {
			c.active = nil
		}
		c.mu.Unlock()
	}
}

// Playing reports whether an utterance holds the playback slot.
func (c *Coordinator) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

func (c *Coordinator) speakLocal(ctx context.Context, text string) {
	if ctx.Err() != nil {
		return
	}
	if isBlank(text) {
		c.logger.Debugw("nothing to speak")
		return
	}
	if c.speech == nil {
		c.logger.Errorw("playback failed", "error", &PlaybackError{Message: "no speech synthesizer configured"})
		return
	}

	id := c.beginSpeak()
	err := c.startPlayback(id, func() (Playback, error) {
		return c.speech.Speak(c.ctx, text, SourceLang)
	})
	if err != nil {
		c.logger.Errorw("playback failed", "error", err, "lang", SourceLang)
	}
}

func (c *Coordinator) speakRemote(ctx context.Context, text, lang string) {
	if isBlank(text) {
		c.logger.Debugw("nothing to speak")
		return
	}
	if c.player == nil {
		c.logger.Errorw("playback failed", "error", &PlaybackError{Message: "no audio player configured"})
		return
	}

	id := c.beginSpeak()
	audio, err := c.backend.Speak(ctx, SpeakRequest{Text: text, Lang: lang})
	if err != nil {
		c.logger.Errorw("speech request failed", "error", err, "lang", lang)
		return
	}

	err = c.startPlayback(id, func() (Playback, error) {
		return c.player.Play(c.ctx, audio)
	})
	if err != nil {
		c.logger.Errorw("playback failed", "error", err, "lang", lang)
	}
}

// beginSpeak registers a new speak request and silences the current one.
func (c *Coordinator) beginSpeak() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.speakSeq++
	c.stopActiveLocked()
	return c.speakSeq
}

// startPlayback starts request id in the playback slot unless a newer
// request has been made. start runs with the lock held, so at most one
// handle exists at any time.
func (c *Coordinator) startPlayback(id uint64, start func() (Playback, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || id != c.speakSeq {
		c.logger.Debugw("discarding superseded utterance", "id", id, "latest", c.speakSeq)
		return nil
	}

	c.stopActiveLocked()

	pb, err := start()
	if err != nil {
		return &PlaybackError{Message: "start failed", Cause: err}
	}

	c.active = &playbackSlot{id: id, pb: pb}
	go c.release(id, pb)
	return nil
}

// release frees the slot once playback id finishes on its own.
func (c *Coordinator) release(id uint64, pb Playback) {
	<-pb.Done()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil && c.active.id == id {
		c.active = nil
	}
}

// stopActiveLocked stops the active utterance and waits until its resources
// are released. release only takes the lock after Done, so waiting here
// cannot deadlock.
func (c *Coordinator) stopActiveLocked() {
	if c.active == nil {
		return
	}
	pb := c.active.pb
	c.active = nil

	pb.Stop()
	<-pb.Done()
}
