package zhlive

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errNoClipboard = errors.New("no clipboard configured")

// Copy copies the displayed source and translation, one per line.
func (c *Coordinator) Copy() {
	c.mu.Lock()
	text := c.shown.SourceText + "\n" + c.shown.Translation
	c.mu.Unlock()

	c.copyText(WidgetCopy, text, c.copyHighlight)
}

// CopySource copies the displayed source text.
func (c *Coordinator) CopySource() {
	c.mu.Lock()
	text := c.shown.SourceText
	c.mu.Unlock()

	c.copyText(WidgetCopySource, text, c.copyHighlight)
}

// CopyTranslation copies the displayed translation.
func (c *Coordinator) CopyTranslation() {
	c.mu.Lock()
	text := c.shown.Translation
	c.mu.Unlock()

	c.copyText(WidgetCopyTranslation, text, c.copyHighlight)
}

// Share publishes the displayed translation and shows the returned link.
// Failures are logged only.
func (c *Coordinator) Share(ctx context.Context) {
	c.mu.Lock()
	state := c.state
	req := ShareRequest{
		SourceText:    c.shown.SourceText,
		Translation:   c.shown.Translation,
		Pronunciation: c.shown.Pronunciation,
	}
	c.mu.Unlock()

	if state != StateDisplayed {
		c.logger.Warnw("nothing to share", "state", state.String())
		return
	}

	url, err := c.backend.Share(ctx, req)
	if err != nil {
		c.logger.Errorw("share failed", "error", err)
		return
	}

	c.mu.Lock()
	if !c.closed {
		c.shareURL = url
		c.display.ShowShareURL(url)
	}
	c.mu.Unlock()

	c.logger.Infow("share link created", "url", url)
}

// ShareURL returns the last share link shown, or "" before the first share.
func (c *Coordinator) ShareURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shareURL
}

// CopyShareURL copies a share link and highlights the share copy button.
func (c *Coordinator) CopyShareURL(url string) {
	c.copyText(WidgetShareCopy, url, c.shareHighlight)
}

// copyText writes text to the clipboard and flashes widget on success.
// Clipboard failures, including panics, are logged and never reach the caller.
func (c *Coordinator) copyText(widget Widget, text string, hold time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorw("copy failed", "widget", widget.String(), "error", fmt.Sprint(r))
		}
	}()

	if c.clipboard == nil {
		c.logger.Errorw("copy failed", "widget", widget.String(), "error", errNoClipboard)
		return
	}

	if err := c.clipboard.WriteText(text); err != nil {
		c.logger.Errorw("copy failed", "widget", widget.String(), "error", err)
		return
	}

	c.flash(widget, hold)
}

// flash highlights widget for hold. A repeated flash restarts the period.
func (c *Coordinator) flash(widget Widget, hold time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if t := c.highlights[widget]; t != nil {
		t.Stop()
	}
	c.highlightGen[widget]++
	gen := c.highlightGen[widget]

	c.display.SetHighlight(widget, true)
	c.highlights[widget] = c.clock.AfterFunc(hold, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || c.highlightGen[widget] != gen {
			return
		}
		delete(c.highlights, widget)
		c.display.SetHighlight(widget, false)
	})
}
