package zhlive

import (
	"context"
	"strings"
)

// User-visible placeholder and error messages.
const (
	MsgTranslating        = "Translating…"
	MsgServiceUnavailable = "Translation service unavailable"
	MsgTranslationError   = "Translation error occurred"
)

// SourceLang is the only supported source language.
const SourceLang = "en"

// Field identifies a text area of the display.
type Field int

const (
	FieldSource Field = iota
	FieldTranslation
	FieldPronunciation
)

func (f Field) String() string {
	switch f {
	case FieldSource:
		return "source"
	case FieldTranslation:
		return "translation"
	case FieldPronunciation:
		return "pronunciation"
	}
	return "unknown"
}

// Widget identifies a control that can flash a highlight after an action.
type Widget int

const (
	WidgetCopy Widget = iota // copies source and translation together
	WidgetCopySource
	WidgetCopyTranslation
	WidgetShareCopy
)

func (w Widget) String() string {
	switch w {
	case WidgetCopy:
		return "copy"
	case WidgetCopySource:
		return "copy-source"
	case WidgetCopyTranslation:
		return "copy-translation"
	case WidgetShareCopy:
		return "share-copy"
	}
	return "unknown"
}

// DisplayState is the state of the translation display.
type DisplayState int

const (
	StateIdle DisplayState = iota
	StateTranslating
	StateDisplayed
	StateError
)

func (s DisplayState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTranslating:
		return "translating"
	case StateDisplayed:
		return "displayed"
	case StateError:
		return "error"
	}
	return "unknown"
}

// TranslationResult is the triple shown after a successful translation.
type TranslationResult struct {
	SourceText    string `json:"source_text"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

// TranslateRequest is the body of a /translate call.
type TranslateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// SpeakRequest is the body of a /speak call.
type SpeakRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// ShareRequest is the body of a /share call.
type ShareRequest struct {
	SourceText    string `json:"source_text"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

// Audio is a synthesized utterance returned by the backend.
type Audio struct {
	Data        []byte
	ContentType string
}

// Backend is the interface for the remote translation service.
type Backend interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error)
	Speak(ctx context.Context, req SpeakRequest) (*Audio, error)
	Share(ctx context.Context, req ShareRequest) (string, error)
}

// Display is the sink the coordinator renders into.
// Implementations must not call back into the coordinator.
type Display interface {
	SetField(field Field, text string)
	SetVariantLabel(label string)
	SetHighlight(widget Widget, on bool)
	ShowShareURL(url string)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Playback is a handle on a running utterance.
type Playback interface {
	// Stop interrupts playback. It is safe to call more than once.
	Stop()
	// Done is closed once playback has finished or been stopped and its
	// resources have been released.
	Done() <-chan struct{}
}

// Player plays audio bytes fetched from the backend.
type Player interface {
	Play(ctx context.Context, audio *Audio) (Playback, error)
}

// Synthesizer speaks text locally without a network call.
type Synthesizer interface {
	Speak(ctx context.Context, text string, lang string) (Playback, error)
}

// isBlank reports whether text is empty or whitespace-only.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
