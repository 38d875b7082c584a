package local

import (
	"context"

	"github.com/ZaguanLabs/zhlive"
)

// DefaultSpeechCommand speaks text with espeak. "--" keeps text starting
// with a dash from being read as an option.
const DefaultSpeechCommand = "espeak -v {lang} -- {text}"

// ExecSynthesizer speaks text by running an external speech command.
type ExecSynthesizer struct {
	command string
}

// NewExecSynthesizer creates a synthesizer from a command template with
// {text} and optional {lang} placeholders. Without {text} the text is
// appended after "--".
func NewExecSynthesizer(command string) *ExecSynthesizer {
	if command == "" {
		command = DefaultSpeechCommand
	}
	if !hasPlaceholder(command, PlaceholderText) {
		command += " -- " + PlaceholderText
	}
	return &ExecSynthesizer{command: command}
}

// Speak implements zhlive.Synthesizer.
func (s *ExecSynthesizer) Speak(ctx context.Context, text string, lang string) (zhlive.Playback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return startProcess(expand(s.command, PlaceholderText, text, PlaceholderLang, lang), nil)
}

// Verify ExecSynthesizer implements Synthesizer
var _ zhlive.Synthesizer = (*ExecSynthesizer)(nil)
