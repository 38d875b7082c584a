package local

import (
	"context"
	"os"

	"github.com/ZaguanLabs/zhlive"
)

// DefaultPlayerCommand plays an audio file without a window.
const DefaultPlayerCommand = "ffplay -nodisp -autoexit -loglevel quiet {file}"

var audioExtensions = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/ogg":   ".ogg",
	"audio/webm":  ".webm",
}

// ExecPlayer plays audio by writing it to a temporary file and running an
// external player on it. The file is removed when playback ends.
type ExecPlayer struct {
	command string
}

// NewExecPlayer creates a player from a command template. The template's
// {file} placeholder is replaced by the audio file path; without one the
// path is appended.
func NewExecPlayer(command string) *ExecPlayer {
	if command == "" {
		command = DefaultPlayerCommand
	}
	if !hasPlaceholder(command, PlaceholderFile) {
		command += " " + PlaceholderFile
	}
	return &ExecPlayer{command: command}
}

// Play implements zhlive.Player.
func (p *ExecPlayer) Play(ctx context.Context, audio *zhlive.Audio) (zhlive.Playback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil, &zhlive.PlaybackError{Message: "no audio data"}
	}

	ext, ok := audioExtensions[audio.ContentType]
	if !ok {
		ext = ".mp3"
	}

	f, err := os.CreateTemp("", "zhlive-*"+ext)
	if err != nil {
		return nil, &zhlive.PlaybackError{Message: "create audio file", Cause: err}
	}
	path := f.Name()

	_, err = f.Write(audio.Data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, &zhlive.PlaybackError{Message: "write audio file", Cause: err}
	}

	pb, err := startProcess(expand(p.command, PlaceholderFile, path), removeFile(path))
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return pb, nil
}

// Verify ExecPlayer implements Player
var _ zhlive.Player = (*ExecPlayer)(nil)
