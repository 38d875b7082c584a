// Package local provides the audio and clipboard capabilities of the host:
// external player and speech commands, and the system clipboard.
package local

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/ZaguanLabs/zhlive"
)

// Placeholders substituted in command templates.
const (
	PlaceholderFile = "{file}"
	PlaceholderText = "{text}"
	PlaceholderLang = "{lang}"
)

// expand splits a command template into arguments and substitutes
// placeholder/value pairs in each argument. Substituted values never split
// and are not expanded again.
func expand(template string, oldnew ...string) []string {
	r := strings.NewReplacer(oldnew...)
	fields := strings.Fields(template)
	args := make([]string, 0, len(fields))
	for _, f := range fields {
		args = append(args, r.Replace(f))
	}
	return args
}

func hasPlaceholder(template, placeholder string) bool {
	return strings.Contains(template, placeholder)
}

// process is a running command. It implements zhlive.Playback.
type process struct {
	cmd     *exec.Cmd
	done    chan struct{}
	stop    sync.Once
	cleanup func()
}

// startProcess starts args and reaps it in the background. cleanup runs
// once the process has exited.
func startProcess(args []string, cleanup func()) (*process, error) {
	if len(args) == 0 {
		return nil, &zhlive.PlaybackError{Message: "empty command"}
	}

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, &zhlive.PlaybackError{Message: fmt.Sprintf("start %s", args[0]), Cause: err}
	}

	p := &process{cmd: cmd, done: make(chan struct{}), cleanup: cleanup}
	go func() {
		cmd.Wait()
		if p.cleanup != nil {
			p.cleanup()
		}
		close(p.done)
	}()
	return p, nil
}

// Stop kills the process if it is still running.
func (p *process) Stop() {
	p.stop.Do(func() {
		select {
		case <-p.done:
		default:
			p.cmd.Process.Kill()
		}
	})
}

// Done is closed when the process has exited and its resources are freed.
func (p *process) Done() <-chan struct{} {
	return p.done
}

func removeFile(path string) func() {
	return func() {
		os.Remove(path)
	}
}

var _ zhlive.Playback = (*process)(nil)
