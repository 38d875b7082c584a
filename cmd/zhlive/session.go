package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZaguanLabs/zhlive"
	"github.com/ZaguanLabs/zhlive/view"
)

const helpText = `Type English text; each line replaces the input box.
Commands:
  /simplified         translate to Simplified Chinese
  /traditional        translate to Traditional Chinese
  /toggle             switch between the two variants
  /speak              speak the translation
  /speak-source       speak the English source
  /say <text>         speak any text, English locally, Chinese via the service
  /copy               copy source and translation
  /copy-source        copy the source
  /copy-translation   copy the translation
  /share              create a share link
  /copy-link          copy the last share link
  /stop               stop speaking
  /quit               exit
`

// session feeds stdin lines to the coordinator.
type session struct {
	c      *zhlive.Coordinator
	page   *view.Page
	stderr io.Writer
}

// run processes input until EOF or /quit, then flushes the pending
// translation and waits for it. At EOF it also lets the current utterance
// play to the end; /quit does not wait.
func (s *session) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	quit := false
	for !quit && scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "/") {
			quit = s.command(ctx, line)
			continue
		}
		s.input(line)
	}

	s.settle()
	if !quit {
		s.c.WaitPlayback()
	}
	return scanner.Err()
}

func (s *session) input(text string) {
	if s.page != nil {
		s.page.SetInput(text)
	}
	s.c.Input(text)
}

// settle translates pending input now and waits for the result, so
// commands act on what was typed before them.
func (s *session) settle() {
	s.c.Flush()
	s.c.Wait()
}

// command runs one slash command and reports whether to quit.
func (s *session) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")

	switch name {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(s.stderr, helpText)
	case "simplified":
		s.c.SetVariant(zhlive.Simplified)
		s.c.Wait()
	case "traditional":
		s.c.SetVariant(zhlive.Traditional)
		s.c.Wait()
	case "toggle":
		s.c.SetVariant(s.c.Variant().Toggle())
		s.c.Wait()
	case "speak":
		s.settle()
		s.c.SpeakTranslation(ctx)
	case "speak-source":
		s.settle()
		s.c.SpeakSource(ctx)
	case "say":
		s.c.Speak(ctx, arg)
	case "copy":
		s.settle()
		s.c.Copy()
	case "copy-source":
		s.settle()
		s.c.CopySource()
	case "copy-translation":
		s.settle()
		s.c.CopyTranslation()
	case "share":
		s.settle()
		s.c.Share(ctx)
	case "copy-link":
		url := s.c.ShareURL()
		if url == "" {
			fmt.Fprintln(s.stderr, "no share link yet, use /share first")
			break
		}
		s.c.CopyShareURL(url)
	case "stop":
		s.c.Stop()
	default:
		fmt.Fprintf(s.stderr, "unknown command %q, try /help\n", "/"+name)
	}
	return false
}
