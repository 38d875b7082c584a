package term

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/zhlive"
	"github.com/ZaguanLabs/zhlive/backend"
)

func line(label, value string) string {
	return fmt.Sprintf("%-14s %s\n", label+":", value)
}

func TestDisplay_Fields(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	d.SetField(zhlive.FieldSource, "hello")
	d.SetField(zhlive.FieldTranslation, zhlive.MsgTranslating)
	d.SetField(zhlive.FieldPronunciation, "")
	d.SetField(zhlive.FieldTranslation, "你好")
	d.SetField(zhlive.FieldPronunciation, "nǐ hǎo")

	want := line("source", "hello") +
		line("translation", "Translating…") +
		line("translation", "你好") +
		line("pronunciation", "nǐ hǎo")
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestDisplay_SkipsUnchanged(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	d.SetField(zhlive.FieldSource, "hello")
	d.SetField(zhlive.FieldSource, "hello")

	if got := strings.Count(buf.String(), "hello"); got != 1 {
		t.Errorf("expected one line, output:\n%s", buf.String())
	}
}

func TestDisplay_Notices(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	d.SetVariantLabel("Traditional Chinese")
	d.SetHighlight(zhlive.WidgetCopy, true)
	d.SetHighlight(zhlive.WidgetCopy, false)
	d.ShowShareURL("https://zhlive.example/s/x1")

	want := "[Traditional Chinese]\n" +
		"copied (copy)\n" +
		line("share", "https://zhlive.example/s/x1")
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestDisplay_WithCoordinator(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	c := zhlive.NewCoordinator(backend.NewMockBackend(), d, zhlive.WithDebounce(time.Hour))
	defer c.Close()

	c.Input("hello world")
	c.Flush()
	c.Wait()

	out := buf.String()
	for _, want := range []string{"[Simplified Chinese]", line("source", "hello world"), line("translation", "你好世界")} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
