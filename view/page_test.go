package view

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/zhlive"
	"github.com/ZaguanLabs/zhlive/backend"
)

func newPage(t *testing.T) *Page {
	t.Helper()
	p, err := NewPage()
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	return p
}

func TestPage_SetField(t *testing.T) {
	p := newPage(t)

	p.SetField(zhlive.FieldSource, "hello")
	p.SetField(zhlive.FieldTranslation, "你好")
	p.SetField(zhlive.FieldPronunciation, "nǐ hǎo")

	tests := map[string]string{
		IDSource:        "hello",
		IDTranslation:   "你好",
		IDPronunciation: "nǐ hǎo",
	}
	for id, want := range tests {
		if got := p.Text(id); got != want {
			t.Errorf("#%s = %q, want %q", id, got, want)
		}
	}

	p.SetField(zhlive.FieldPronunciation, "")
	if got := p.Text(IDPronunciation); got != "" {
		t.Errorf("pronunciation = %q, want empty", got)
	}
}

func TestPage_SetInputEscapes(t *testing.T) {
	p := newPage(t)
	p.SetInput("a <b> & c")

	if got := p.Text(IDInput); got != "a <b> & c" {
		t.Errorf("input = %q", got)
	}

	out, err := p.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(out, "a &lt;b&gt; &amp; c") {
		t.Errorf("input text should be escaped in output:\n%s", out)
	}
}

func TestPage_VariantLabel(t *testing.T) {
	p := newPage(t)

	p.SetVariantLabel(zhlive.Traditional.Label())
	out, _ := p.HTML()

	if got := p.Text(IDToggleLabel); got != "Traditional Chinese" {
		t.Errorf("label = %q", got)
	}
	if !strings.Contains(out, `<html lang="zh-TW">`) {
		t.Errorf("expected zh-TW document language:\n%s", out)
	}
	if !strings.Contains(out, `id="chineseVariantToggle" checked=""`) {
		t.Errorf("expected checked switch:\n%s", out)
	}

	p.SetVariantLabel(zhlive.Simplified.Label())
	out, _ = p.HTML()

	if !strings.Contains(out, `<html lang="zh-CN">`) {
		t.Errorf("expected zh-CN document language:\n%s", out)
	}
	if strings.Contains(out, "checked") {
		t.Errorf("switch should be unchecked:\n%s", out)
	}
}

func TestPage_Highlight(t *testing.T) {
	p := newPage(t)

	p.SetHighlight(zhlive.WidgetCopy, true)
	p.SetHighlight(zhlive.WidgetShareCopy, true)
	if !p.Highlighted(IDCopy) || !p.Highlighted(IDShareCopy) {
		t.Fatal("expected highlighted buttons")
	}
	if p.Highlighted(IDCopySource) {
		t.Error("unrelated button highlighted")
	}

	p.SetHighlight(zhlive.WidgetCopy, false)
	if p.Highlighted(IDCopy) {
		t.Error("highlight should be removed")
	}
}

func TestPage_ShowShareURL(t *testing.T) {
	p := newPage(t)

	out, _ := p.HTML()
	if !strings.Contains(out, `<section class="share" hidden="">`) {
		t.Fatalf("share section should start hidden:\n%s", out)
	}

	p.ShowShareURL("https://zhlive.example/s/x1")
	out, _ = p.HTML()

	if !strings.Contains(out, `value="https://zhlive.example/s/x1"`) {
		t.Errorf("share url missing:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("share section should be visible:\n%s", out)
	}
}

func TestPage_WithCoordinator(t *testing.T) {
	p := newPage(t)
	mock := backend.NewMockBackend()

	c := zhlive.NewCoordinator(mock, p,
		zhlive.WithDebounce(time.Hour),
		zhlive.WithVariant(zhlive.Traditional),
	)
	defer c.Close()

	p.SetInput("thank you")
	c.Input("thank you")
	c.Flush()
	c.Wait()

	if got := p.Text(IDSource); got != "thank you" {
		t.Errorf("source = %q", got)
	}
	if got := p.Text(IDTranslation); got != "謝謝" {
		t.Errorf("translation = %q", got)
	}
	if got := p.Text(IDToggleLabel); got != "Traditional Chinese" {
		t.Errorf("label = %q", got)
	}

	c.Share(context.Background())
	out, _ := p.HTML()
	if !strings.Contains(out, mock.ShareBaseURL) {
		t.Errorf("expected share url in page:\n%s", out)
	}
}
