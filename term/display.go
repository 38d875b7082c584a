// Package term renders the coordinator's display as lines on a terminal.
package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/ZaguanLabs/zhlive"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the terminal display.
type Theme struct {
	Primary lipgloss.Color // Field labels and the variant
	Dim     lipgloss.Color // Placeholders and notices
	Error   lipgloss.Color // Error messages
}

// DefaultTheme matches the browser front end.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Error:   lipgloss.Color("#ff5f5f"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Label   lipgloss.Style
	Variant lipgloss.Style
	Notice  lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles from a theme for the given renderer.
func NewStyles(r *lipgloss.Renderer, t Theme) Styles {
	return Styles{
		Label:   r.NewStyle().Bold(true).Foreground(t.Primary),
		Variant: r.NewStyle().Foreground(t.Primary),
		Notice:  r.NewStyle().Foreground(t.Dim),
		Error:   r.NewStyle().Bold(true).Foreground(t.Error),
	}
}

// Display writes one line per display change. It implements zhlive.Display.
type Display struct {
	mu     sync.Mutex
	w      io.Writer
	styles Styles
	fields map[zhlive.Field]string
}

// NewDisplay creates a display writing to w. Colors are only emitted when w
// is a terminal that supports them.
func NewDisplay(w io.Writer) *Display {
	return &Display{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w), DefaultTheme),
		fields: make(map[zhlive.Field]string),
	}
}

// SetField implements zhlive.Display. Unchanged values are not repeated.
func (d *Display) SetField(field zhlive.Field, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.fields[field]; ok && prev == text {
		return
	}
	d.fields[field] = text
	if text == "" {
		return
	}

	value := text
	switch text {
	case zhlive.MsgTranslating:
		value = d.styles.Notice.Render(text)
	case zhlive.MsgServiceUnavailable, zhlive.MsgTranslationError:
		value = d.styles.Error.Render(text)
	}
	d.printf("%s %s\n", d.styles.Label.Render(fmt.Sprintf("%-14s", field.String()+":")), value)
}

// SetVariantLabel implements zhlive.Display.
func (d *Display) SetVariantLabel(label string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf("%s\n", d.styles.Variant.Render("["+label+"]"))
}

// SetHighlight implements zhlive.Display. Only the start of a highlight is
// printed.
func (d *Display) SetHighlight(widget zhlive.Widget, on bool) {
	if !on {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf("%s\n", d.styles.Notice.Render("copied ("+widget.String()+")"))
}

// ShowShareURL implements zhlive.Display.
func (d *Display) ShowShareURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf("%s %s\n", d.styles.Label.Render(fmt.Sprintf("%-14s", "share:")), url)
}

func (d *Display) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.w, format, args...)
}

// Verify Display implements zhlive.Display
var _ zhlive.Display = (*Display)(nil)
