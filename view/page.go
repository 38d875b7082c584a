// Package view renders the coordinator's display into an HTML document.
//
// The page keeps the element ids of the browser front end, so a snapshot
// can be served or diffed against it.
package view

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/zhlive"
	"golang.org/x/net/html"
)

//go:embed page.html
var pageTemplate string

// Element ids of the page.
const (
	IDInput           = "inputText"
	IDSource          = "sourceText"
	IDTranslation     = "translationText"
	IDPronunciation   = "pronunciationText"
	IDVariantToggle   = "chineseVariantToggle"
	IDToggleLabel     = "toggleLabel"
	IDCopy            = "copyButton"
	IDCopySource      = "copySourceButton"
	IDCopyTranslation = "copyTranslationButton"
	IDShareURL        = "shareUrl"
	IDShareCopy       = "shareCopyButton"
)

// HighlightClass is set on a button while its highlight is on.
const HighlightClass = "highlight"

var fieldIDs = map[zhlive.Field]string{
	zhlive.FieldSource:        IDSource,
	zhlive.FieldTranslation:   IDTranslation,
	zhlive.FieldPronunciation: IDPronunciation,
}

var widgetIDs = map[zhlive.Widget]string{
	zhlive.WidgetCopy:            IDCopy,
	zhlive.WidgetCopySource:      IDCopySource,
	zhlive.WidgetCopyTranslation: IDCopyTranslation,
	zhlive.WidgetShareCopy:       IDShareCopy,
}

// Page is an in-memory HTML page implementing zhlive.Display.
type Page struct {
	mu   sync.Mutex
	root *html.Node
	doc  *goquery.Document
}

// NewPage parses the page template.
func NewPage() (*Page, error) {
	root, err := html.Parse(strings.NewReader(pageTemplate))
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	p := &Page{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
	}
	for _, id := range []string{IDInput, IDSource, IDTranslation, IDToggleLabel, IDCopy} {
		if p.byID(id).Length() == 0 {
			return nil, fmt.Errorf("page template has no #%s element", id)
		}
	}
	return p, nil
}

func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find("#" + id)
}

// SetInput mirrors the input box content.
func (p *Page) SetInput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID(IDInput).SetText(text)
}

// SetField implements zhlive.Display.
func (p *Page) SetField(field zhlive.Field, text string) {
	id, ok := fieldIDs[field]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID(id).SetText(text)
}

// SetVariantLabel implements zhlive.Display. The switch state and the
// document language follow the label.
func (p *Page) SetVariantLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.byID(IDToggleLabel).SetText(label)

	variant := zhlive.Simplified
	if label == zhlive.Traditional.Label() {
		variant = zhlive.Traditional
	}

	toggle := p.byID(IDVariantToggle)
	if variant == zhlive.Traditional {
		toggle.SetAttr("checked", "")
	} else {
		toggle.RemoveAttr("checked")
	}
	p.doc.Find("html").SetAttr("lang", variant.HTMLLang())
}

// SetHighlight implements zhlive.Display.
func (p *Page) SetHighlight(widget zhlive.Widget, on bool) {
	id, ok := widgetIDs[widget]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if on {
		p.byID(id).AddClass(HighlightClass)
	} else {
		p.byID(id).RemoveClass(HighlightClass)
	}
}

// ShowShareURL implements zhlive.Display.
func (p *Page) ShowShareURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.byID(IDShareURL).SetAttr("value", url)
	p.doc.Find("section.share").RemoveAttr("hidden")
}

// Text returns the text content of the element with the given id.
func (p *Page) Text(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byID(id).Text()
}

// Highlighted reports whether the element with the given id is highlighted.
func (p *Page) Highlighted(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byID(id).HasClass(HighlightClass)
}

// HTML renders the whole document.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var buf bytes.Buffer
	if err := html.Render(&buf, p.root); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

// Verify Page implements Display
var _ zhlive.Display = (*Page)(nil)
