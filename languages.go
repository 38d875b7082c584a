package zhlive

import (
	"fmt"
	"strings"
)

// Variant is a Chinese orthography selectable as translation target.
type Variant int

const (
	// Simplified is Simplified Chinese, the default target.
	Simplified Variant = iota
	// Traditional is Traditional Chinese.
	Traditional
)

// variantInfo holds the wire codes and labels of a variant.
type variantInfo struct {
	code      string // /translate target
	speakLang string // /speak lang
	label     string
	locale    string
}

var variants = map[Variant]variantInfo{
	Simplified:  {code: "zh", speakLang: "zh-cn", label: "Simplified Chinese", locale: "zh_CN"},
	Traditional: {code: "zh-TW", speakLang: "zh-tw", label: "Traditional Chinese", locale: "zh_TW"},
}

// variantAliases maps accepted spellings (lowercase, "_" normalized to "-")
// to variants.
var variantAliases = map[string]Variant{
	"zh":          Simplified,
	"zh-cn":       Simplified,
	"zh-hans":     Simplified,
	"zh-sg":       Simplified,
	"simplified":  Simplified,
	"zh-tw":       Traditional,
	"zh-hk":       Traditional,
	"zh-hant":     Traditional,
	"traditional": Traditional,
}

// VariantFromSwitch maps the state of the variant switch to a variant.
func VariantFromSwitch(traditional bool) Variant {
	if traditional {
		return Traditional
	}
	return Simplified
}

// ParseVariant parses a variant from a language code or a name.
func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(ToHTMLLang(s)))
	if v, ok := variantAliases[key]; ok {
		return v, nil
	}
	return Simplified, fmt.Errorf("unknown Chinese variant %q", s)
}

// Code returns the target code sent to /translate ("zh" or "zh-TW").
func (v Variant) Code() string {
	return variants[v].code
}

// SpeakLang returns the lang sent to /speak ("zh-cn" or "zh-tw").
func (v Variant) SpeakLang() string {
	return variants[v].speakLang
}

// Label returns the human-readable switch label.
func (v Variant) Label() string {
	return variants[v].label
}

// Locale returns the locale code (e.g. "zh_TW").
func (v Variant) Locale() string {
	return variants[v].locale
}

// HTMLLang returns the value for an HTML lang attribute (e.g. "zh-TW").
func (v Variant) HTMLLang() string {
	return ToHTMLLang(v.Locale())
}

func (v Variant) String() string {
	if info, ok := variants[v]; ok {
		return info.code
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Toggle returns the other variant.
func (v Variant) Toggle() Variant {
	if v == Traditional {
		return Simplified
	}
	return Traditional
}

// NormalizeLocale converts a language code to the standard format (e.g., "zh-TW" → "zh_TW").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// ToHTMLLang converts a locale code to HTML lang attribute format (e.g., "zh_TW" → "zh-TW").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}
