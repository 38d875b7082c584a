package zhlive

import "testing"

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input    string
		expected Variant
	}{
		{"zh", Simplified},
		{"zh-CN", Simplified},
		{"zh_CN", Simplified},
		{"zh-Hans", Simplified},
		{"Simplified", Simplified},
		{"zh-TW", Traditional},
		{"zh_TW", Traditional},
		{"zh-Hant", Traditional},
		{" traditional ", Traditional},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVariant(tt.input)
			if err != nil {
				t.Fatalf("ParseVariant(%q) error: %v", tt.input, err)
			}
			if v != tt.expected {
				t.Errorf("ParseVariant(%q) = %v, want %v", tt.input, v, tt.expected)
			}
		})
	}
}

func TestParseVariant_Unknown(t *testing.T) {
	if _, err := ParseVariant("ja"); err == nil {
		t.Error("expected error for non-Chinese code")
	}
}

func TestVariantCodes(t *testing.T) {
	tests := []struct {
		variant   Variant
		code      string
		speakLang string
		label     string
		htmlLang  string
	}{
		{Simplified, "zh", "zh-cn", "Simplified Chinese", "zh-CN"},
		{Traditional, "zh-TW", "zh-tw", "Traditional Chinese", "zh-TW"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := tt.variant.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if got := tt.variant.SpeakLang(); got != tt.speakLang {
				t.Errorf("SpeakLang() = %q, want %q", got, tt.speakLang)
			}
			if got := tt.variant.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.variant.HTMLLang(); got != tt.htmlLang {
				t.Errorf("HTMLLang() = %q, want %q", got, tt.htmlLang)
			}
		})
	}
}

func TestVariantFromSwitch(t *testing.T) {
	if VariantFromSwitch(true) != Traditional {
		t.Error("checked switch should select Traditional")
	}
	if VariantFromSwitch(false) != Simplified {
		t.Error("unchecked switch should select Simplified")
	}
	if Simplified.Toggle() != Traditional || Traditional.Toggle() != Simplified {
		t.Error("Toggle should flip the variant")
	}
}

func TestNormalizeLocale(t *testing.T) {
	if got := NormalizeLocale("zh-TW"); got != "zh_TW" {
		t.Errorf("NormalizeLocale() = %q, want %q", got, "zh_TW")
	}
	if got := ToHTMLLang("zh_CN"); got != "zh-CN" {
		t.Errorf("ToHTMLLang() = %q, want %q", got, "zh-CN")
	}
}
