package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/zhlive"
)

// MockBackend is an in-memory translation service for demos and tests.
type MockBackend struct {
	mu           sync.Mutex
	Translations map[string]string // Map of "target|text" to translation
	ShareBaseURL string            // Prefix of generated share links
	CallCount    int               // Number of backend calls
	LastRequest  interface{}       // Last request received
}

// NewMockBackend creates a new mock backend with default translations.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		Translations: map[string]string{
			"zh|hello":          "你好",
			"zh|world":          "世界",
			"zh|hello world":    "你好世界",
			"zh|thank you":      "谢谢",
			"zh-TW|hello":       "你好",
			"zh-TW|world":       "世界",
			"zh-TW|hello world": "你好世界",
			"zh-TW|thank you":   "謝謝",
		},
		ShareBaseURL: "https://zhlive.example/s/",
	}
}

// Translate returns mock translations. Unknown texts come back bracketed.
func (m *MockBackend) Translate(ctx context.Context, req zhlive.TranslateRequest) (*zhlive.TranslationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = req

	translation, ok := m.Translations[req.Target+"|"+req.Text]
	if !ok {
		translation = fmt.Sprintf("[%s]", req.Text)
	}

	return &zhlive.TranslationResult{
		SourceText:  req.Text,
		Translation: translation,
	}, nil
}

// Speak returns the text bytes as fake audio.
func (m *MockBackend) Speak(ctx context.Context, req zhlive.SpeakRequest) (*zhlive.Audio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = req

	return &zhlive.Audio{Data: []byte(req.Text), ContentType: "text/plain"}, nil
}

// Share returns a link derived from the hash of the shared source text.
func (m *MockBackend) Share(ctx context.Context, req zhlive.ShareRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = req

	return m.ShareBaseURL + zhlive.HashText(req.SourceText)[:12], nil
}

// Reset resets the call count and last request.
func (m *MockBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockBackend implements Backend
var _ Backend = (*MockBackend)(nil)
