package zhlive

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// CachedBackend wraps a Backend and serves repeated translations from a
// cache. Speak and Share always reach the backend; failed translations are
// never cached.
type CachedBackend struct {
	backend Backend
	cache   TranslationCache
	logger  *zap.SugaredLogger
}

// NewCachedBackend creates a caching wrapper around backend.
func NewCachedBackend(backend Backend, cache TranslationCache, logger *zap.SugaredLogger) *CachedBackend {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CachedBackend{
		backend: backend,
		cache:   cache,
		logger:  logger,
	}
}

// Translate implements Backend with a cache lookup first.
func (b *CachedBackend) Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error) {
	key := CacheKey(HashText(req.Text), req.Source, req.Target)

	if cached, ok := b.cache.Get(key); ok {
		var result TranslationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			result.SourceText = req.Text
			b.logger.Debugw("translation cache hit", "target", req.Target)
			return &result, nil
		}
		b.logger.Warnw("dropping unreadable cache entry", "key", key)
	}

	result, err := b.backend.Translate(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err == nil {
		err = b.cache.Set(key, string(data))
	}
	if err != nil {
		// Ignore cache set errors
		b.logger.Warnw("caching translation failed", "error", &CacheError{Message: "set failed", Cause: err})
	}

	return result, nil
}

// Speak implements Backend.
func (b *CachedBackend) Speak(ctx context.Context, req SpeakRequest) (*Audio, error) {
	return b.backend.Speak(ctx, req)
}

// Share implements Backend.
func (b *CachedBackend) Share(ctx context.Context, req ShareRequest) (string, error) {
	return b.backend.Share(ctx, req)
}

// Verify CachedBackend implements Backend
var _ Backend = (*CachedBackend)(nil)
