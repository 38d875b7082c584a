package zhlive

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey builds the cache key of a translation from the text hash and the
// language pair, e.g. "<hash>:en:zh-TW".
func CacheKey(hash, sourceLang, target string) string {
	return hash + ":" + sourceLang + ":" + target
}
