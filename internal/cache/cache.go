package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PayloadCache stores raw source documents between loads so repeated loads
// within the TTL skip the network. An explicit refresh bypasses it.
type PayloadCache interface {
	GetPayload(ctx context.Context, key string) ([]byte, bool, error)
	StorePayload(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Close() error
}

// SourceKey derives a stable cache key from a source URL.
func SourceKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
