package providers

import "context"

// CacheProvider is the read-through cache used for chat history and
// rate-limit bookkeeping. Implementations must treat a missing key as
// an error on Get.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
