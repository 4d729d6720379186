package fetcher

import (
	"context"
	"log/slog"

	"github.com/dtnitsch/fois-tutorial-setup/pkg/caching"
)

// CachingFetcher serves archives from a local file cache while they are fresh
// and stores every successful download back into it.
type CachingFetcher struct {
	next   Getter
	cache  *caching.Cache
	logger *slog.Logger
}

func NewCachingFetcher(next Getter, cache *caching.Cache, logger *slog.Logger) *CachingFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingFetcher{next: next, cache: cache, logger: logger}
}

func (f *CachingFetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f.cache.Get(url); ok {
		f.logger.Info("archive cache hit", "url", url, "bytes", len(data))
		return data, nil
	}

	data, err := f.next.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(url, data); err != nil {
		f.logger.Warn("failed to cache archive", "url", url, "error", err)
	}
	return data, nil
}

// Invalidate drops the cached body for url so the next call goes to the network.
func (f *CachingFetcher) Invalidate(url string) error {
	return f.cache.Invalidate(url)
}
