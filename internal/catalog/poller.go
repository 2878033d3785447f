package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"satchel/internal/storefront"
)

// DefaultPollInterval is how often the catalog refreshes when unset.
const DefaultPollInterval = 30 * time.Second

// ProductFetcher retrieves the product catalog.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]storefront.Product, error)
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *Store, fetcher ProductFetcher, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			Refresh(ctx, store, fetcher, log)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh fetches the catalog once and records the result in the store.
func Refresh(ctx context.Context, store *Store, fetcher ProductFetcher, log *zap.Logger) {
	products, err := fetcher.FetchProducts(ctx)
	if err != nil {
		store.Update(nil, err)
		if log != nil {
			log.Warn("catalog poll failed", zap.Error(err))
		}
		return
	}
	store.Update(products, nil)
}
