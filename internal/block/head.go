package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/logger"
)

// head is the last observed chain height
type head struct {
	number    uint64
	fetchedAt time.Time
}

// BlockHeadProvider returns the latest block height of one chain, caching it briefly.
// Scans start from this height and walk backward.
//
//go:generate mockgen -source=head.go -destination=../mocks/block_head_provider.go -package=mocks -mock_names=BlockHeadProvider=MockBlockHeadProvider,BlockFetcher=MockBlockFetcher
type BlockHeadProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)
}

// BlockFetcher reads the latest height straight from the chain endpoint
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (uint64, error)
}

// Config holds configuration for the BlockHeadProvider
type Config struct {
	// TTL is how long a fetched height is served without asking the endpoint.
	// Zero disables caching.
	TTL time.Duration

	// StaleWindow is how long a cached height may still be served when a fetch fails
	StaleWindow time.Duration
}

type blockHeadProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock
	group   singleflight.Group

	mu     sync.RWMutex
	cached *head
}

// NewBlockHeadProvider creates a new BlockHeadProvider with caching
func NewBlockHeadProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockHeadProvider {
	return &blockHeadProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

// GetLatestBlock returns the cached height while it is younger than TTL and
// otherwise fetches. Concurrent fetches share one endpoint call.
func (p *blockHeadProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.number))
		return cached.number, nil
	}

	v, err, _ := p.group.Do("latest", func() (interface{}, error) {
		logger.DebugCtx(ctx, "Fetching latest block number from endpoint")
		return p.fetcher.FetchLatestBlock(ctx)
	})
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number", zap.Uint64("block_number", cached.number), zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	number := v.(uint64)
	p.mu.Lock()
	if p.cached == nil || number >= p.cached.number {
		p.cached = &head{number: number, fetchedAt: now}
	}
	p.mu.Unlock()

	return number, nil
}
