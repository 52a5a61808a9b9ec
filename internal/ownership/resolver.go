package ownership

import (
	"context"
	"errors"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/block"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/metrics"
	"github.com/lampworks/moth-bridge/internal/providers/ethereum"
)

// Config bounds the work a single resolve may perform
type Config struct {
	// MaxBlocks caps the log window walked back from the latest block
	MaxBlocks uint64
	// ChunkSize is the block span of one log query
	ChunkSize uint64
	// FetchConcurrency is how many chunk queries are in flight together
	FetchConcurrency int
	// EnumerationCap bounds tokenOfOwnerByIndex calls regardless of balance
	EnumerationCap uint64
}

// DefaultConfig matches the deployed collection
var DefaultConfig = Config{
	MaxBlocks:        250_000,
	ChunkSize:        5_000,
	FetchConcurrency: 2,
	EnumerationCap:   50,
}

// Result is the verified owned set for one address
type Result struct {
	Owner    common.Address
	Balance  *big.Int
	TokenIDs []*big.Int
	Source   domain.ScanSource
	// Partial is set when fewer tokens than the balance could be confirmed
	Partial           bool
	BlocksScanned     uint64
	FromBlock         uint64
	ToBlock           uint64
	CandidatesChecked int
}

// Resolver reconstructs which tokens of one collection an address currently owns
//
//go:generate mockgen -source=resolver.go -destination=../mocks/resolver.go -package=mocks -mock_names=Resolver=MockResolver
type Resolver interface {
	// Resolve returns the verified owned set of owner, sorted ascending
	Resolve(ctx context.Context, owner common.Address) (*Result, error)

	// TryEnumerate lists owned ids through the enumeration extension.
	// It fails with domain.ErrCapabilityAbsent when any index cannot be read.
	TryEnumerate(ctx context.Context, owner common.Address, balance *big.Int) ([]*big.Int, error)

	// IsOwner asks the contract whether owner currently holds tokenID
	IsOwner(ctx context.Context, tokenID *big.Int, owner common.Address) (bool, error)

	// VerifyOwnership validates a user supplied token id, then checks ownership
	VerifyOwnership(ctx context.Context, rawTokenID string, owner common.Address) (bool, error)
}

type resolver struct {
	collection ethereum.CollectionClient
	heads      block.BlockHeadProvider
	clock      adapter.Clock
	config     Config
}

// NewResolver creates a resolver over one collection
func NewResolver(collection ethereum.CollectionClient, heads block.BlockHeadProvider, clock adapter.Clock, config Config) Resolver {
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultConfig.ChunkSize
	}
	if config.FetchConcurrency <= 0 {
		config.FetchConcurrency = 1
	}
	return &resolver{
		collection: collection,
		heads:      heads,
		clock:      clock,
		config:     config,
	}
}

func (r *resolver) Resolve(ctx context.Context, owner common.Address) (*Result, error) {
	start := r.clock.Now()

	result, err := r.resolve(ctx, owner)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("unknown", metrics.OutcomeError).Inc()
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if len(result.TokenIDs) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.ScansTotal.WithLabelValues(string(result.Source), outcome).Inc()
	metrics.ScanDuration.WithLabelValues(string(result.Source)).Observe(r.clock.Since(start).Seconds())

	logger.InfoCtx(ctx, "Resolved owned tokens",
		zap.String("owner", owner.Hex()),
		zap.String("balance", result.Balance.String()),
		zap.Int("owned", len(result.TokenIDs)),
		zap.String("source", string(result.Source)),
		zap.Bool("partial", result.Partial),
		zap.Uint64("blocks_scanned", result.BlocksScanned))

	return result, nil
}

func (r *resolver) resolve(ctx context.Context, owner common.Address) (*Result, error) {
	balance, err := r.collection.BalanceOf(ctx, owner)
	if err != nil {
		return nil, &domain.ScanError{Op: "balance", Err: err}
	}

	result := &Result{
		Owner:    owner,
		Balance:  balance,
		TokenIDs: []*big.Int{},
		Source:   domain.ScanSourceNone,
	}
	if balance.Sign() == 0 {
		return result, nil
	}

	ids, err := r.TryEnumerate(ctx, owner, balance)
	switch {
	case err == nil:
		result.TokenIDs = ids
		result.Source = domain.ScanSourceEnumeration
		result.Partial = balance.Cmp(new(big.Int).SetUint64(uint64(len(ids)))) > 0
		return result, nil
	case errors.Is(err, domain.ErrCapabilityAbsent):
		logger.DebugCtx(ctx, "Enumeration unavailable, falling back to log scan", zap.Error(err))
	default:
		return nil, err
	}

	latest, err := r.heads.GetLatestBlock(ctx)
	if err != nil {
		return nil, &domain.ScanError{Op: "height", Err: err}
	}

	return r.scan(ctx, result, latest)
}

// scan walks the log window newest to oldest, verifying each new candidate as it
// appears, and stops once the verified count reaches the balance
func (r *resolver) scan(ctx context.Context, result *Result, latest uint64) (*Result, error) {
	owner := result.Owner
	target := balanceTarget(result.Balance)
	windows := planWindows(latest, r.config.ChunkSize, r.config.MaxBlocks)

	result.Source = domain.ScanSourceLogScan
	result.ToBlock = latest
	result.FromBlock = latest

	seen := make(map[string]struct{})
	owned := make([]*big.Int, 0, min(target, 64))

scanLoop:
	for batchStart := 0; batchStart < len(windows); batchStart += r.config.FetchConcurrency {
		batch := windows[batchStart:min(batchStart+r.config.FetchConcurrency, len(windows))]

		fetched := r.fetchBatch(ctx, owner, batch)

		for i, w := range batch {
			// A failed window only counts once the scan actually reaches it
			if err := fetched[i].err; err != nil {
				return nil, err
			}
			result.BlocksScanned += w.size()
			result.FromBlock = w.from

			for _, event := range fetched[i].events {
				key := event.TokenID.String()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				result.CandidatesChecked++

				ok, err := r.IsOwner(ctx, event.TokenID, owner)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return nil, ctxErr
					}
					metrics.CandidatesChecked.WithLabelValues(metrics.VerdictFailed).Inc()
					logger.DebugCtx(ctx, "Dropping candidate after failed verification",
						zap.String("token_id", key), zap.Error(err))
					continue
				}
				if !ok {
					metrics.CandidatesChecked.WithLabelValues(metrics.VerdictNotOwned).Inc()
					continue
				}

				metrics.CandidatesChecked.WithLabelValues(metrics.VerdictOwned).Inc()
				owned = append(owned, event.TokenID)
				if len(owned) >= target {
					break scanLoop
				}
			}
		}
	}

	domain.SortTokenIDs(owned)
	result.TokenIDs = owned
	result.Partial = len(owned) < target
	metrics.BlocksScanned.Observe(float64(result.BlocksScanned))

	return result, nil
}

// windowFetch is the outcome of one window query
type windowFetch struct {
	events []domain.TransferEvent
	err    error
}

// fetchBatch queries every window of the batch concurrently; results keep batch order.
// Errors stay with their window so a failure past the early exit is discarded.
func (r *resolver) fetchBatch(ctx context.Context, owner common.Address, batch []window) []windowFetch {
	fetched := make([]windowFetch, len(batch))

	var g errgroup.Group
	for i, w := range batch {
		g.Go(func() error {
			found, err := r.collection.IncomingTransfers(ctx, owner, w.from, w.to)
			if err != nil {
				fetched[i].err = &domain.ScanError{Op: "logs", FromBlock: w.from, ToBlock: w.to, Err: err}
				return nil
			}
			fetched[i].events = found
			return nil
		})
	}
	_ = g.Wait()

	return fetched
}

func balanceTarget(balance *big.Int) int {
	if !balance.IsInt64() || balance.Int64() > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(balance.Int64())
}
