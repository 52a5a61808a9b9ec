package wallet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
)

// CurrentChain reads and parses the wallet's chain id
func CurrentChain(ctx context.Context, p Provider) (uint64, error) {
	raw, err := p.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read wallet chain: %w", err)
	}
	return ParseChainID(raw)
}

// EnsureChain moves the wallet onto chain.
// It is a no-op when the wallet is already there. A switch rejected as
// unrecognized falls back to adding the chain. The chain id is re-read afterwards
// and returned, since wallets may add a chain without switching to it.
func EnsureChain(ctx context.Context, p Provider, chain domain.ChainInfo) (uint64, error) {
	current, err := CurrentChain(ctx, p)
	if err != nil {
		return 0, err
	}
	if current == chain.ChainID {
		return current, nil
	}

	logger.InfoCtx(ctx, "Switching wallet chain",
		zap.Uint64("from", current),
		zap.Uint64("to", chain.ChainID),
		zap.String("chain", chain.Name),
	)

	if err := p.SwitchChain(ctx, chain.ChainIDHex()); err != nil {
		if !IsUnrecognizedChain(err) {
			return 0, fmt.Errorf("failed to switch to %s: %w", chain.Name, err)
		}

		logger.InfoCtx(ctx, "Wallet does not know chain, adding it", zap.String("chain", chain.Name))
		if err := p.AddChain(ctx, NewAddChainParams(chain)); err != nil {
			return 0, fmt.Errorf("failed to add %s: %w", chain.Name, err)
		}
	}

	return CurrentChain(ctx, p)
}
