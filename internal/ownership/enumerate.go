package ownership

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// TryEnumerate reads tokenOfOwnerByIndex for the first min(balance, EnumerationCap) indices.
// A single failed index makes the whole result unusable: nothing gathered so far is returned
// and the error wraps domain.ErrCapabilityAbsent.
func (r *resolver) TryEnumerate(ctx context.Context, owner common.Address, balance *big.Int) ([]*big.Int, error) {
	limit := r.config.EnumerationCap
	if balance.IsUint64() && balance.Uint64() < limit {
		limit = balance.Uint64()
	}
	if limit == 0 {
		return nil, fmt.Errorf("%w: enumeration disabled", domain.ErrCapabilityAbsent)
	}

	ids := make([]*big.Int, 0, limit)
	for i := uint64(0); i < limit; i++ {
		id, err := r.collection.TokenOfOwnerByIndex(ctx, owner, i)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: tokenOfOwnerByIndex(%d): %v", domain.ErrCapabilityAbsent, i, err)
		}
		ids = append(ids, id)
	}

	domain.SortTokenIDs(ids)
	return ids, nil
}
