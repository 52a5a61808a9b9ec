package ownership

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// IsOwner compares the contract's ownerOf answer with owner as canonical addresses
func (r *resolver) IsOwner(ctx context.Context, tokenID *big.Int, owner common.Address) (bool, error) {
	current, err := r.collection.OwnerOf(ctx, tokenID)
	if err != nil {
		return false, &domain.VerificationError{TokenID: tokenID.String(), Err: err}
	}
	return current == owner, nil
}

// VerifyOwnership parses rawTokenID before touching the network
func (r *resolver) VerifyOwnership(ctx context.Context, rawTokenID string, owner common.Address) (bool, error) {
	tokenID, err := domain.ParseTokenID(rawTokenID)
	if err != nil {
		return false, err
	}
	return r.IsOwner(ctx, tokenID, owner)
}
