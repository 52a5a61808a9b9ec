package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	apierrors "github.com/lampworks/moth-bridge/internal/api/shared/errors"
	"github.com/lampworks/moth-bridge/internal/domain"
)

// AddMothRequest represents the request body for manually adding a token
type AddMothRequest struct {
	TokenID string `json:"token_id"`
}

// Validate validates the request body
func (r *AddMothRequest) Validate() error {
	if r.TokenID == "" {
		return apierrors.NewValidationError("token_id is required")
	}
	return nil
}

// BridgePlanQuery represents the query of GET /bridge/plan
type BridgePlanQuery struct {
	Owner   string `form:"owner"`
	TokenID string `form:"token_id"`
}

// Validate checks both fields and returns them parsed
func (q *BridgePlanQuery) Validate() (common.Address, *big.Int, error) {
	if q.Owner == "" {
		return common.Address{}, nil, apierrors.NewValidationError("owner is required")
	}
	owner, err := domain.ParseAddress(q.Owner)
	if err != nil {
		return common.Address{}, nil, apierrors.NewValidationError(err.Error())
	}

	tokenID, err := domain.ParseTokenID(q.TokenID)
	if err != nil {
		return common.Address{}, nil, apierrors.NewValidationError(err.Error())
	}
	return owner, tokenID, nil
}
