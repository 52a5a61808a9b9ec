package rest

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	apierrors "github.com/lampworks/moth-bridge/internal/api/shared/errors"
	"github.com/lampworks/moth-bridge/internal/domain"
)

// parseOwnerParam reads and validates the :address path parameter
func parseOwnerParam(c *gin.Context) (common.Address, error) {
	raw := c.Param("address")
	if raw == "" {
		return common.Address{}, apierrors.NewValidationError("address is required")
	}

	owner, err := domain.ParseAddress(raw)
	if err != nil {
		return common.Address{}, apierrors.NewValidationError(err.Error())
	}
	return owner, nil
}
