package dto

import (
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/ownership"
)

// OwnedMothsResponse represents the displayed set of an owner
type OwnedMothsResponse struct {
	ScanID            string            `json:"scan_id,omitempty"`
	Owner             string            `json:"owner"`
	Chain             domain.ChainKey   `json:"chain"`
	Balance           string            `json:"balance,omitempty"`
	Source            domain.ScanSource `json:"source,omitempty"`
	Partial           bool              `json:"partial"`
	BlocksScanned     uint64            `json:"blocks_scanned"`
	FromBlock         uint64            `json:"from_block,omitempty"`
	ToBlock           uint64            `json:"to_block,omitempty"`
	CandidatesChecked int               `json:"candidates_checked"`
	Items             []domain.MothItem `json:"items"`
}

// OwnershipResponse represents a single ownership check
type OwnershipResponse struct {
	Owner   string `json:"owner"`
	TokenID string `json:"token_id"`
	Owned   bool   `json:"owned"`
}

// HealthResponse represents the health check body
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// MapScanToDTO converts a committed scan into its response
func MapScanToDTO(scanID string, chain domain.ChainKey, result *ownership.Result, items []domain.MothItem) *OwnedMothsResponse {
	if items == nil {
		items = []domain.MothItem{}
	}

	resp := &OwnedMothsResponse{
		ScanID:            scanID,
		Owner:             result.Owner.Hex(),
		Chain:             chain,
		Source:            result.Source,
		Partial:           result.Partial,
		BlocksScanned:     result.BlocksScanned,
		FromBlock:         result.FromBlock,
		ToBlock:           result.ToBlock,
		CandidatesChecked: result.CandidatesChecked,
		Items:             items,
	}
	if result.Balance != nil {
		resp.Balance = result.Balance.String()
	}
	return resp
}
