package domain

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ChainKey is the short identifier used in config and routes (e.g. "sonic", "base")
type ChainKey string

const (
	ChainSonic ChainKey = "sonic"
	ChainBase  ChainKey = "base"
)

// NativeCurrency describes the gas token of a chain as wallets expect it
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ChainInfo describes a chain the bridge talks to
type ChainInfo struct {
	Key            ChainKey       `json:"key"`
	Name           string         `json:"name"`
	ChainID        uint64         `json:"chain_id"`
	WalletRPCURLs  []string       `json:"wallet_rpc_urls"`
	Explorer       string         `json:"explorer"`
	NativeCurrency NativeCurrency `json:"native_currency"`
}

// ChainIDHex returns the chain id in the 0x-prefixed form used by wallet requests
func (c ChainInfo) ChainIDHex() string {
	return fmt.Sprintf("0x%x", c.ChainID)
}

// ScanSource tells where an owned set came from
type ScanSource string

const (
	ScanSourceNone        ScanSource = "none"
	ScanSourceEnumeration ScanSource = "enumeration"
	ScanSourceLogScan     ScanSource = "log_scan"
)

// TransferEvent is a decoded ERC-721 Transfer log.
// Events are totally ordered by (BlockNumber, LogIndex).
type TransferEvent struct {
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	TokenID     *big.Int       `json:"token_id"`
	BlockNumber uint64         `json:"block_number"`
	LogIndex    uint           `json:"log_index"`
	TxHash      common.Hash    `json:"tx_hash"`
}

// Before reports whether e precedes o in chain order
func (e TransferEvent) Before(o TransferEvent) bool {
	if e.BlockNumber != o.BlockNumber {
		return e.BlockNumber < o.BlockNumber
	}
	return e.LogIndex < o.LogIndex
}

// SortTransfersDesc orders events newest first
func SortTransfersDesc(events []TransferEvent) {
	slices.SortStableFunc(events, func(a, b TransferEvent) int {
		switch {
		case b.Before(a):
			return -1
		case a.Before(b):
			return 1
		default:
			return 0
		}
	})
}

// MothItem is the presentation view of a verified token
type MothItem struct {
	TokenID  string `json:"token_id"`
	TokenURI string `json:"token_uri,omitempty"`
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
}

// OwnershipSnapshot is the message published after a committed scan
type OwnershipSnapshot struct {
	ScanID    string     `json:"scan_id"`
	Chain     ChainKey   `json:"chain"`
	Contract  string     `json:"contract"`
	Owner     string     `json:"owner"`
	Balance   string     `json:"balance"`
	TokenIDs  []string   `json:"token_ids"`
	Source    ScanSource `json:"source"`
	Partial   bool       `json:"partial"`
	ScannedAt time.Time  `json:"scanned_at"`
}

// ParseAddress validates a hex address and returns it in canonical form
func ParseAddress(raw string) (common.Address, error) {
	raw = strings.TrimSpace(raw)
	if !common.IsHexAddress(raw) {
		return common.Address{}, &ValidationError{Field: "address", Value: raw, Reason: "not a valid hex address"}
	}
	return common.HexToAddress(raw), nil
}

// NormalizeAddress returns the checksummed form of an address string.
// Invalid input is returned unchanged.
func NormalizeAddress(raw string) string {
	if !common.IsHexAddress(raw) {
		return raw
	}
	return common.HexToAddress(raw).Hex()
}

// ParseTokenID parses a user supplied token id.
// Decimal and 0x-prefixed hex are accepted; negative or malformed values are rejected.
func ParseTokenID(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, &ValidationError{Field: "token_id", Value: raw, Reason: "token id is required"}
	}

	base := 10
	digits := s
	if after, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		base = 16
		digits = after
	}
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return nil, &ValidationError{Field: "token_id", Value: raw, Reason: "token id must be a non-negative integer"}
	}

	id, ok := new(big.Int).SetString(digits, base)
	if !ok || id.Sign() < 0 {
		return nil, &ValidationError{Field: "token_id", Value: raw, Reason: "token id must be a non-negative integer"}
	}
	return id, nil
}

// SortTokenIDs sorts ids ascending in place
func SortTokenIDs(ids []*big.Int) {
	slices.SortFunc(ids, func(a, b *big.Int) int { return a.Cmp(b) })
}

// TokenIDStrings renders ids as decimal strings
func TokenIDStrings(ids []*big.Int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
