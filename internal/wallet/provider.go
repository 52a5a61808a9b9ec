package wallet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// Unsubscribe removes a notification handler. Calling it more than once is a no-op.
type Unsubscribe func()

// AddChainParams is the payload of wallet_addEthereumChain
type AddChainParams struct {
	ChainID           string                `json:"chainId"`
	ChainName         string                `json:"chainName"`
	RPCURLs           []string              `json:"rpcUrls"`
	NativeCurrency    domain.NativeCurrency `json:"nativeCurrency"`
	BlockExplorerURLs []string              `json:"blockExplorerUrls"`
}

// NewAddChainParams builds the add-chain request for chain
func NewAddChainParams(chain domain.ChainInfo) AddChainParams {
	var explorers []string
	if chain.Explorer != "" {
		explorers = []string{chain.Explorer}
	}
	return AddChainParams{
		ChainID:           chain.ChainIDHex(),
		ChainName:         chain.Name,
		RPCURLs:           chain.WalletRPCURLs,
		NativeCurrency:    chain.NativeCurrency,
		BlockExplorerURLs: explorers,
	}
}

// Provider is the request/response capability of a user wallet.
// Notifications carry no ordering guarantee across the two streams.
//
//go:generate mockgen -source=provider.go -destination=../mocks/wallet_provider.go -package=mocks -mock_names=Provider=MockWalletProvider
type Provider interface {
	// ChainID returns the wallet's current chain id in 0x-prefixed hex
	ChainID(ctx context.Context) (string, error)

	// RequestAccounts asks the user to expose accounts; the first is the active one
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// SwitchChain asks the wallet to change chain; an unknown chain fails with code 4902
	SwitchChain(ctx context.Context, chainIDHex string) error

	// AddChain registers a chain with the wallet
	AddChain(ctx context.Context, params AddChainParams) error

	// OnAccountsChanged registers fn for account changes
	OnAccountsChanged(fn func(accounts []common.Address)) Unsubscribe

	// OnChainChanged registers fn for chain changes
	OnChainChanged(fn func(chainIDHex string)) Unsubscribe
}

// ProviderError is an EIP-1193 provider error
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// Unwrap maps user rejection onto ErrWalletRejected
func (e *ProviderError) Unwrap() error {
	if e.Code == domain.WALLET_USER_REJECTED_CODE {
		return domain.ErrWalletRejected
	}
	return nil
}

// IsUnrecognizedChain reports whether err says the wallet does not know the chain
func IsUnrecognizedChain(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == domain.WALLET_UNRECOGNIZED_CHAIN_CODE
}

// ParseChainID parses a 0x-prefixed hex chain id; plain decimal is accepted too
func ParseChainID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if hex, ok := strings.CutPrefix(strings.ToLower(raw), "0x"); ok {
		id, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid chain id %q: %w", raw, err)
		}
		return id, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", raw, err)
	}
	return id, nil
}
