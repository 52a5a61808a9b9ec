package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// WatchOnly is a Provider for a known address without signing capability.
// It backs the CLI and API, where the "wallet" is just the address being inspected.
type WatchOnly struct {
	mu        sync.Mutex
	accounts  []common.Address
	known     map[uint64]bool
	current   uint64
	nextID    uint64
	onAccount map[uint64]func([]common.Address)
	onChain   map[uint64]func(string)
}

// NewWatchOnly creates a provider exposing account, aware of chains and sitting on the first one
func NewWatchOnly(account common.Address, chains ...domain.ChainInfo) *WatchOnly {
	w := &WatchOnly{
		accounts:  []common.Address{account},
		known:     make(map[uint64]bool),
		onAccount: make(map[uint64]func([]common.Address)),
		onChain:   make(map[uint64]func(string)),
	}
	for i, c := range chains {
		if i == 0 {
			w.current = c.ChainID
		}
		w.known[c.ChainID] = true
	}
	return w
}

func (w *WatchOnly) ChainID(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fmt.Sprintf("0x%x", w.current), nil
}

func (w *WatchOnly) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]common.Address(nil), w.accounts...), nil
}

func (w *WatchOnly) SwitchChain(ctx context.Context, chainIDHex string) error {
	id, err := ParseChainID(chainIDHex)
	if err != nil {
		return &ProviderError{Code: -32602, Message: err.Error()}
	}

	w.mu.Lock()
	if !w.known[id] {
		w.mu.Unlock()
		return &ProviderError{
			Code:    domain.WALLET_UNRECOGNIZED_CHAIN_CODE,
			Message: fmt.Sprintf("Unrecognized chain ID %q", chainIDHex),
		}
	}
	changed := w.current != id
	w.current = id
	handlers := chainHandlers(w.onChain)
	w.mu.Unlock()

	if changed {
		for _, fn := range handlers {
			fn(chainIDHex)
		}
	}
	return nil
}

// AddChain registers the chain and, like most wallets, switches to it
func (w *WatchOnly) AddChain(ctx context.Context, params AddChainParams) error {
	id, err := ParseChainID(params.ChainID)
	if err != nil {
		return &ProviderError{Code: -32602, Message: err.Error()}
	}

	w.mu.Lock()
	w.known[id] = true
	w.mu.Unlock()

	return w.SwitchChain(ctx, params.ChainID)
}

// SetAccount replaces the exposed account and notifies subscribers
func (w *WatchOnly) SetAccount(account common.Address) {
	w.mu.Lock()
	w.accounts = []common.Address{account}
	accounts := append([]common.Address(nil), w.accounts...)
	handlers := make([]func([]common.Address), 0, len(w.onAccount))
	for _, fn := range w.onAccount {
		handlers = append(handlers, fn)
	}
	w.mu.Unlock()

	for _, fn := range handlers {
		fn(accounts)
	}
}

func (w *WatchOnly) OnAccountsChanged(fn func(accounts []common.Address)) Unsubscribe {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.onAccount[id] = fn
	return w.unsubscribe(func() { delete(w.onAccount, id) })
}

func (w *WatchOnly) OnChainChanged(fn func(chainIDHex string)) Unsubscribe {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.onChain[id] = fn
	return w.unsubscribe(func() { delete(w.onChain, id) })
}

// Subscribers returns the number of registered handlers
func (w *WatchOnly) Subscribers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.onAccount) + len(w.onChain)
}

func (w *WatchOnly) unsubscribe(remove func()) Unsubscribe {
	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			remove()
		})
	}
}

func chainHandlers(m map[uint64]func(string)) []func(string) {
	handlers := make([]func(string), 0, len(m))
	for _, fn := range m {
		handlers = append(handlers, fn)
	}
	return handlers
}
