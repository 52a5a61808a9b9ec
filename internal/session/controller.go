package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/messaging"
	"github.com/lampworks/moth-bridge/internal/metadata"
	"github.com/lampworks/moth-bridge/internal/ownership"
	"github.com/lampworks/moth-bridge/internal/wallet"
)

var (
	// ErrNotConnected is returned by operations that need an account before Connect succeeded
	ErrNotConnected = errors.New("wallet not connected")

	// ErrNoAccounts is returned when the wallet exposes no account
	ErrNoAccounts = errors.New("wallet returned no accounts")
)

// Config binds a session to the collection it scans
type Config struct {
	SourceChain domain.ChainInfo
	Contract    common.Address
}

// ScanOutcome is a committed scan
type ScanOutcome struct {
	ScanID string
	Result *ownership.Result
	Items  []domain.MothItem
}

// Controller drives the connect, scan and manual-add flow for one wallet.
// It is safe for concurrent use; a scan started later always wins over an earlier one.
type Controller struct {
	provider  wallet.Provider
	resolver  ownership.Resolver
	previews  metadata.Loader
	tracker   *ownership.Tracker
	publisher messaging.Publisher
	clock     adapter.Clock
	config    Config

	mu        sync.RWMutex
	account   common.Address
	connected bool
	chainID   string
	selected  string

	unsubscribes []wallet.Unsubscribe
	closeOnce    sync.Once
}

// New creates a controller and subscribes to wallet notifications
func New(
	provider wallet.Provider,
	resolver ownership.Resolver,
	previews metadata.Loader,
	tracker *ownership.Tracker,
	publisher messaging.Publisher,
	clock adapter.Clock,
	config Config,
) *Controller {
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}

	c := &Controller{
		provider:  provider,
		resolver:  resolver,
		previews:  previews,
		tracker:   tracker,
		publisher: publisher,
		clock:     clock,
		config:    config,
	}
	c.unsubscribes = []wallet.Unsubscribe{
		provider.OnAccountsChanged(c.handleAccountsChanged),
		provider.OnChainChanged(c.handleChainChanged),
	}
	return c
}

// Connect requests the wallet's accounts and moves it onto the source chain
func (c *Controller) Connect(ctx context.Context) (common.Address, error) {
	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return common.Address{}, ErrNoAccounts
	}

	if _, err := wallet.EnsureChain(ctx, c.provider, c.config.SourceChain); err != nil {
		return common.Address{}, err
	}

	c.mu.Lock()
	c.account = accounts[0]
	c.connected = true
	c.chainID = c.config.SourceChain.ChainIDHex()
	c.mu.Unlock()

	logger.InfoCtx(ctx, "Wallet connected", zap.String("account", accounts[0].Hex()))
	return accounts[0], nil
}

// Account returns the connected account
func (c *Controller) Account() (common.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account, c.connected
}

// ChainID returns the last chain id the wallet reported, in hex
func (c *Controller) ChainID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chainID
}

// Scan resolves the owned set of the connected account and replaces the displayed set.
// It fails with domain.ErrSuperseded when a newer scan or an account change overtook it.
func (c *Controller) Scan(ctx context.Context) (*ScanOutcome, error) {
	owner, ok := c.Account()
	if !ok {
		return nil, ErrNotConnected
	}

	if _, err := wallet.EnsureChain(ctx, c.provider, c.config.SourceChain); err != nil {
		return nil, err
	}

	ticket := c.tracker.Begin(owner)
	startedAt := c.clock.Now()

	result, err := c.resolver.Resolve(ctx, owner)
	if err != nil {
		return nil, err
	}

	items := []domain.MothItem{}
	if len(result.TokenIDs) > 0 {
		items = c.previews.LoadPreviews(ctx, result.TokenIDs)
	}

	if err := c.tracker.Commit(ticket, items); err != nil {
		logger.InfoCtx(ctx, "Discarding superseded scan",
			zap.String("owner", owner.Hex()),
			zap.Uint64("generation", ticket.Generation))
		return nil, err
	}

	scanID := messaging.NewScanID(startedAt)
	snapshot := messaging.NewSnapshot(scanID, c.config.SourceChain.Key, c.config.Contract, result, c.clock.Now())
	if err := c.publisher.PublishSnapshot(ctx, snapshot); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ownership snapshot",
			zap.String("scan_id", scanID),
			zap.Error(err))
	}

	c.mu.Lock()
	c.selected = ""
	if len(items) > 0 {
		c.selected = items[0].TokenID
	}
	c.mu.Unlock()

	return &ScanOutcome{ScanID: scanID, Result: result, Items: items}, nil
}

// AddManual verifies a user supplied token id and merges it into the displayed set.
// Input is validated before any wallet or chain call.
func (c *Controller) AddManual(ctx context.Context, rawTokenID string) (domain.MothItem, error) {
	tokenID, err := domain.ParseTokenID(rawTokenID)
	if err != nil {
		return domain.MothItem{}, err
	}

	owner, ok := c.Account()
	if !ok {
		return domain.MothItem{}, ErrNotConnected
	}

	if _, err := wallet.EnsureChain(ctx, c.provider, c.config.SourceChain); err != nil {
		return domain.MothItem{}, err
	}

	owned, err := c.resolver.IsOwner(ctx, tokenID, owner)
	if err != nil {
		return domain.MothItem{}, fmt.Errorf("failed to verify ownership: %w", err)
	}
	if !owned {
		return domain.MothItem{}, fmt.Errorf("token %s: %w", tokenID, domain.ErrNotOwned)
	}

	item := c.previews.LoadPreview(ctx, tokenID)
	c.tracker.Append(owner, item)

	c.mu.Lock()
	c.selected = item.TokenID
	c.mu.Unlock()

	logger.InfoCtx(ctx, "Added token manually",
		zap.String("owner", owner.Hex()),
		zap.String("token_id", item.TokenID))

	return item, nil
}

// Items returns the displayed set of the connected account
func (c *Controller) Items() []domain.MothItem {
	owner, ok := c.Account()
	if !ok {
		return nil
	}
	items, _ := c.tracker.Snapshot(owner)
	return items
}

// Select marks a displayed token as the one to bridge
func (c *Controller) Select(tokenID string) error {
	for _, item := range c.Items() {
		if item.TokenID == tokenID {
			c.mu.Lock()
			c.selected = tokenID
			c.mu.Unlock()
			return nil
		}
	}
	return &domain.ValidationError{Field: "token_id", Value: tokenID, Reason: "token is not in the displayed set"}
}

// Selected returns the selected item, if it is still displayed
func (c *Controller) Selected() (domain.MothItem, bool) {
	c.mu.RLock()
	selected := c.selected
	c.mu.RUnlock()

	if selected == "" {
		return domain.MothItem{}, false
	}
	for _, item := range c.Items() {
		if item.TokenID == selected {
			return item, true
		}
	}
	return domain.MothItem{}, false
}

// Close removes the wallet subscriptions. It is safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		for _, unsubscribe := range c.unsubscribes {
			unsubscribe()
		}
	})
}

func (c *Controller) handleAccountsChanged(accounts []common.Address) {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}

	previous := c.account
	if len(accounts) == 0 {
		c.account = common.Address{}
		c.connected = false
	} else {
		c.account = accounts[0]
	}
	changed := c.account != previous || !c.connected
	if changed {
		c.selected = ""
	}
	c.mu.Unlock()

	if !changed {
		return
	}

	// Outdates any scan still running for the previous account
	c.tracker.Invalidate(previous)

	logger.Info("Wallet account changed",
		zap.String("previous", previous.Hex()),
		zap.Int("accounts", len(accounts)))
}

func (c *Controller) handleChainChanged(chainIDHex string) {
	c.mu.Lock()
	c.chainID = chainIDHex
	c.mu.Unlock()

	logger.Info("Wallet chain changed", zap.String("chain_id", chainIDHex))
}
