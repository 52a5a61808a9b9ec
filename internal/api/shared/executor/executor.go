package executor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/api/shared/dto"
	"github.com/lampworks/moth-bridge/internal/bridge"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/messaging"
	"github.com/lampworks/moth-bridge/internal/metadata"
	"github.com/lampworks/moth-bridge/internal/ownership"
	"github.com/lampworks/moth-bridge/internal/session"
	"github.com/lampworks/moth-bridge/internal/wallet"
)

// Config holds the chains an executor serves
type Config struct {
	SourceChain      domain.ChainInfo
	DestinationChain domain.ChainInfo
	Contract         common.Address
}

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ScanOwner resolves the owned set of owner and replaces its displayed set
	ScanOwner(ctx context.Context, owner common.Address) (*dto.OwnedMothsResponse, error)

	// AddOwnedMoth verifies a user supplied token id and merges it into the displayed set
	AddOwnedMoth(ctx context.Context, owner common.Address, rawTokenID string) (*dto.OwnedMothsResponse, error)

	// CheckOwnership verifies a single token against the contract
	CheckOwnership(ctx context.Context, owner common.Address, rawTokenID string) (*dto.OwnershipResponse, error)

	// GetPreview loads the display metadata of a token
	GetPreview(ctx context.Context, rawTokenID string) (*domain.MothItem, error)

	// PlanBridge quotes the fee and builds the unsigned transactions to bridge a token
	PlanBridge(ctx context.Context, owner common.Address, rawTokenID string) (*bridge.Plan, error)
}

type executor struct {
	resolver  ownership.Resolver
	previews  metadata.Loader
	tracker   *ownership.Tracker
	publisher messaging.Publisher
	planner   bridge.Planner
	clock     adapter.Clock
	config    Config
}

// NewExecutor creates an executor; every call runs in its own watch-only session
func NewExecutor(
	resolver ownership.Resolver,
	previews metadata.Loader,
	tracker *ownership.Tracker,
	publisher messaging.Publisher,
	planner bridge.Planner,
	clock adapter.Clock,
	config Config,
) Executor {
	return &executor{
		resolver:  resolver,
		previews:  previews,
		tracker:   tracker,
		publisher: publisher,
		planner:   planner,
		clock:     clock,
		config:    config,
	}
}

// connect opens a session for owner; callers must Close it
func (e *executor) connect(ctx context.Context, owner common.Address) (*session.Controller, error) {
	provider := wallet.NewWatchOnly(owner, e.config.SourceChain, e.config.DestinationChain)
	sess := session.New(provider, e.resolver, e.previews, e.tracker, e.publisher, e.clock, session.Config{
		SourceChain: e.config.SourceChain,
		Contract:    e.config.Contract,
	})

	if _, err := sess.Connect(ctx); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

func (e *executor) ScanOwner(ctx context.Context, owner common.Address) (*dto.OwnedMothsResponse, error) {
	sess, err := e.connect(ctx, owner)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	outcome, err := sess.Scan(ctx)
	if err != nil {
		return nil, err
	}

	return dto.MapScanToDTO(outcome.ScanID, e.config.SourceChain.Key, outcome.Result, outcome.Items), nil
}

func (e *executor) AddOwnedMoth(ctx context.Context, owner common.Address, rawTokenID string) (*dto.OwnedMothsResponse, error) {
	// Reject bad input before a session is opened
	if _, err := domain.ParseTokenID(rawTokenID); err != nil {
		return nil, err
	}

	sess, err := e.connect(ctx, owner)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if _, err := sess.AddManual(ctx, rawTokenID); err != nil {
		return nil, err
	}

	return &dto.OwnedMothsResponse{
		Owner: owner.Hex(),
		Chain: e.config.SourceChain.Key,
		Items: sess.Items(),
	}, nil
}

func (e *executor) CheckOwnership(ctx context.Context, owner common.Address, rawTokenID string) (*dto.OwnershipResponse, error) {
	owned, err := e.resolver.VerifyOwnership(ctx, rawTokenID, owner)
	if err != nil {
		return nil, err
	}

	tokenID, _ := domain.ParseTokenID(rawTokenID)
	return &dto.OwnershipResponse{
		Owner:   owner.Hex(),
		TokenID: tokenID.String(),
		Owned:   owned,
	}, nil
}

func (e *executor) GetPreview(ctx context.Context, rawTokenID string) (*domain.MothItem, error) {
	tokenID, err := domain.ParseTokenID(rawTokenID)
	if err != nil {
		return nil, err
	}

	item := e.previews.LoadPreview(ctx, tokenID)
	return &item, nil
}

func (e *executor) PlanBridge(ctx context.Context, owner common.Address, rawTokenID string) (*bridge.Plan, error) {
	tokenID, err := domain.ParseTokenID(rawTokenID)
	if err != nil {
		return nil, err
	}

	plan, err := e.planner.Plan(ctx, owner, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to plan bridge of token %s: %w", tokenID, err)
	}
	return plan, nil
}
