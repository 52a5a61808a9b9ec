package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/ownership"
	"github.com/lampworks/moth-bridge/internal/providers/ethereum"
)

// Config holds the destination of a bridge transfer
type Config struct {
	SourceChain    domain.ChainInfo
	DestinationEID uint32
	Mirror         common.Address
}

// TxRequest is an unsigned transaction for the user's wallet
type TxRequest struct {
	ChainID string         `json:"chain_id"`
	From    common.Address `json:"from"`
	To      common.Address `json:"to"`
	Data    hexutil.Bytes  `json:"data"`
	Value   *hexutil.Big   `json:"value"`
}

// Plan describes everything needed to move one token to the destination chain.
// Approval is nil when the adapter is already an approved operator.
type Plan struct {
	Owner          common.Address `json:"owner"`
	TokenID        string         `json:"token_id"`
	DestinationEID uint32         `json:"destination_eid"`
	Recipient      common.Hash    `json:"recipient"`
	Mirror         common.Address `json:"mirror"`
	Adapter        common.Address `json:"adapter"`
	Approved       bool           `json:"approved"`
	NativeFee      *big.Int       `json:"native_fee"`
	LzTokenFee     *big.Int       `json:"lz_token_fee"`
	Approval       *TxRequest     `json:"approval,omitempty"`
	Send           TxRequest      `json:"send"`
}

// Planner prepares bridge transactions without signing them
//
//go:generate mockgen -source=planner.go -destination=../mocks/planner.go -package=mocks -mock_names=Planner=MockPlanner
type Planner interface {
	// Plan quotes the fee and builds the approval and send calls for tokenID.
	// It fails with domain.ErrNotOwned when owner does not hold the token.
	Plan(ctx context.Context, owner common.Address, tokenID *big.Int) (*Plan, error)
}

type planner struct {
	collection ethereum.CollectionClient
	adapter    ethereum.AdapterClient
	resolver   ownership.Resolver
	config     Config
}

// NewPlanner creates a planner. A nil resolver skips the ownership check.
func NewPlanner(collection ethereum.CollectionClient, adapterClient ethereum.AdapterClient, resolver ownership.Resolver, config Config) Planner {
	return &planner{
		collection: collection,
		adapter:    adapterClient,
		resolver:   resolver,
		config:     config,
	}
}

func (p *planner) Plan(ctx context.Context, owner common.Address, tokenID *big.Int) (*Plan, error) {
	if p.resolver != nil {
		owned, err := p.resolver.IsOwner(ctx, tokenID, owner)
		if err != nil {
			return nil, fmt.Errorf("failed to verify ownership: %w", err)
		}
		if !owned {
			return nil, fmt.Errorf("token %s: %w", tokenID, domain.ErrNotOwned)
		}
	}

	operator := p.adapter.Address()
	param := ethereum.NewSendParam(p.config.DestinationEID, owner, tokenID)

	var approved bool
	var fee *ethereum.MessagingFee

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		approved, err = p.collection.IsApprovedForAll(gctx, owner, operator)
		if err != nil {
			return fmt.Errorf("failed to read approval: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fee, err = p.adapter.QuoteSend(gctx, param, false)
		if err != nil {
			return fmt.Errorf("failed to quote send: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	chainID := p.config.SourceChain.ChainIDHex()
	plan := &Plan{
		Owner:          owner,
		TokenID:        tokenID.String(),
		DestinationEID: p.config.DestinationEID,
		Recipient:      common.Hash(param.To),
		Mirror:         p.config.Mirror,
		Adapter:        operator,
		Approved:       approved,
		NativeFee:      fee.NativeFee,
		LzTokenFee:     fee.LzTokenFee,
	}

	if !approved {
		data, err := p.collection.PackSetApprovalForAll(operator, true)
		if err != nil {
			return nil, err
		}
		plan.Approval = &TxRequest{
			ChainID: chainID,
			From:    owner,
			To:      p.collection.Address(),
			Data:    data,
			Value:   (*hexutil.Big)(new(big.Int)),
		}
	}

	// Excess fee is refunded to the owner
	data, err := p.adapter.PackSendFrom(owner, param, *fee, owner)
	if err != nil {
		return nil, err
	}
	plan.Send = TxRequest{
		ChainID: chainID,
		From:    owner,
		To:      operator,
		Data:    data,
		Value:   (*hexutil.Big)(new(big.Int).Set(fee.NativeFee)),
	}

	logger.InfoCtx(ctx, "Planned bridge transfer",
		zap.String("owner", owner.Hex()),
		zap.String("token_id", plan.TokenID),
		zap.Bool("approved", approved),
		zap.String("native_fee", fee.NativeFee.String()))

	return plan, nil
}
