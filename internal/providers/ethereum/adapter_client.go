package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/adapter"
)

// SendParam mirrors the ONFT v2 SendParam tuple; field names follow the ABI components
type SendParam struct {
	DstEid       uint32
	To           [32]byte
	TokenId      *big.Int //nolint:revive // must match ABI component name
	ExtraOptions []byte
	ComposeMsg   []byte
	OnftCmd      []byte
}

// MessagingFee mirrors the LayerZero MessagingFee tuple
type MessagingFee struct {
	NativeFee  *big.Int
	LzTokenFee *big.Int
}

// NewSendParam builds a send to recipient on dstEid with no extra options
func NewSendParam(dstEid uint32, recipient common.Address, tokenID *big.Int) SendParam {
	return SendParam{
		DstEid:       dstEid,
		To:           AddressToTopic(recipient),
		TokenId:      new(big.Int).Set(tokenID),
		ExtraOptions: []byte{},
		ComposeMsg:   []byte{},
		OnftCmd:      []byte{},
	}
}

// AdapterClient talks to the ONFT adapter that locks source-chain tokens for bridging
//
//go:generate mockgen -source=adapter_client.go -destination=../../mocks/adapter_client.go -package=mocks -mock_names=AdapterClient=MockAdapterClient
type AdapterClient interface {
	// Address returns the adapter contract address
	Address() common.Address

	// QuoteSend returns the messaging fee for param
	QuoteSend(ctx context.Context, param SendParam, payInLzToken bool) (*MessagingFee, error)

	// PackSendFrom returns calldata for the payable send the wallet signs
	PackSendFrom(from common.Address, param SendParam, fee MessagingFee, refund common.Address) ([]byte, error)
}

type adapterClient struct {
	client   adapter.EthClient
	contract common.Address
}

// NewAdapterClient binds a client to the adapter contract
func NewAdapterClient(client adapter.EthClient, contract common.Address) AdapterClient {
	return &adapterClient{client: client, contract: contract}
}

func (c *adapterClient) Address() common.Address {
	return c.contract
}

func (c *adapterClient) QuoteSend(ctx context.Context, param SendParam, payInLzToken bool) (*MessagingFee, error) {
	out, err := callView(ctx, c.client, onftAdapterABI, c.contract, "quoteSend", param, payInLzToken)
	if err != nil {
		return nil, err
	}

	fee := *abi.ConvertType(out[0], new(MessagingFee)).(*MessagingFee)
	if fee.NativeFee == nil {
		fee.NativeFee = new(big.Int)
	}
	if fee.LzTokenFee == nil {
		fee.LzTokenFee = new(big.Int)
	}
	return &fee, nil
}

func (c *adapterClient) PackSendFrom(from common.Address, param SendParam, fee MessagingFee, refund common.Address) ([]byte, error) {
	data, err := onftAdapterABI.Pack("sendFrom", from, param, fee, refund)
	if err != nil {
		return nil, fmt.Errorf("failed to pack sendFrom: %w", err)
	}
	return data, nil
}
