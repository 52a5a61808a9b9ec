package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
)

// CollectionClient reads one ERC-721 contract on one chain
//
//go:generate mockgen -source=collection.go -destination=../../mocks/collection_client.go -package=mocks -mock_names=CollectionClient=MockCollectionClient
type CollectionClient interface {
	// Address returns the contract address the client is bound to
	Address() common.Address

	// BalanceOf returns the number of tokens held by owner
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)

	// OwnerOf returns the current owner of a token
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)

	// TokenOfOwnerByIndex reads the enumeration extension; contracts without it revert
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error)

	// TokenURI returns the metadata URI of a token
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)

	// IsApprovedForAll reports whether operator may move every token of owner
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)

	// IncomingTransfers returns Transfer events with to == owner in [fromBlock, toBlock], newest first
	IncomingTransfers(ctx context.Context, owner common.Address, fromBlock, toBlock uint64) ([]domain.TransferEvent, error)

	// PackSetApprovalForAll returns calldata for an approval transaction the wallet signs
	PackSetApprovalForAll(operator common.Address, approved bool) ([]byte, error)
}

type collectionClient struct {
	client          adapter.EthClient
	contract        common.Address
	retryMaxElapsed time.Duration
}

// NewCollectionClient binds a client to contract.
// retryMaxElapsed bounds backoff on rate-limited log queries; 0 disables retrying.
func NewCollectionClient(client adapter.EthClient, contract common.Address, retryMaxElapsed time.Duration) CollectionClient {
	return &collectionClient{
		client:          client,
		contract:        contract,
		retryMaxElapsed: retryMaxElapsed,
	}
}

func (c *collectionClient) Address() common.Address {
	return c.contract
}

func (c *collectionClient) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := callView(ctx, c.client, erc721ABI, c.contract, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (c *collectionClient) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	out, err := callView(ctx, c.client, erc721ABI, c.contract, "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *collectionClient) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error) {
	out, err := callView(ctx, c.client, erc721ABI, c.contract, "tokenOfOwnerByIndex", owner, new(big.Int).SetUint64(index))
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (c *collectionClient) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := callView(ctx, c.client, erc721ABI, c.contract, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (c *collectionClient) IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error) {
	out, err := callView(ctx, c.client, erc721ABI, c.contract, "isApprovedForAll", owner, operator)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *collectionClient) PackSetApprovalForAll(operator common.Address, approved bool) ([]byte, error) {
	data, err := erc721ABI.Pack("setApprovalForAll", operator, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to pack setApprovalForAll: %w", err)
	}
	return data, nil
}

func (c *collectionClient) IncomingTransfers(ctx context.Context, owner common.Address, fromBlock, toBlock uint64) ([]domain.TransferEvent, error) {
	if fromBlock > toBlock {
		return nil, nil
	}

	query := ethereum.FilterQuery{
		Addresses: []common.Address{c.contract},
		Topics: [][]common.Hash{
			{TransferEventSignature},
			nil,
			{AddressToTopic(owner)},
		},
	}

	logs, err := c.getLogsWithSplitting(ctx, query, fromBlock, toBlock)
	if err != nil {
		return nil, err
	}

	events := make([]domain.TransferEvent, 0, len(logs))
	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}
		event, ok := DecodeTransferLog(vLog)
		if !ok || event.To != owner {
			continue
		}
		events = append(events, event)
	}
	domain.SortTransfersDesc(events)

	return events, nil
}

// getLogsWithSplitting covers [fromBlock, toBlock] and halves the step
// whenever the endpoint rejects a range for returning too many results
func (c *collectionClient) getLogsWithSplitting(ctx context.Context, query ethereum.FilterQuery, fromBlock, toBlock uint64) ([]types.Log, error) {
	stepSize := toBlock - fromBlock + 1

	var allLogs []types.Log
	currentFrom := fromBlock
	for currentFrom <= toBlock {
		currentTo := currentFrom + stepSize - 1
		if currentTo > toBlock {
			currentTo = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(currentFrom)
		rangeQuery.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.filterLogs(ctx, rangeQuery)
		if err == nil {
			allLogs = append(allLogs, logs...)
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		stepSize /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", stepSize*2),
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// filterLogs issues one FilterLogs call, backing off while the endpoint rate limits us
func (c *collectionClient) filterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	if c.retryMaxElapsed <= 0 {
		return c.client.FilterLogs(ctx, query)
	}

	var logs []types.Log
	operation := func() error {
		var err error
		logs, err = c.client.FilterLogs(ctx, query)
		if err == nil {
			return nil
		}
		if isRateLimitError(err) {
			logger.WarnCtx(ctx, "Rate limited by endpoint, retrying with backoff", zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 8 * time.Second
	b.MaxElapsedTime = c.retryMaxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return logs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "query returned more than") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "block range") ||
		strings.Contains(errStr, "exceeded maximum")
}

// limitExceededCode is the JSON-RPC error code nodes use for request throttling
const limitExceededCode = -32005

// isRateLimitError checks if the endpoint throttled the request
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == limitExceededCode {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

// callView packs a call, executes it against latest state and unpacks the outputs
func callView(ctx context.Context, client adapter.EthClient, parsed abi.ABI, contract common.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	out, err := parsed.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty result from %s", method)
	}
	return out, nil
}
