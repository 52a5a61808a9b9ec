package ownership_test

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lampworks/moth-bridge/internal/domain"
)

var errReverted = errors.New("execution reverted")

// fakeChain is a scripted ERC-721 contract: current owners plus a transfer history
type fakeChain struct {
	mu         sync.Mutex
	owners     map[string]common.Address
	transfers  []domain.TransferEvent
	enumerable bool
	ownerOfErr map[string]error
	logErr     map[uint64]error
	latest     uint64

	balanceCalls   int
	ownerOfCalls   int
	enumerateCalls int
	logCalls       int
	heightCalls    int
}

func newFakeChain(latest uint64) *fakeChain {
	return &fakeChain{
		owners:     make(map[string]common.Address),
		ownerOfErr: make(map[string]error),
		logErr:     make(map[uint64]error),
		latest:     latest,
	}
}

// transfer records a Transfer log and moves current ownership
func (f *fakeChain) transfer(from, to common.Address, tokenID int64, blockNumber uint64, logIndex uint) {
	id := big.NewInt(tokenID)
	f.transfers = append(f.transfers, domain.TransferEvent{
		From:        from,
		To:          to,
		TokenID:     id,
		BlockNumber: blockNumber,
		LogIndex:    logIndex,
	})
	f.owners[id.String()] = to
}

// incomingLog records a log to owner without changing current ownership
func (f *fakeChain) incomingLog(to common.Address, tokenID int64, blockNumber uint64, logIndex uint) {
	f.transfers = append(f.transfers, domain.TransferEvent{
		From:        common.HexToAddress("0x000000000000000000000000000000000000dEaD"),
		To:          to,
		TokenID:     big.NewInt(tokenID),
		BlockNumber: blockNumber,
		LogIndex:    logIndex,
	})
}

func (f *fakeChain) Address() common.Address {
	return common.HexToAddress("0xd0b90C78F27A5773de511B94DF36552AAaEe2b76")
}

func (f *fakeChain) BalanceOf(_ context.Context, owner common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceCalls++

	count := int64(0)
	for _, o := range f.owners {
		if o == owner {
			count++
		}
	}
	return big.NewInt(count), nil
}

func (f *fakeChain) OwnerOf(_ context.Context, tokenID *big.Int) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownerOfCalls++

	if err := f.ownerOfErr[tokenID.String()]; err != nil {
		return common.Address{}, err
	}
	owner, ok := f.owners[tokenID.String()]
	if !ok {
		return common.Address{}, errReverted
	}
	return owner, nil
}

func (f *fakeChain) TokenOfOwnerByIndex(_ context.Context, owner common.Address, index uint64) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enumerateCalls++

	if !f.enumerable {
		return nil, errReverted
	}
	var ids []*big.Int
	for raw, o := range f.owners {
		if o == owner {
			id, _ := new(big.Int).SetString(raw, 10)
			ids = append(ids, id)
		}
	}
	domain.SortTokenIDs(ids)
	if index >= uint64(len(ids)) {
		return nil, errReverted
	}
	return ids[index], nil
}

func (f *fakeChain) TokenURI(_ context.Context, tokenID *big.Int) (string, error) {
	return "ipfs://meta/" + tokenID.String(), nil
}

func (f *fakeChain) IsApprovedForAll(context.Context, common.Address, common.Address) (bool, error) {
	return false, nil
}

func (f *fakeChain) PackSetApprovalForAll(common.Address, bool) ([]byte, error) {
	return nil, nil
}

func (f *fakeChain) IncomingTransfers(_ context.Context, owner common.Address, fromBlock, toBlock uint64) ([]domain.TransferEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logCalls++

	if err := f.logErr[fromBlock]; err != nil {
		return nil, err
	}
	var found []domain.TransferEvent
	for _, e := range f.transfers {
		if e.To == owner && e.BlockNumber >= fromBlock && e.BlockNumber <= toBlock {
			found = append(found, e)
		}
	}
	domain.SortTransfersDesc(found)
	return found, nil
}

// GetLatestBlock lets the fake double as the block head provider
func (f *fakeChain) GetLatestBlock(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heightCalls++
	return f.latest, nil
}

// replayOwned is the bidirectional replay the resolver deliberately avoids: it trusts
// the logs inside [fromBlock, toBlock] as the full ownership history
func replayOwned(events []domain.TransferEvent, owner common.Address, fromBlock, toBlock uint64) map[string]bool {
	ordered := make([]domain.TransferEvent, 0, len(events))
	for _, e := range events {
		if e.BlockNumber >= fromBlock && e.BlockNumber <= toBlock {
			ordered = append(ordered, e)
		}
	}
	domain.SortTransfersDesc(ordered)

	held := make(map[string]bool)
	for i := len(ordered) - 1; i >= 0; i-- {
		e := ordered[i]
		if e.To == owner {
			held[e.TokenID.String()] = true
		}
		if e.From == owner {
			delete(held, e.TokenID.String())
		}
	}
	return held
}
