package wallet_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/wallet"
)

var holder = common.HexToAddress("0x1111111111111111111111111111111111111111")

func TestWatchOnly_EnsureChainRoundTrip(t *testing.T) {
	w := wallet.NewWatchOnly(holder, sonic)
	ctx := context.Background()

	var switched []string
	unsubscribe := w.OnChainChanged(func(id string) { switched = append(switched, id) })
	defer unsubscribe()

	// Base is unknown, so EnsureChain must add it
	id, err := wallet.EnsureChain(ctx, w, base)
	require.NoError(t, err)
	assert.Equal(t, uint64(8453), id)

	id, err = wallet.EnsureChain(ctx, w, sonic)
	require.NoError(t, err)
	assert.Equal(t, uint64(146), id)

	assert.Equal(t, []string{"0x2105", "0x92"}, switched)
}

func TestWatchOnly_SwitchUnknownChain(t *testing.T) {
	w := wallet.NewWatchOnly(holder, sonic)

	err := w.SwitchChain(context.Background(), "0x2105")

	assert.True(t, wallet.IsUnrecognizedChain(err))
	raw, _ := w.ChainID(context.Background())
	assert.Equal(t, "0x92", raw)
}

func TestWatchOnly_AccountsAndUnsubscribe(t *testing.T) {
	w := wallet.NewWatchOnly(holder, sonic, base)
	other := common.HexToAddress("0x2222222222222222222222222222222222222222")

	accounts, err := w.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{holder}, accounts)

	var seen [][]common.Address
	unsubscribe := w.OnAccountsChanged(func(a []common.Address) { seen = append(seen, a) })
	unsubscribeChain := w.OnChainChanged(func(string) {})
	assert.Equal(t, 2, w.Subscribers())

	w.SetAccount(other)
	unsubscribe()
	unsubscribe()
	w.SetAccount(holder)

	assert.Equal(t, [][]common.Address{{other}}, seen)
	assert.Equal(t, 1, w.Subscribers())

	unsubscribeChain()
	assert.Equal(t, 0, w.Subscribers())
}

func TestNewAddChainParams(t *testing.T) {
	params := wallet.NewAddChainParams(domain.ChainInfo{Name: "Bare", ChainID: 10})

	assert.Equal(t, "0xa", params.ChainID)
	assert.Nil(t, params.BlockExplorerURLs)
}
