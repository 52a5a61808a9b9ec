package wallet_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/mocks"
	"github.com/lampworks/moth-bridge/internal/wallet"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var sonic = domain.ChainInfo{
	Key:           domain.ChainSonic,
	Name:          "Sonic",
	ChainID:       146,
	WalletRPCURLs: []string{"https://rpc.soniclabs.com"},
	Explorer:      "https://sonicscan.org",
	NativeCurrency: domain.NativeCurrency{
		Name:     "S",
		Symbol:   "S",
		Decimals: 18,
	},
}

var base = domain.ChainInfo{
	Key:            domain.ChainBase,
	Name:           "Base",
	ChainID:        8453,
	WalletRPCURLs:  []string{"https://mainnet.base.org"},
	Explorer:       "https://basescan.org",
	NativeCurrency: domain.NativeCurrency{Name: "ETH", Symbol: "ETH", Decimals: 18},
}

func TestEnsureChain_AlreadyOnChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockWalletProvider(ctrl)
	provider.EXPECT().ChainID(gomock.Any()).Return("0x92", nil)

	id, err := wallet.EnsureChain(context.Background(), provider, sonic)

	require.NoError(t, err)
	assert.Equal(t, uint64(146), id)
}

func TestEnsureChain_Switches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockWalletProvider(ctrl)
	gomock.InOrder(
		provider.EXPECT().ChainID(gomock.Any()).Return("0x2105", nil),
		provider.EXPECT().SwitchChain(gomock.Any(), "0x92").Return(nil),
		provider.EXPECT().ChainID(gomock.Any()).Return("0x92", nil),
	)

	id, err := wallet.EnsureChain(context.Background(), provider, sonic)

	require.NoError(t, err)
	assert.Equal(t, uint64(146), id)
}

func TestEnsureChain_AddsUnrecognizedChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockWalletProvider(ctrl)
	gomock.InOrder(
		provider.EXPECT().ChainID(gomock.Any()).Return("0x92", nil),
		provider.EXPECT().SwitchChain(gomock.Any(), "0x2105").
			Return(&wallet.ProviderError{Code: domain.WALLET_UNRECOGNIZED_CHAIN_CODE, Message: "Unrecognized chain ID"}),
		provider.EXPECT().AddChain(gomock.Any(), wallet.AddChainParams{
			ChainID:           "0x2105",
			ChainName:         "Base",
			RPCURLs:           []string{"https://mainnet.base.org"},
			NativeCurrency:    domain.NativeCurrency{Name: "ETH", Symbol: "ETH", Decimals: 18},
			BlockExplorerURLs: []string{"https://basescan.org"},
		}).Return(nil),
		provider.EXPECT().ChainID(gomock.Any()).Return("0x2105", nil),
	)

	id, err := wallet.EnsureChain(context.Background(), provider, base)

	require.NoError(t, err)
	assert.Equal(t, uint64(8453), id)
}

func TestEnsureChain_UserRejectsSwitch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockWalletProvider(ctrl)
	provider.EXPECT().ChainID(gomock.Any()).Return("0x1", nil)
	provider.EXPECT().SwitchChain(gomock.Any(), "0x92").
		Return(&wallet.ProviderError{Code: domain.WALLET_USER_REJECTED_CODE, Message: "User rejected the request."})

	_, err := wallet.EnsureChain(context.Background(), provider, sonic)

	assert.ErrorIs(t, err, domain.ErrWalletRejected)
}

func TestEnsureChain_UserRejectsAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockWalletProvider(ctrl)
	provider.EXPECT().ChainID(gomock.Any()).Return("0x1", nil)
	provider.EXPECT().SwitchChain(gomock.Any(), "0x92").
		Return(&wallet.ProviderError{Code: domain.WALLET_UNRECOGNIZED_CHAIN_CODE})
	provider.EXPECT().AddChain(gomock.Any(), gomock.Any()).
		Return(&wallet.ProviderError{Code: domain.WALLET_USER_REJECTED_CODE})

	_, err := wallet.EnsureChain(context.Background(), provider, sonic)

	assert.ErrorIs(t, err, domain.ErrWalletRejected)
	assert.ErrorContains(t, err, "failed to add Sonic")
}

func TestEnsureChain_ChainIDFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockWalletProvider(ctrl)
	provider.EXPECT().ChainID(gomock.Any()).Return("", errors.New("disconnected"))

	_, err := wallet.EnsureChain(context.Background(), provider, sonic)

	assert.ErrorContains(t, err, "failed to read wallet chain")
}

func TestProviderError(t *testing.T) {
	rejected := &wallet.ProviderError{Code: 4001, Message: "User rejected the request."}
	unknown := &wallet.ProviderError{Code: 4902, Message: "Unrecognized chain"}
	other := &wallet.ProviderError{Code: -32603, Message: "Internal error"}

	assert.ErrorIs(t, rejected, domain.ErrWalletRejected)
	assert.NotErrorIs(t, unknown, domain.ErrWalletRejected)
	assert.NotErrorIs(t, other, domain.ErrWalletRejected)

	assert.True(t, wallet.IsUnrecognizedChain(unknown))
	assert.True(t, wallet.IsUnrecognizedChain(errors.Join(errors.New("switch"), unknown)))
	assert.False(t, wallet.IsUnrecognizedChain(rejected))
	assert.False(t, wallet.IsUnrecognizedChain(nil))

	assert.Equal(t, "wallet error 4001: User rejected the request.", rejected.Error())
}

func TestParseChainID(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
		wantErr  bool
	}{
		{input: "0x92", expected: 146},
		{input: "0X2105", expected: 8453},
		{input: "8453", expected: 8453},
		{input: " 0x1 ", expected: 1},
		{input: "0x", wantErr: true},
		{input: "sonic", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := wallet.ParseChainID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}
