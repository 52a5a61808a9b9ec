package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampworks/moth-bridge/internal/mocks"
	"github.com/lampworks/moth-bridge/internal/providers/ethereum"
)

var onftAdapter = common.HexToAddress("0xCe4506cd5467Cec86A0093D4C08b53f56F73815F")

func TestNewSendParam(t *testing.T) {
	param := ethereum.NewSendParam(30184, owner, big.NewInt(12))

	assert.Equal(t, uint32(30184), param.DstEid)
	assert.Equal(t, ethereum.AddressToTopic(owner), common.Hash(param.To))
	assert.Equal(t, "12", param.TokenId.String())
	assert.Empty(t, param.ExtraOptions)
	assert.Empty(t, param.ComposeMsg)
	assert.Empty(t, param.OnftCmd)
}

func TestAdapterClient_QuoteSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	adapterClient := ethereum.NewAdapterClient(client, onftAdapter)

	fee := append(word(big.NewInt(1_500_000_000_000_000)), word(big.NewInt(0))...)
	client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg gethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, onftAdapter, *msg.To)
			assert.Equal(t, selector("quoteSend((uint32,bytes32,uint256,bytes,bytes,bytes),bool)"), hexutil.Encode(msg.Data[:4]))
			return fee, nil
		})

	quote, err := adapterClient.QuoteSend(context.Background(), ethereum.NewSendParam(30184, owner, big.NewInt(12)), false)

	require.NoError(t, err)
	assert.Equal(t, "1500000000000000", quote.NativeFee.String())
	assert.Equal(t, "0", quote.LzTokenFee.String())
}

func TestAdapterClient_QuoteSend_CallFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	adapterClient := ethereum.NewAdapterClient(client, onftAdapter)

	client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, errors.New("execution reverted"))

	_, err := adapterClient.QuoteSend(context.Background(), ethereum.NewSendParam(30184, owner, big.NewInt(12)), false)

	assert.ErrorContains(t, err, "failed to call quoteSend")
}

func TestAdapterClient_PackSendFrom(t *testing.T) {
	adapterClient := ethereum.NewAdapterClient(nil, onftAdapter)

	data, err := adapterClient.PackSendFrom(
		owner,
		ethereum.NewSendParam(30184, owner, big.NewInt(12)),
		ethereum.MessagingFee{NativeFee: big.NewInt(10), LzTokenFee: big.NewInt(0)},
		owner,
	)

	require.NoError(t, err)
	assert.Equal(t,
		selector("sendFrom(address,(uint32,bytes32,uint256,bytes,bytes,bytes),(uint256,uint256),address)"),
		hexutil.Encode(data[:4]))
}
