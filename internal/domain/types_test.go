package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainInfo_ChainIDHex(t *testing.T) {
	tests := []struct {
		name     string
		chainID  uint64
		expected string
	}{
		{name: "sonic", chainID: 146, expected: "0x92"},
		{name: "base", chainID: 8453, expected: "0x2105"},
		{name: "ethereum mainnet", chainID: 1, expected: "0x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChainInfo{ChainID: tt.chainID}.ChainIDHex())
		})
	}
}

func TestTransferEvent_Before(t *testing.T) {
	a := TransferEvent{BlockNumber: 10, LogIndex: 3}
	b := TransferEvent{BlockNumber: 10, LogIndex: 4}
	c := TransferEvent{BlockNumber: 11, LogIndex: 0}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(a))
	assert.False(t, a.Before(a))
}

func TestSortTransfersDesc(t *testing.T) {
	events := []TransferEvent{
		{BlockNumber: 5, LogIndex: 1, TokenID: big.NewInt(1)},
		{BlockNumber: 9, LogIndex: 0, TokenID: big.NewInt(2)},
		{BlockNumber: 5, LogIndex: 7, TokenID: big.NewInt(3)},
		{BlockNumber: 7, LogIndex: 2, TokenID: big.NewInt(4)},
	}

	SortTransfersDesc(events)

	var order []int64
	for _, e := range events {
		order = append(order, e.TokenID.Int64())
	}
	assert.Equal(t, []int64{2, 4, 3, 1}, order)
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected common.Address
		wantErr  bool
	}{
		{
			name:     "lowercase",
			input:    "0xd0b90c78f27a5773de511b94df36552aaaee2b76",
			expected: common.HexToAddress("0xd0b90C78F27A5773de511B94DF36552AAaEe2b76"),
		},
		{
			name:     "surrounding whitespace",
			input:    "  0xd0b90C78F27A5773de511B94DF36552AAaEe2b76 ",
			expected: common.HexToAddress("0xd0b90C78F27A5773de511B94DF36552AAaEe2b76"),
		},
		{name: "too short", input: "0x1234", wantErr: true},
		{name: "not hex", input: "moth", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0xd0b90C78F27A5773de511B94DF36552AAaEe2b76",
		NormalizeAddress("0xd0b90c78f27a5773de511b94df36552aaaee2b76"),
	)
	assert.Equal(t, "not-an-address", NormalizeAddress("not-an-address"))
}

func TestParseTokenID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "decimal", input: "42", expected: "42"},
		{name: "zero", input: "0", expected: "0"},
		{name: "leading zeros", input: "00012", expected: "12"},
		{name: "hex", input: "0x2a", expected: "42"},
		{name: "upper hex prefix", input: " 0X2A ", expected: "42"},
		{name: "beyond uint64", input: "340282366920938463463374607431768211456", expected: "340282366920938463463374607431768211456"},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "explicit sign", input: "+5", wantErr: true},
		{name: "separator", input: "1_000", wantErr: true},
		{name: "bare prefix", input: "0x", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "fraction", input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseTokenID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "token_id", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id.String())
		})
	}
}

func TestSortTokenIDs(t *testing.T) {
	ids := []*big.Int{big.NewInt(30), big.NewInt(2), big.NewInt(100), big.NewInt(7)}

	SortTokenIDs(ids)

	assert.Equal(t, []string{"2", "7", "30", "100"}, TokenIDStrings(ids))
}

func TestTokenIDStrings_Empty(t *testing.T) {
	assert.Equal(t, []string{}, TokenIDStrings(nil))
}

func TestScanError(t *testing.T) {
	cause := errors.New("429 too many requests")

	ranged := &ScanError{Op: "filter logs", FromBlock: 100, ToBlock: 199, Err: cause}
	assert.Equal(t, "scan filter logs [100-199]: endpoint unavailable: 429 too many requests", ranged.Error())
	assert.ErrorIs(t, ranged, ErrEndpointUnavailable)
	assert.ErrorIs(t, ranged, cause)

	plain := &ScanError{Op: "latest block", Err: cause}
	assert.Equal(t, "scan latest block: endpoint unavailable: 429 too many requests", plain.Error())
}

func TestVerificationError(t *testing.T) {
	cause := errors.New("execution reverted")
	err := &VerificationError{TokenID: "7", Err: cause}

	assert.Equal(t, "verify token 7: execution reverted", err.Error())
	assert.ErrorIs(t, err, ErrVerificationFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEndpointUnavailable)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "token_id", Value: "x", Reason: "not a number"}

	assert.Equal(t, `invalid token_id "x": not a number`, err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
