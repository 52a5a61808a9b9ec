package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// TransferEventSignature is keccak256("Transfer(address,address,uint256)").
// ERC-20 shares the signature, so the topic count tells the standards apart.
var TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// AddressToTopic left-pads an address to a 32-byte topic
func AddressToTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

// TopicToAddress takes the low 20 bytes of an indexed address topic
func TopicToAddress(topic common.Hash) common.Address {
	return common.BytesToAddress(topic.Bytes())
}

// TokenIDToTopic encodes a uint256 token id as a topic
func TokenIDToTopic(id *big.Int) common.Hash {
	return common.BigToHash(id)
}

// TopicToTokenID decodes an indexed uint256 topic
func TopicToTokenID(topic common.Hash) *big.Int {
	return new(big.Int).SetBytes(topic.Bytes())
}

// DecodeTransferLog converts an ERC-721 Transfer log.
// It returns false for logs that are not a 4-topic Transfer (ERC-20 transfers, other events).
func DecodeTransferLog(vLog types.Log) (domain.TransferEvent, bool) {
	if len(vLog.Topics) != 4 || vLog.Topics[0] != TransferEventSignature {
		return domain.TransferEvent{}, false
	}

	return domain.TransferEvent{
		From:        TopicToAddress(vLog.Topics[1]),
		To:          TopicToAddress(vLog.Topics[2]),
		TokenID:     TopicToTokenID(vLog.Topics[3]),
		BlockNumber: vLog.BlockNumber,
		LogIndex:    vLog.Index,
		TxHash:      vLog.TxHash,
	}, true
}
