package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// erc721ABIJSON covers the ERC-721 views used for ownership plus the optional enumeration extension
const erc721ABIJSON = `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"}]}
]`

// onftAdapterABIJSON is the LayerZero ONFT v2 adapter surface used for fee quoting and sending
const onftAdapterABIJSON = `[
	{"type":"function","name":"quoteSend","stateMutability":"view","inputs":[
		{"name":"_sendParam","type":"tuple","components":[
			{"name":"dstEid","type":"uint32"},{"name":"to","type":"bytes32"},{"name":"tokenId","type":"uint256"},
			{"name":"extraOptions","type":"bytes"},{"name":"composeMsg","type":"bytes"},{"name":"onftCmd","type":"bytes"}]},
		{"name":"_payInLzToken","type":"bool"}],
	 "outputs":[{"name":"fee","type":"tuple","components":[{"name":"nativeFee","type":"uint256"},{"name":"lzTokenFee","type":"uint256"}]}]},
	{"type":"function","name":"sendFrom","stateMutability":"payable","inputs":[
		{"name":"_from","type":"address"},
		{"name":"_sendParam","type":"tuple","components":[
			{"name":"dstEid","type":"uint32"},{"name":"to","type":"bytes32"},{"name":"tokenId","type":"uint256"},
			{"name":"extraOptions","type":"bytes"},{"name":"composeMsg","type":"bytes"},{"name":"onftCmd","type":"bytes"}]},
		{"name":"_fee","type":"tuple","components":[{"name":"nativeFee","type":"uint256"},{"name":"lzTokenFee","type":"uint256"}]},
		{"name":"_refundAddress","type":"address"}],
	 "outputs":[]}
]`

var (
	erc721ABI      = mustParseABI(erc721ABIJSON)
	onftAdapterABI = mustParseABI(onftAdapterABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("invalid embedded ABI: " + err.Error())
	}
	return parsed
}
