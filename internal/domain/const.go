package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY    = "https://ipfs.io"
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// EIP-1193 provider error codes
	WALLET_USER_REJECTED_CODE      = 4001
	WALLET_UNRECOGNIZED_CHAIN_CODE = 4902

	// Display name used when token metadata has no name
	DEFAULT_TOKEN_NAME_PREFIX = "Midnight Moth"
)
