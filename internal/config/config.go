package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// ChainConfig holds the connection and wallet details of one chain
type ChainConfig struct {
	Key              string   `mapstructure:"key"`
	Name             string   `mapstructure:"name"`
	ChainID          uint64   `mapstructure:"chain_id"`
	RPCURL           string   `mapstructure:"rpc_url"`
	WalletRPCURLs    []string `mapstructure:"wallet_rpc_urls"`
	Explorer         string   `mapstructure:"explorer"`
	CurrencyName     string   `mapstructure:"currency_name"`
	CurrencySymbol   string   `mapstructure:"currency_symbol"`
	CurrencyDecimals int      `mapstructure:"currency_decimals"`

	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`          // How long the latest height is reused (e.g. "5s")
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"` // How long a cached height may serve when the endpoint fails
}

// Info converts the chain config into the domain description wallets use
func (c ChainConfig) Info() domain.ChainInfo {
	return domain.ChainInfo{
		Key:           domain.ChainKey(c.Key),
		Name:          c.Name,
		ChainID:       c.ChainID,
		WalletRPCURLs: c.WalletRPCURLs,
		Explorer:      c.Explorer,
		NativeCurrency: domain.NativeCurrency{
			Name:     c.CurrencyName,
			Symbol:   c.CurrencySymbol,
			Decimals: c.CurrencyDecimals,
		},
	}
}

// ContractsConfig holds the deployed collection and bridge addresses
type ContractsConfig struct {
	OriginalNFT    string `mapstructure:"original_nft"`
	Adapter        string `mapstructure:"adapter"`
	Mirror         string `mapstructure:"mirror"`
	DestinationEID uint32 `mapstructure:"destination_eid"`
}

// ScanConfig holds ownership resolution configuration
type ScanConfig struct {
	MaxBlocks        uint64        `mapstructure:"max_blocks"`
	ChunkSize        uint64        `mapstructure:"chunk_size"`
	FetchConcurrency int           `mapstructure:"fetch_concurrency"`
	EnumerationCap   uint64        `mapstructure:"enumeration_cap"`
	RetryMaxElapsed  time.Duration `mapstructure:"retry_max_elapsed"` // 0 disables rate-limit retries on log queries
	DisplayTTL       time.Duration `mapstructure:"display_ttl"`       // How long a displayed set is kept per owner
}

// PreviewConfig holds metadata preview configuration
type PreviewConfig struct {
	Limit       int           `mapstructure:"limit"`
	Concurrency int           `mapstructure:"concurrency"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	NamePrefix  string        `mapstructure:"name_prefix"`
}

// URIConfig holds URI resolver configuration
type URIConfig struct {
	IPFSGateways    []string `mapstructure:"ipfs_gateways"`
	ArweaveGateways []string `mapstructure:"arweave_gateways"`
}

// RPCProxyConfig holds the JSON-RPC forwarder configuration
type RPCProxyConfig struct {
	Upstreams         map[string]string `mapstructure:"upstreams"`
	RequestsPerSecond float64           `mapstructure:"requests_per_second"`
	Burst             int               `mapstructure:"burst"`
	UserAgent         string            `mapstructure:"user_agent"`
	Timeout           time.Duration     `mapstructure:"timeout"`
	MaxWorkers        int               `mapstructure:"max_workers"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// MetricsConfig holds prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig       `mapstructure:",squash"`
	Server           ServerConfig    `mapstructure:"server"`
	SourceChain      ChainConfig     `mapstructure:"source_chain"`
	DestinationChain ChainConfig     `mapstructure:"destination_chain"`
	Contracts        ContractsConfig `mapstructure:"contracts"`
	Scan             ScanConfig      `mapstructure:"scan"`
	Preview          PreviewConfig   `mapstructure:"preview"`
	URI              URIConfig       `mapstructure:"uri"`
	RPCProxy         RPCProxyConfig  `mapstructure:"rpc_proxy"`
	NATS             NATSConfig      `mapstructure:"nats"`
	Metrics          MetricsConfig   `mapstructure:"metrics"`
}

// CLIConfig holds configuration for moth-scan
type CLIConfig struct {
	BaseConfig       `mapstructure:",squash"`
	SourceChain      ChainConfig     `mapstructure:"source_chain"`
	DestinationChain ChainConfig     `mapstructure:"destination_chain"`
	Contracts        ContractsConfig `mapstructure:"contracts"`
	Scan             ScanConfig      `mapstructure:"scan"`
	Preview          PreviewConfig   `mapstructure:"preview"`
	URI              URIConfig       `mapstructure:"uri"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("rpc_proxy.upstreams.sonic", "https://rpc.soniclabs.com")
	v.SetDefault("rpc_proxy.upstreams.base", "https://mainnet.base.org")
	v.SetDefault("rpc_proxy.requests_per_second", 10)
	v.SetDefault("rpc_proxy.burst", 20)
	v.SetDefault("rpc_proxy.user_agent", "lampworks-rpc-proxy/1.0")
	v.SetDefault("rpc_proxy.timeout", "30s")
	v.SetDefault("rpc_proxy.max_workers", 32)
	v.SetDefault("nats.subject_prefix", "ownership")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "moth-bridge-api")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// LoadCLIConfig loads configuration for moth-scan
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("moth-scan", configFile, envPath)

	// Set defaults
	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config CLIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(config.SourceChain, config.DestinationChain, config.Contracts, config.Scan); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the fields the API cannot start without
func (c *APIConfig) Validate() error {
	if err := validateCommon(c.SourceChain, c.DestinationChain, c.Contracts, c.Scan); err != nil {
		return err
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.RPCProxy.RequestsPerSecond < 0 {
		return fmt.Errorf("rpc_proxy.requests_per_second must not be negative")
	}
	return nil
}

func validateCommon(source, destination ChainConfig, contracts ContractsConfig, scan ScanConfig) error {
	if source.RPCURL == "" {
		return fmt.Errorf("source_chain.rpc_url is required")
	}
	if source.Key == "" || destination.Key == "" {
		return fmt.Errorf("chain keys are required")
	}
	if source.Key == destination.Key {
		return fmt.Errorf("source and destination chain must differ")
	}

	for name, addr := range map[string]string{
		"contracts.original_nft": contracts.OriginalNFT,
		"contracts.adapter":      contracts.Adapter,
		"contracts.mirror":       contracts.Mirror,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%s is not a valid address: %q", name, addr)
		}
	}

	if scan.ChunkSize == 0 {
		return fmt.Errorf("scan.chunk_size must be positive")
	}
	if scan.FetchConcurrency <= 0 {
		return fmt.Errorf("scan.fetch_concurrency must be positive")
	}
	return nil
}

// setCommonDefaults sets the defaults of the deployed Sonic to Base bridge
func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("source_chain.key", string(domain.ChainSonic))
	v.SetDefault("source_chain.name", "Sonic")
	v.SetDefault("source_chain.chain_id", 146)
	v.SetDefault("source_chain.rpc_url", "https://rpc.soniclabs.com")
	v.SetDefault("source_chain.wallet_rpc_urls", []string{"https://rpc.soniclabs.com"})
	v.SetDefault("source_chain.explorer", "https://sonicscan.org")
	v.SetDefault("source_chain.currency_name", "S")
	v.SetDefault("source_chain.currency_symbol", "S")
	v.SetDefault("source_chain.currency_decimals", 18)
	v.SetDefault("source_chain.block_head_ttl", "5s")
	v.SetDefault("source_chain.block_head_stale_window", "1m")

	v.SetDefault("destination_chain.key", string(domain.ChainBase))
	v.SetDefault("destination_chain.name", "Base")
	v.SetDefault("destination_chain.chain_id", 8453)
	v.SetDefault("destination_chain.rpc_url", "https://mainnet.base.org")
	v.SetDefault("destination_chain.wallet_rpc_urls", []string{"https://mainnet.base.org"})
	v.SetDefault("destination_chain.explorer", "https://basescan.org")
	v.SetDefault("destination_chain.currency_name", "ETH")
	v.SetDefault("destination_chain.currency_symbol", "ETH")
	v.SetDefault("destination_chain.currency_decimals", 18)
	v.SetDefault("destination_chain.block_head_ttl", "5s")
	v.SetDefault("destination_chain.block_head_stale_window", "1m")

	v.SetDefault("contracts.original_nft", "0xd0b90C78F27A5773de511B94DF36552AAaEe2b76")
	v.SetDefault("contracts.adapter", "0xCe4506cd5467Cec86A0093D4C08b53f56F73815F")
	v.SetDefault("contracts.mirror", "0x48c743fd1ca4D3A56494D7430022C06Abb843ECe")
	v.SetDefault("contracts.destination_eid", 30184)

	v.SetDefault("scan.max_blocks", 250_000)
	v.SetDefault("scan.chunk_size", 5_000)
	v.SetDefault("scan.fetch_concurrency", 2)
	v.SetDefault("scan.enumeration_cap", 50)
	v.SetDefault("scan.retry_max_elapsed", "30s")
	v.SetDefault("scan.display_ttl", "30m")

	v.SetDefault("preview.limit", 12)
	v.SetDefault("preview.concurrency", 4)
	v.SetDefault("preview.cache_ttl", "10m")
	v.SetDefault("preview.http_timeout", "15s")
	v.SetDefault("preview.name_prefix", domain.DEFAULT_TOKEN_NAME_PREFIX)

	v.SetDefault("uri.ipfs_gateways", []string{domain.DEFAULT_IPFS_GATEWAY})
	v.SetDefault("uri.arweave_gateways", []string{domain.DEFAULT_ARWEAVE_GATEWAY})
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/moth-scan/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("MOTH_BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Contracts
		"contracts.original_nft",
		"contracts.adapter",
		"contracts.mirror",
		"contracts.destination_eid",
		// Scan
		"scan.max_blocks",
		"scan.chunk_size",
		"scan.fetch_concurrency",
		"scan.enumeration_cap",
		"scan.retry_max_elapsed",
		"scan.display_ttl",
		// Preview
		"preview.limit",
		"preview.concurrency",
		"preview.cache_ttl",
		"preview.http_timeout",
		"preview.name_prefix",
		// URI
		"uri.ipfs_gateways",
		"uri.arweave_gateways",
		// RPC proxy
		"rpc_proxy.upstreams.sonic",
		"rpc_proxy.upstreams.base",
		"rpc_proxy.requests_per_second",
		"rpc_proxy.burst",
		"rpc_proxy.user_agent",
		"rpc_proxy.timeout",
		"rpc_proxy.max_workers",
		// NATS
		"nats.url",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Metrics
		"metrics.enabled",
		"metrics.path",
	}

	chainKeys := []string{
		"key",
		"name",
		"chain_id",
		"rpc_url",
		"wallet_rpc_urls",
		"explorer",
		"currency_name",
		"currency_symbol",
		"currency_decimals",
		"block_head_ttl",
		"block_head_stale_window",
	}
	for _, chain := range []string{"source_chain", "destination_chain"} {
		for _, key := range chainKeys {
			commonKeys = append(commonKeys, chain+"."+key)
		}
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
