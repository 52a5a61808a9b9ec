package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/api/shared/executor"
	"github.com/lampworks/moth-bridge/internal/block"
	"github.com/lampworks/moth-bridge/internal/bridge"
	"github.com/lampworks/moth-bridge/internal/config"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/messaging"
	"github.com/lampworks/moth-bridge/internal/metadata"
	"github.com/lampworks/moth-bridge/internal/ownership"
	"github.com/lampworks/moth-bridge/internal/providers/ethereum"
	"github.com/lampworks/moth-bridge/internal/uri"
)

// rootOptions holds the persistent flags
type rootOptions struct {
	configFile string
	envPath    string
}

// executorFactory builds the executor a command runs against, plus its cleanup
type executorFactory func(ctx context.Context, opts rootOptions) (executor.Executor, func(), error)

// newRootCmd assembles the command tree; build is called once per invocation
func newRootCmd(build executorFactory) *cobra.Command {
	opts := rootOptions{}
	var (
		exec    executor.Executor
		cleanup func()
	)

	root := &cobra.Command{
		Use:           "moth-scan",
		Short:         "Inspect Moth ownership on the source chain and plan bridge transfers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			exec, cleanup, err = build(cmd.Context(), opts)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&opts.envPath, "env", "config/", "Path to environment files")

	current := func() executor.Executor { return exec }
	root.AddCommand(
		newScanCmd(current),
		newVerifyCmd(current),
		newPreviewCmd(current),
		newPlanCmd(current),
	)
	return root
}

// buildExecutor wires the read-only stack from the CLI configuration
func buildExecutor(ctx context.Context, opts rootOptions) (executor.Executor, func(), error) {
	config.ChdirRepoRoot()
	cfg, err := config.LoadCLIConfig(opts.configFile, opts.envPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "moth-scan",
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.SourceChain.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial %s: %w", cfg.SourceChain.Key, err)
	}

	clock := adapter.NewClock()
	contract := common.HexToAddress(cfg.Contracts.OriginalNFT)
	collection := ethereum.NewCollectionClient(ethClient, contract, cfg.Scan.RetryMaxElapsed)
	heads := block.NewBlockHeadProvider(ethereum.NewBlockFetcher(ethClient), block.Config{
		TTL:         cfg.SourceChain.BlockHeadTTL,
		StaleWindow: cfg.SourceChain.BlockHeadStaleWindow,
	}, clock)

	resolver := ownership.NewResolver(collection, heads, clock, ownership.Config{
		MaxBlocks:        cfg.Scan.MaxBlocks,
		ChunkSize:        cfg.Scan.ChunkSize,
		FetchConcurrency: cfg.Scan.FetchConcurrency,
		EnumerationCap:   cfg.Scan.EnumerationCap,
	})

	previews := metadata.NewLoader(
		collection,
		adapter.NewHTTPClient(cfg.Preview.HTTPTimeout, adapter.DefaultRetryConfig),
		adapter.NewJSON(),
		uri.NewTranslator(&uri.Config{
			IPFSGateways:    cfg.URI.IPFSGateways,
			ArweaveGateways: cfg.URI.ArweaveGateways,
		}),
		uri.NewDataURIChecker(),
		metadata.Config{
			Limit:       cfg.Preview.Limit,
			Concurrency: cfg.Preview.Concurrency,
			CacheTTL:    cfg.Preview.CacheTTL,
			NamePrefix:  cfg.Preview.NamePrefix,
		},
	)

	planner := bridge.NewPlanner(
		collection,
		ethereum.NewAdapterClient(ethClient, common.HexToAddress(cfg.Contracts.Adapter)),
		resolver,
		bridge.Config{
			SourceChain:    cfg.SourceChain.Info(),
			DestinationEID: cfg.Contracts.DestinationEID,
			Mirror:         common.HexToAddress(cfg.Contracts.Mirror),
		},
	)

	exec := executor.NewExecutor(
		resolver,
		previews,
		ownership.NewTracker(cfg.Scan.DisplayTTL),
		messaging.NewNoopPublisher(),
		planner,
		clock,
		executor.Config{
			SourceChain:      cfg.SourceChain.Info(),
			DestinationChain: cfg.DestinationChain.Info(),
			Contract:         contract,
		},
	)

	cleanup := func() {
		previews.Close()
		ethClient.Close()
	}
	return exec, cleanup, nil
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
