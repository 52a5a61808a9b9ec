package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/api/server"
	"github.com/lampworks/moth-bridge/internal/api/shared/executor"
	"github.com/lampworks/moth-bridge/internal/block"
	"github.com/lampworks/moth-bridge/internal/bridge"
	"github.com/lampworks/moth-bridge/internal/config"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/metadata"
	"github.com/lampworks/moth-bridge/internal/ownership"
	"github.com/lampworks/moth-bridge/internal/providers/ethereum"
	"github.com/lampworks/moth-bridge/internal/providers/jetstream"
	"github.com/lampworks/moth-bridge/internal/rpcproxy"
	"github.com/lampworks/moth-bridge/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "moth-bridge-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting moth bridge API")

	// Connect to the source chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.SourceChain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial source chain", zap.Error(err), zap.String("chain", cfg.SourceChain.Key))
	}
	defer ethClient.Close()
	logger.InfoCtx(ctx, "Connected to source chain", zap.String("chain", cfg.SourceChain.Key))

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Chain readers
	contract := common.HexToAddress(cfg.Contracts.OriginalNFT)
	collection := ethereum.NewCollectionClient(ethClient, contract, cfg.Scan.RetryMaxElapsed)
	adapterClient := ethereum.NewAdapterClient(ethClient, common.HexToAddress(cfg.Contracts.Adapter))
	heads := block.NewBlockHeadProvider(ethereum.NewBlockFetcher(ethClient), block.Config{
		TTL:         cfg.SourceChain.BlockHeadTTL,
		StaleWindow: cfg.SourceChain.BlockHeadStaleWindow,
	}, clock)

	// Ownership
	resolver := ownership.NewResolver(collection, heads, clock, ownership.Config{
		MaxBlocks:        cfg.Scan.MaxBlocks,
		ChunkSize:        cfg.Scan.ChunkSize,
		FetchConcurrency: cfg.Scan.FetchConcurrency,
		EnumerationCap:   cfg.Scan.EnumerationCap,
	})
	tracker := ownership.NewTracker(cfg.Scan.DisplayTTL)

	// Previews
	previews := metadata.NewLoader(
		collection,
		adapter.NewHTTPClient(cfg.Preview.HTTPTimeout, adapter.DefaultRetryConfig),
		jsonAdapter,
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
	defer previews.Close()

	// Snapshot publisher, a no-op when NATS is not configured
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		SubjectPrefix:  cfg.NATS.SubjectPrefix,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create snapshot publisher", zap.Error(err))
	}
	defer publisher.Close()

	planner := bridge.NewPlanner(collection, adapterClient, resolver, bridge.Config{
		SourceChain:    cfg.SourceChain.Info(),
		DestinationEID: cfg.Contracts.DestinationEID,
		Mirror:         common.HexToAddress(cfg.Contracts.Mirror),
	})

	exec := executor.NewExecutor(resolver, previews, tracker, publisher, planner, clock, executor.Config{
		SourceChain:      cfg.SourceChain.Info(),
		DestinationChain: cfg.DestinationChain.Info(),
		Contract:         contract,
	})

	// JSON-RPC relay
	forwarder := rpcproxy.NewForwarder(rpcproxy.Config{
		Upstreams:         cfg.RPCProxy.Upstreams,
		RequestsPerSecond: cfg.RPCProxy.RequestsPerSecond,
		Burst:             cfg.RPCProxy.Burst,
		UserAgent:         cfg.RPCProxy.UserAgent,
		MaxWorkers:        cfg.RPCProxy.MaxWorkers,
	}, adapter.NewHTTPClient(cfg.RPCProxy.Timeout, adapter.DefaultRetryConfig))
	defer forwarder.Close()
	logger.InfoCtx(ctx, "RPC relay ready", zap.Strings("chains", forwarder.Chains()))

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	}

	// Create and start server
	srv := server.New(serverConfig, exec, forwarder)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Don't use the canceled ctx for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
