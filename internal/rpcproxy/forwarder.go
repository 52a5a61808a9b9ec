package rpcproxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/metrics"
)

// ErrUpstreamUnavailable is returned when the upstream cannot be reached at all
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

const (
	defaultMaxWorkers  = 32
	defaultContentType = "application/json"
)

// Config holds the forwarder configuration
type Config struct {
	// Upstreams maps a chain key to its JSON-RPC endpoint
	Upstreams map[string]string
	// RequestsPerSecond limits forwarding per chain; 0 disables limiting
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
	// MaxWorkers bounds upstream requests in flight across all chains
	MaxWorkers int
}

// Response is the upstream answer, passed through unmodified
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forwarder relays raw JSON-RPC bodies to a fixed set of upstreams
//
//go:generate mockgen -source=forwarder.go -destination=../mocks/rpc_forwarder.go -package=mocks -mock_names=Forwarder=MockForwarder
type Forwarder interface {
	// Forward posts body to the upstream of chain.
	// Non-2xx upstream statuses are returned as responses, not errors.
	Forward(ctx context.Context, chain string, body []byte) (*Response, error)

	// Chains lists the known chain keys, sorted
	Chains() []string

	// Close waits for requests in flight and stops the worker pool
	Close()
}

type upstream struct {
	url     string
	limiter *rate.Limiter
}

type forwarder struct {
	http      adapter.HTTPClient
	pool      pond.ResultPool[*Response]
	upstreams map[string]*upstream
	userAgent string
	closeOnce sync.Once
}

// NewForwarder creates a forwarder with one limiter per upstream
func NewForwarder(cfg Config, httpClient adapter.HTTPClient) Forwarder {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultMaxWorkers
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := max(cfg.Burst, 1)

	upstreams := make(map[string]*upstream, len(cfg.Upstreams))
	for chain, url := range cfg.Upstreams {
		upstreams[chain] = &upstream{
			url:     url,
			limiter: rate.NewLimiter(limit, burst),
		}
	}

	logger.Info("RPC forwarder initialized",
		zap.Int("upstreams", len(upstreams)),
		zap.Float64("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("max_workers", cfg.MaxWorkers))

	return &forwarder{
		http:      httpClient,
		pool:      pond.NewResultPool[*Response](cfg.MaxWorkers),
		upstreams: upstreams,
		userAgent: cfg.UserAgent,
	}
}

func (f *forwarder) Forward(ctx context.Context, chain string, body []byte) (*Response, error) {
	up, ok := f.upstreams[chain]
	if !ok {
		metrics.RPCProxyRequests.WithLabelValues("unknown", "rejected").Inc()
		return nil, fmt.Errorf("%w '%s'", domain.ErrUnknownChain, chain)
	}

	if err := up.limiter.Wait(ctx); err != nil {
		metrics.RPCProxyRequests.WithLabelValues(chain, "rate_limited").Inc()
		return nil, fmt.Errorf("rate limit wait for %s: %w", chain, err)
	}

	headers := map[string]string{
		"Content-Type": defaultContentType,
	}
	if f.userAgent != "" {
		headers["User-Agent"] = f.userAgent
	}

	task := f.pool.SubmitErr(func() (*Response, error) {
		resp, err := f.http.PostRaw(ctx, up.url, headers, body)
		if err != nil {
			return nil, err
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = defaultContentType
		}
		return &Response{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        resp.Body,
		}, nil
	})

	resp, err := task.Wait()
	if err != nil {
		metrics.RPCProxyRequests.WithLabelValues(chain, "transport_error").Inc()
		logger.WarnCtx(ctx, "RPC upstream request failed", zap.String("chain", chain), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, chain, err)
	}

	metrics.RPCProxyRequests.WithLabelValues(chain, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode >= http.StatusInternalServerError {
		logger.WarnCtx(ctx, "RPC upstream answered with server error",
			zap.String("chain", chain),
			zap.Int("status", resp.StatusCode))
	}
	return resp, nil
}

func (f *forwarder) Chains() []string {
	chains := make([]string, 0, len(f.upstreams))
	for chain := range f.upstreams {
		chains = append(chains, chain)
	}
	slices.Sort(chains)
	return chains
}

func (f *forwarder) Close() {
	f.closeOnce.Do(func() {
		f.pool.StopAndWait()
	})
}
