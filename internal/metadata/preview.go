package metadata

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/metrics"
	"github.com/lampworks/moth-bridge/internal/providers/ethereum"
	"github.com/lampworks/moth-bridge/internal/uri"
)

// Config holds configuration for the preview loader
type Config struct {
	// Limit is how many tokens of a list get a preview; non-positive loads all
	Limit int
	// Concurrency is the number of previews loaded in parallel
	Concurrency int
	// CacheTTL is how long a successful preview is reused; 0 disables caching
	CacheTTL time.Duration
	// NamePrefix builds "<prefix> #<id>" when metadata has no name
	NamePrefix string
}

// Loader loads display metadata for tokens.
// Previews are best effort: failures yield an item carrying only the token id.
//
//go:generate mockgen -source=preview.go -destination=../mocks/preview_loader.go -package=mocks -mock_names=Loader=MockPreviewLoader
type Loader interface {
	// LoadPreview resolves tokenURI, fetches the metadata and extracts name and image
	LoadPreview(ctx context.Context, tokenID *big.Int) domain.MothItem

	// LoadPreviews returns one item per id in input order; only the first Limit are loaded
	LoadPreviews(ctx context.Context, tokenIDs []*big.Int) []domain.MothItem

	// Close stops the worker pool
	Close()
}

type loader struct {
	collection   ethereum.CollectionClient
	httpClient   adapter.HTTPClient
	json         adapter.JSON
	translator   *uri.Translator
	imageChecker uri.DataURIChecker
	cache        *cache.Cache
	pool         pond.ResultPool[domain.MothItem]
	config       Config
}

// NewLoader creates a preview loader reading tokenURI from collection
func NewLoader(
	collection ethereum.CollectionClient,
	httpClient adapter.HTTPClient,
	json adapter.JSON,
	translator *uri.Translator,
	imageChecker uri.DataURIChecker,
	config Config,
) Loader {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.NamePrefix == "" {
		config.NamePrefix = domain.DEFAULT_TOKEN_NAME_PREFIX
	}

	var c *cache.Cache
	if config.CacheTTL > 0 {
		c = cache.New(config.CacheTTL, 2*config.CacheTTL)
	}

	return &loader{
		collection:   collection,
		httpClient:   httpClient,
		json:         json,
		translator:   translator,
		imageChecker: imageChecker,
		cache:        c,
		pool:         pond.NewResultPool[domain.MothItem](config.Concurrency),
		config:       config,
	}
}

func (l *loader) LoadPreview(ctx context.Context, tokenID *big.Int) domain.MothItem {
	id := tokenID.String()

	if l.cache != nil {
		if cached, ok := l.cache.Get(id); ok {
			return cached.(domain.MothItem)
		}
	}

	item, err := l.load(ctx, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Preview unavailable", zap.String("tokenID", id), zap.Error(err))
		metrics.PreviewsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return domain.MothItem{TokenID: id}
	}

	metrics.PreviewsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	if l.cache != nil {
		l.cache.SetDefault(id, item)
	}
	return item
}

func (l *loader) LoadPreviews(ctx context.Context, tokenIDs []*big.Int) []domain.MothItem {
	items := make([]domain.MothItem, len(tokenIDs))
	for i, id := range tokenIDs {
		items[i] = domain.MothItem{TokenID: id.String()}
	}

	n := len(tokenIDs)
	if l.config.Limit > 0 {
		n = min(n, l.config.Limit)
	}
	if n == 0 {
		return items
	}

	group := l.pool.NewGroup()
	for _, id := range tokenIDs[:n] {
		group.Submit(func() domain.MothItem {
			return l.LoadPreview(ctx, id)
		})
	}

	results, err := group.Wait()
	if err != nil {
		logger.WarnCtx(ctx, "Preview batch failed", zap.Error(err))
		return items
	}
	copy(items, results)

	return items
}

func (l *loader) Close() {
	l.pool.StopAndWait()
}

func (l *loader) load(ctx context.Context, tokenID *big.Int) (domain.MothItem, error) {
	id := tokenID.String()

	tokenURI, err := l.collection.TokenURI(ctx, tokenID)
	if err != nil {
		return domain.MothItem{}, err
	}

	meta, err := l.fetchMetadata(ctx, tokenURI)
	if err != nil {
		return domain.MothItem{}, err
	}

	name := stringField(meta, "name")
	if name == "" {
		name = fmt.Sprintf("%s #%s", l.config.NamePrefix, id)
	}

	return domain.MothItem{
		TokenID:  id,
		TokenURI: tokenURI,
		Name:     name,
		Image:    l.imageURL(ctx, stringField(meta, "image", "image_url")),
	}, nil
}

// fetchMetadata decodes inline data URIs or fetches the document through the gateways
func (l *loader) fetchMetadata(ctx context.Context, tokenURI string) (map[string]interface{}, error) {
	var meta map[string]interface{}

	if uri.IsDataURI(tokenURI) {
		if err := uri.DecodeDataURI(l.json, tokenURI, &meta); err != nil {
			return nil, err
		}
		return meta, nil
	}

	candidates := l.translator.Candidates(tokenURI)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("empty token URI")
	}
	for _, c := range candidates {
		if !strings.HasPrefix(c, "http://") && !strings.HasPrefix(c, "https://") {
			return nil, fmt.Errorf("unsupported URI scheme: %s", tokenURI)
		}
	}

	if len(candidates) == 1 {
		if err := l.httpClient.Get(ctx, candidates[0], &meta); err != nil {
			return nil, fmt.Errorf("failed to fetch metadata: %w", err)
		}
		return meta, nil
	}

	return l.fetchFirst(ctx, candidates)
}

// fetchFirst queries every gateway in parallel and keeps the first success
func (l *loader) fetchFirst(ctx context.Context, urls []string) (map[string]interface{}, error) {
	type result struct {
		metadata map[string]interface{}
		err      error
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan result, len(urls))
	for _, url := range urls {
		go func(u string) {
			var meta map[string]interface{}
			err := l.httpClient.Get(ctx, u, &meta)
			results <- result{metadata: meta, err: err}
		}(url)
	}

	var errs []error
	for range urls {
		res := <-results
		if res.err == nil {
			return res.metadata, nil
		}
		errs = append(errs, res.err)
	}

	return nil, fmt.Errorf("failed to fetch metadata from all gateways: %w", errors.Join(errs...))
}

// imageURL translates the image for display; inline images must really be images
func (l *loader) imageURL(ctx context.Context, image string) string {
	if image == "" {
		return ""
	}

	if uri.IsDataURI(image) {
		result := l.imageChecker.Check(image)
		if !result.Valid {
			var reason string
			if result.Error != nil {
				reason = *result.Error
			}
			logger.WarnCtx(ctx, "Dropping invalid inline image", zap.String("reason", reason))
			return ""
		}
		return image
	}

	return l.translator.ToGateway(image)
}

// stringField returns the first non-empty string among keys
func stringField(meta map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := meta[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
