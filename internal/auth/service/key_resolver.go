package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"
	"golang.org/x/sync/singleflight"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
	"github.com/allisson/drive-proxy/internal/metrics"
)

// maxKeySetSize bounds the JWKS response body.
const maxKeySetSize = 1 << 20

// KeyResolverConfig configures a JWKS backed KeyResolver.
type KeyResolverConfig struct {
	// URLTemplate is the JWKS endpoint with the {appId} placeholder.
	URLTemplate string
	// CacheTTL is how long a fetched key set is reused. Zero or negative disables caching.
	CacheTTL time.Duration
	// FetchTimeout bounds a single JWKS request.
	FetchTimeout time.Duration
	// HTTPClient is used for fetches. Defaults to a client without its own timeout.
	HTTPClient *http.Client
	// Metrics receives cache hit/miss and fetch results. Defaults to a no-op recorder.
	Metrics metrics.BusinessMetrics
}

type keySetEntry struct {
	keys      map[string]*authDomain.SigningKey
	expiresAt time.Time
}

// jwksKeyResolver fetches key sets per app id and caches the public signing keys.
type jwksKeyResolver struct {
	urlTemplate  string
	cacheTTL     time.Duration
	fetchTimeout time.Duration
	client       *http.Client
	logger       *slog.Logger
	metrics      metrics.BusinessMetrics
	now          func() time.Time

	mu      sync.RWMutex
	entries map[string]keySetEntry
	group   singleflight.Group
}

// NewKeyResolver creates a KeyResolver backed by the configured JWKS endpoint.
func NewKeyResolver(cfg KeyResolverConfig, logger *slog.Logger) KeyResolver {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoOpBusinessMetrics()
	}
	return &jwksKeyResolver{
		urlTemplate:  cfg.URLTemplate,
		cacheTTL:     cfg.CacheTTL,
		fetchTimeout: fetchTimeout,
		client:       client,
		logger:       logger,
		metrics:      recorder,
		now:          time.Now,
		entries:      make(map[string]keySetEntry),
	}
}

// Resolve returns the cached key when fresh, otherwise fetches the app's key set once
// for all concurrent callers.
func (r *jwksKeyResolver) Resolve(
	ctx context.Context,
	appID, keyID string,
) (*authDomain.SigningKey, error) {
	if key, ok := r.cached(appID, keyID); ok {
		r.metrics.RecordKeyLookup(ctx, metrics.KeyLookupHit)
		return key, nil
	}
	r.metrics.RecordKeyLookup(ctx, metrics.KeyLookupMiss)

	result, err, _ := r.group.Do(appID, func() (any, error) {
		return r.fetch(ctx, appID)
	})
	if err != nil {
		return nil, err
	}

	keys := result.(map[string]*authDomain.SigningKey)
	key, ok := keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: app %q has no key %q", authDomain.ErrUnknownKey, appID, keyID)
	}
	return key, nil
}

func (r *jwksKeyResolver) cached(appID, keyID string) (*authDomain.SigningKey, bool) {
	if r.cacheTTL <= 0 {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[appID]
	if !ok || !r.now().Before(entry.expiresAt) {
		return nil, false
	}
	key, ok := entry.keys[keyID]
	return key, ok
}

func (r *jwksKeyResolver) store(appID string, keys map[string]*authDomain.SigningKey) {
	if r.cacheTTL <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[appID] = keySetEntry{keys: keys, expiresAt: r.now().Add(r.cacheTTL)}
}

// fetch performs a single JWKS request and records its result. The request is detached
// from the caller's cancellation since its result is shared, and bounded by the fetch
// timeout instead.
func (r *jwksKeyResolver) fetch(ctx context.Context, appID string) (map[string]*authDomain.SigningKey, error) {
	ctx = context.WithoutCancel(ctx)
	keys, err := r.request(ctx, appID)

	switch {
	case err == nil:
		r.metrics.RecordKeyLookup(ctx, metrics.KeyLookupFetched)
	case errors.Is(err, authDomain.ErrUnknownKey):
		r.metrics.RecordKeyLookup(ctx, metrics.KeyLookupNotFound)
	default:
		r.metrics.RecordKeyLookup(ctx, metrics.KeyLookupFetchError)
	}
	return keys, err
}

func (r *jwksKeyResolver) request(ctx context.Context, appID string) (map[string]*authDomain.SigningKey, error) {
	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	jwksURL := strings.ReplaceAll(r.urlTemplate, authDomain.AppIDPlaceholder, url.PathEscape(appID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", authDomain.ErrKeyFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", authDomain.ErrKeyFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if r.logger != nil {
		r.logger.Debug("jwks fetched",
			slog.String("app_id", appID),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: no key set for app %q", authDomain.ErrUnknownKey, appID)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: key set endpoint returned status %d", authDomain.ErrKeyFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySetSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key set: %w", authDomain.ErrKeyFetch, err)
	}

	var keySet jose.JSONWebKeySet
	if err := json.Unmarshal(body, &keySet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode key set: %w", authDomain.ErrKeyFetch, err)
	}

	keys := signingKeys(appID, keySet)
	r.store(appID, keys)
	return keys, nil
}

// signingKeys keeps the public signature keys of a set, indexed by key id.
func signingKeys(appID string, keySet jose.JSONWebKeySet) map[string]*authDomain.SigningKey {
	keys := make(map[string]*authDomain.SigningKey, len(keySet.Keys))
	for i := range keySet.Keys {
		jwk := keySet.Keys[i]
		if jwk.KeyID == "" || (jwk.Use != "" && jwk.Use != "sig") {
			continue
		}
		public := jwk.Public()
		if !public.Valid() {
			continue
		}
		keys[jwk.KeyID] = &authDomain.SigningKey{
			AppID:     appID,
			KeyID:     jwk.KeyID,
			Algorithm: jwk.Algorithm,
			PublicKey: public.Key,
		}
	}
	return keys
}
