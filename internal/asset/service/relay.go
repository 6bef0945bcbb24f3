// Package service fetches assets from the origin on behalf of capability holders.
package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
	"github.com/allisson/drive-proxy/internal/metrics"
)

const defaultResponseHeaderTimeout = 30 * time.Second

// Relay fetches file content from the origin.
type Relay interface {
	// Fetch requests fileID with the delegated accessToken. The returned body stays bound
	// to ctx, so cancelling the inbound request aborts the transfer.
	Fetch(ctx context.Context, fileID, accessToken string) (*assetDomain.Asset, error)
}

// RelayConfig configures the origin relay.
type RelayConfig struct {
	// BaseURL is the files endpoint; the escaped file id is appended as a path segment.
	BaseURL string
	// FetchTimeout bounds a whole fetch, body included. Zero means no bound.
	FetchTimeout time.Duration
	// ResponseHeaderTimeout bounds the wait for response headers.
	ResponseHeaderTimeout time.Duration
	// HTTPClient overrides the client built from the timeouts above.
	HTTPClient *http.Client
	// Metrics receives the origin's status and time to headers. Defaults to a no-op recorder.
	Metrics metrics.BusinessMetrics
}

// driveRelay implements Relay against the Drive files API.
type driveRelay struct {
	baseURL      string
	fetchTimeout time.Duration
	client       *http.Client
	logger       *slog.Logger
	metrics      metrics.BusinessMetrics
}

// NewRelay creates a Relay for the configured origin.
func NewRelay(cfg RelayConfig, logger *slog.Logger) Relay {
	client := cfg.HTTPClient
	if client == nil {
		headerTimeout := cfg.ResponseHeaderTimeout
		if headerTimeout <= 0 {
			headerTimeout = defaultResponseHeaderTimeout
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = headerTimeout
		client = &http.Client{Transport: transport}
	}
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoOpBusinessMetrics()
	}
	return &driveRelay{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		fetchTimeout: cfg.FetchTimeout,
		client:       client,
		logger:       logger,
		metrics:      recorder,
	}
}

// Fetch performs GET {base}/{fileID}?alt=media and hands back the unread body.
func (d *driveRelay) Fetch(ctx context.Context, fileID, accessToken string) (*assetDomain.Asset, error) {
	cancel := context.CancelFunc(func() {})
	if d.fetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, d.fetchTimeout)
	}

	assetURL := d.baseURL + "/" + url.PathEscape(fileID) + "?alt=media"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: failed to create request: %w", assetDomain.ErrOriginUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.metrics.RecordOriginResponse(ctx, 0, time.Since(start))
		cancel()
		return nil, fmt.Errorf("%w: %w", assetDomain.ErrOriginUnavailable, err)
	}

	d.metrics.RecordOriginResponse(ctx, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		cancel()
		if d.logger != nil {
			d.logger.Warn("origin rejected asset request",
				slog.String("file_id", fileID),
				slog.Int("status", resp.StatusCode),
			)
		}
		return nil, fmt.Errorf("%w: status %d", assetDomain.ErrOriginFetch, resp.StatusCode)
	}

	body, err := nonEmptyBody(resp)
	if err != nil {
		_ = resp.Body.Close()
		cancel()
		return nil, err
	}

	return &assetDomain.Asset{
		ContentType:   assetDomain.NormalizeContentType(resp.Header.Get("Content-Type")),
		ContentLength: resp.ContentLength,
		Body:          &cancelOnClose{Reader: body, closer: resp.Body, cancel: cancel},
	}, nil
}

// nonEmptyBody peeks one byte so an empty 2xx response is reported before any
// header is written to the client.
func nonEmptyBody(resp *http.Response) (io.Reader, error) {
	if resp.Body == nil || resp.Body == http.NoBody || resp.ContentLength == 0 {
		return nil, assetDomain.ErrNoBody
	}
	buffered := bufio.NewReader(resp.Body)
	if _, err := buffered.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, assetDomain.ErrNoBody
		}
		return nil, fmt.Errorf("%w: %w", assetDomain.ErrOriginUnavailable, err)
	}
	return buffered, nil
}

// cancelOnClose releases the fetch context once the body is closed.
type cancelOnClose struct {
	io.Reader
	closer io.Closer
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.closer.Close()
	c.cancel()
	return err
}
