package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
	apperrors "github.com/allisson/drive-proxy/internal/errors"
	metricsMocks "github.com/allisson/drive-proxy/internal/metrics/mocks"
)

type recordedRequest struct {
	uri           string
	authorization string
	accept        string
}

func newOrigin(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.uri = r.RequestURI
		recorded.authorization = r.Header.Get("Authorization")
		recorded.accept = r.Header.Get("Accept")
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, recorded
}

func newTestRelay(server *httptest.Server, fetchTimeout time.Duration) Relay {
	return NewRelay(RelayConfig{
		BaseURL:      server.URL + "/drive/v3/files/",
		FetchTimeout: fetchTimeout,
	}, nil)
}

func TestRelay_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StreamsBody", func(t *testing.T) {
		server, recorded := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write([]byte("binary-content"))
		})

		asset, err := newTestRelay(server, time.Minute).Fetch(ctx, "1Bxi", "ya29.token")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, asset.Body.Close())
		}()

		body, err := io.ReadAll(asset.Body)
		require.NoError(t, err)
		assert.Equal(t, "binary-content", string(body))
		assert.Equal(t, "video/mp4", asset.ContentType)
		assert.Equal(t, int64(len("binary-content")), asset.ContentLength)
		assert.Equal(t, "/drive/v3/files/1Bxi?alt=media", recorded.uri)
		assert.Equal(t, "Bearer ya29.token", recorded.authorization)
		assert.Equal(t, "application/json", recorded.accept)
	})

	t.Run("Success_RewritesHeif", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/HEIF")
			_, _ = w.Write([]byte("heif"))
		})

		asset, err := newTestRelay(server, 0).Fetch(ctx, "1Bxi", "token")
		require.NoError(t, err)
		defer func() {
			_ = asset.Body.Close()
		}()
		assert.Equal(t, "image/heic", asset.ContentType)
	})

	t.Run("Success_UnknownLengthChunked", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("part1"))
			w.(http.Flusher).Flush()
			_, _ = w.Write([]byte("part2"))
		})

		asset, err := newTestRelay(server, time.Minute).Fetch(ctx, "1Bxi", "token")
		require.NoError(t, err)
		defer func() {
			_ = asset.Body.Close()
		}()

		body, err := io.ReadAll(asset.Body)
		require.NoError(t, err)
		assert.Equal(t, "part1part2", string(body))
		assert.Equal(t, int64(-1), asset.ContentLength)
	})

	t.Run("Success_EscapesFileID", func(t *testing.T) {
		server, recorded := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("x"))
		})

		asset, err := newTestRelay(server, time.Minute).Fetch(ctx, "../about?x=1", "token")
		require.NoError(t, err)
		_ = asset.Body.Close()
		assert.Equal(t, "/drive/v3/files/..%2Fabout%3Fx=1?alt=media", recorded.uri)
	})

	t.Run("Error_NonSuccessStatus", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
			server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			asset, err := newTestRelay(server, time.Minute).Fetch(ctx, "1Bxi", "token")
			assert.Nil(t, asset)
			assert.ErrorIs(t, err, assetDomain.ErrOriginFetch)
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
		}
	})

	t.Run("Error_NoBody", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		asset, err := newTestRelay(server, time.Minute).Fetch(ctx, "1Bxi", "token")
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, assetDomain.ErrNoBody)
	})

	t.Run("Error_EmptyChunkedBody", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "video/mp4")
			w.WriteHeader(http.StatusOK)
			w.(http.Flusher).Flush()
		})

		asset, err := newTestRelay(server, time.Minute).Fetch(ctx, "1Bxi", "token")
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, assetDomain.ErrNoBody)
	})

	t.Run("Error_OriginUnreachable", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {})
		relay := newTestRelay(server, time.Minute)
		server.Close()

		asset, err := relay.Fetch(ctx, "1Bxi", "token")
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, assetDomain.ErrOriginUnavailable)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("Error_CancelledRequestAbortsFetch", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		})

		cancelledCtx, cancel := context.WithCancel(ctx)
		time.AfterFunc(50*time.Millisecond, cancel)

		start := time.Now()
		_, err := newTestRelay(server, time.Minute).Fetch(cancelledCtx, "1Bxi", "token")
		assert.ErrorIs(t, err, assetDomain.ErrOriginUnavailable)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("Error_FetchTimeoutDuringBody", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 10)))
			w.(http.Flusher).Flush()
			<-r.Context().Done()
		})

		asset, err := newTestRelay(server, 100*time.Millisecond).Fetch(ctx, "1Bxi", "token")
		require.NoError(t, err)
		defer func() {
			_ = asset.Body.Close()
		}()

		_, err = io.ReadAll(asset.Body)
		assert.Error(t, err)
	})
}

func TestRelay_RecordsOriginResponse(t *testing.T) {
	ctx := context.Background()
	newRecordingRelay := func(t *testing.T, baseURL string) (Relay, *metricsMocks.MockBusinessMetrics) {
		recorder := metricsMocks.NewMockBusinessMetrics(t)
		return NewRelay(RelayConfig{BaseURL: baseURL, Metrics: recorder}, nil), recorder
	}

	t.Run("Success", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("png"))
		})
		relay, recorder := newRecordingRelay(t, server.URL)
		recorder.On("RecordOriginResponse", mock.Anything, http.StatusOK, mock.AnythingOfType("time.Duration")).Once()

		asset, err := relay.Fetch(ctx, "1Bxi", "ya29.token")
		require.NoError(t, err)
		assert.NoError(t, asset.Body.Close())
	})

	t.Run("OriginRejects", func(t *testing.T) {
		server, _ := newOrigin(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		relay, recorder := newRecordingRelay(t, server.URL)
		recorder.On("RecordOriginResponse", mock.Anything, http.StatusNotFound, mock.AnythingOfType("time.Duration")).Once()

		_, err := relay.Fetch(ctx, "1Bxi", "ya29.token")
		assert.ErrorIs(t, err, assetDomain.ErrOriginFetch)
	})

	t.Run("OriginUnreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()
		relay, recorder := newRecordingRelay(t, baseURL)
		recorder.On("RecordOriginResponse", mock.Anything, 0, mock.AnythingOfType("time.Duration")).Once()

		_, err := relay.Fetch(ctx, "1Bxi", "ya29.token")
		assert.ErrorIs(t, err, assetDomain.ErrOriginUnavailable)
	})
}
