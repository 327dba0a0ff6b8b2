package cutout

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/pixgen-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRemove(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotContentType, gotAssetBase string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			gotAssetBase = r.Header.Get("X-Asset-Base-URL")
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("processed-bytes"))
		}))
		defer server.Close()

		client := NewClient(config.CutoutConfig{
			Endpoint:     server.URL,
			AssetBaseURL: "https://assets.example.com/cutout/1.7.0",
		}, server.Client(), testLogger())

		processed, err := client.Remove(context.Background(), []byte("raw-bytes"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, []byte("processed-bytes"), processed)
		assert.Equal(t, "image/png", gotContentType)
		assert.Equal(t, "https://assets.example.com/cutout/1.7.0", gotAssetBase)
		assert.Equal(t, []byte("raw-bytes"), gotBody)
	})

	t.Run("server_error_with_body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model assets unavailable", http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(config.CutoutConfig{Endpoint: server.URL}, server.Client(), testLogger())

		processed, err := client.Remove(context.Background(), []byte("raw"), "image/png")
		assert.Nil(t, processed)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
		assert.Contains(t, err.Error(), "model assets unavailable")
	})

	t.Run("empty_response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(config.CutoutConfig{Endpoint: server.URL}, server.Client(), testLogger())

		_, err := client.Remove(context.Background(), []byte("raw"), "image/png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty image")
	})

	t.Run("not_configured", func(t *testing.T) {
		client := NewClient(config.CutoutConfig{}, nil, testLogger())

		_, err := client.Remove(context.Background(), []byte("raw"), "image/png")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("empty_input", func(t *testing.T) {
		client := NewClient(config.CutoutConfig{Endpoint: "http://localhost:1"}, nil, testLogger())

		_, err := client.Remove(context.Background(), nil, "image/png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}
