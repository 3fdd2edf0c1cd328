package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvisioner_AcquireRelease(t *testing.T) {
	var released string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/sandboxes":
			var config map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&config))
			assert.Equal(t, "python", config["image"])
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "sbx-1"})
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/sandboxes/sbx-1":
			released = "sbx-1"
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p, err := NewHTTPProvisioner(srv.URL, func(o *HTTPOptions) { o.Token = "secret" })
	require.NoError(t, err)

	handle, err := p.Acquire(context.Background(), map[string]any{"image": "python"})
	require.NoError(t, err)
	assert.Equal(t, "sbx-1", handle.ID)

	require.NoError(t, p.Release(context.Background(), handle.ID))
	assert.Equal(t, "sbx-1", released)
}

func TestHTTPProvisioner_AcquireError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no capacity"})
	}))
	defer srv.Close()

	p, err := NewHTTPProvisioner(srv.URL)
	require.NoError(t, err)

	_, err = p.Acquire(context.Background(), nil)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "no capacity", apiErr.Message)
}

func TestInMemoryProvisioner(t *testing.T) {
	p := NewInMemoryProvisioner()

	handle, err := p.Acquire(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, p.LiveCount())

	require.NoError(t, p.Release(context.Background(), handle.ID))
	assert.Equal(t, 0, p.LiveCount())

	assert.Error(t, p.Release(context.Background(), handle.ID))
}
