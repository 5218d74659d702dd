package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(serverURL, 2*time.Second)
	c.backoff = 10 * time.Millisecond
	return c
}

func TestResolve_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recognize", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "face-blob", req["payload"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"worker_id":  "w-42",
			"confidence": 0.97,
		})
	}))
	defer server.Close()

	workerID, err := newTestClient(server.URL).Resolve(context.Background(), "face-blob")
	require.NoError(t, err)
	assert.Equal(t, "w-42", workerID)
}

func TestResolve_NotRecognized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "stranger")
	assert.ErrorIs(t, err, ErrNotRecognized)
}

func TestResolve_EmptyWorkerIDMeansNotRecognized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"worker_id": ""})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "blob")
	assert.ErrorIs(t, err, ErrNotRecognized)
}

func TestResolve_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "blob")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestResolve_RetriesOnceOnTransportFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// Kill the first connection mid-flight.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"worker_id": "w-7"})
	}))
	defer server.Close()

	workerID, err := newTestClient(server.URL).Resolve(context.Background(), "blob")
	require.NoError(t, err)
	assert.Equal(t, "w-7", workerID)
	assert.Equal(t, 2, calls)
}

func TestResolve_UnreachableProvider(t *testing.T) {
	// Grab a port nobody is listening on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "blob")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
