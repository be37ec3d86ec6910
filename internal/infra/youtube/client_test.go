package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/playtime/internal/domain/locale"
	"github.com/osa030/playtime/internal/infra/fetchcache"
)

func newTestClient(t *testing.T, server *httptest.Server, cache fetchcache.Cache) *Client {
	t.Helper()
	client, err := New(Config{
		APIKey:    "test_key",
		BaseURL:   server.URL,
		BatchSize: 50,
		Cache:     cache,
	})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{APIKey: "k", Endpoints: map[Endpoint]EndpointConfig{Videos: {Path: "videos"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing endpoint config")

	c, err := New(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultBatchSize, c.batchSize)
	assert.Equal(t, "https://www.googleapis.com/youtube/v3/", c.baseURL.String())
}

func TestBuildURL(t *testing.T) {
	c, err := New(Config{APIKey: "test_key"})
	require.NoError(t, err)

	t.Run("playlists uses id and hl", func(t *testing.T) {
		raw, err := c.buildURL(Playlists, "PL123", locale.German, "")
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, raw, nil)
		q := req.URL.Query()
		assert.Equal(t, "/youtube/v3/playlists", req.URL.Path)
		assert.Equal(t, "PL123", q.Get("id"))
		assert.Equal(t, "de", q.Get("hl"))
		assert.Equal(t, "snippet,contentDetails", q.Get("part"))
		assert.Equal(t, "test_key", q.Get("key"))
		assert.False(t, q.Has("playlistId"))
		assert.False(t, q.Has("maxResults"))
		assert.False(t, q.Has("pageToken"))
	})

	t.Run("playlist items uses playlistId and token", func(t *testing.T) {
		raw, err := c.buildURL(PlaylistItems, "PL123", "", "TOKEN")
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, raw, nil)
		q := req.URL.Query()
		assert.Equal(t, "PL123", q.Get("playlistId"))
		assert.Equal(t, "TOKEN", q.Get("pageToken"))
		assert.Equal(t, "50", q.Get("maxResults"))
		assert.False(t, q.Has("id"))
		assert.False(t, q.Has("hl"))
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := c.buildURL(Endpoint("channels"), "x", "", "")
		assert.Error(t, err)
	})
}

func TestCall_Pagination(t *testing.T) {
	pages := map[string]string{
		"":   `{"items":[{"contentDetails":{"videoId":"v1"}},{"contentDetails":{"videoId":"v2"}}],"nextPageToken":"p2"}`,
		"p2": `{"items":[{"contentDetails":{"videoId":"v3"}}],"nextPageToken":"p3"}`,
		"p3": `{"items":[{"contentDetails":{"videoId":"v4"}}]}`,
	}

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/playlistItems", r.URL.Path)
		assert.Equal(t, "PL1", r.URL.Query().Get("playlistId"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pages[r.URL.Query().Get("pageToken")])
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	items, err := client.Call(context.Background(), PlaylistItems, "PL1", mo.None[time.Duration](), locale.English)
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{"v1", "v2", "v3", "v4"}, VideoIDs(items))
}

func TestCall_AbortsOnErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("pageToken") {
		case "":
			fmt.Fprint(w, `{"items":[{"contentDetails":{"videoId":"v1"}}],"nextPageToken":"p2"}`)
		case "p2":
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error":{"code":403,"message":"quota exceeded"}}`)
		default:
			t.Errorf("page 3 must not be requested")
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	items, err := client.Call(context.Background(), PlaylistItems, "PL1", mo.None[time.Duration](), "")

	require.Error(t, err)
	assert.Empty(t, items)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "quota exceeded", apiErr.Message)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestCall_ErrorKeyDecidesNotStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Error envelope with a 200 status is still an error.
		fmt.Fprint(w, `{"error":{"message":"odd"}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	_, err := client.Call(context.Background(), Videos, "v1", mo.None[time.Duration](), "")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusOK, apiErr.Status)
}

func TestCall_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	_, err := client.Call(context.Background(), Videos, "v1", mo.None[time.Duration](), "")

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCall_Cache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"items":[{"id":"v1","contentDetails":{"duration":"PT1M"}}]}`)
	}))
	defer server.Close()

	cache, err := fetchcache.NewMemory(16)
	require.NoError(t, err)
	client := newTestClient(t, server, cache)
	ctx := context.Background()

	t.Run("no lifetime bypasses cache", func(t *testing.T) {
		calls.Store(0)
		for i := 0; i < 2; i++ {
			_, err := client.Call(ctx, Videos, "v1", mo.None[time.Duration](), "")
			require.NoError(t, err)
		}
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("lifetime reuses response", func(t *testing.T) {
		calls.Store(0)
		for i := 0; i < 3; i++ {
			items, err := client.Call(ctx, Videos, "v1", mo.Some(time.Minute), "")
			require.NoError(t, err)
			assert.Len(t, items, 1)
		}
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("locale is part of the key", func(t *testing.T) {
		calls.Store(0)
		_, err := client.Call(ctx, Videos, "v1", mo.Some(time.Minute), locale.French)
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestCall_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"playlistNotFound"}}`)
	}))
	defer server.Close()

	cache, err := fetchcache.NewMemory(16)
	require.NoError(t, err)
	client := newTestClient(t, server, cache)

	for i := 0; i < 2; i++ {
		_, err := client.Call(context.Background(), PlaylistItems, "PL1", mo.Some(time.Hour), "")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}
