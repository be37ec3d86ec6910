// Package youtube provides a client for the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/mo"

	"github.com/osa030/playtime/internal/domain/locale"
	"github.com/osa030/playtime/internal/infra/fetchcache"
)

const (
	defaultBaseURL   = "https://www.googleapis.com/youtube/v3/"
	defaultBatchSize = 50
	defaultTimeout   = 10 * time.Second
)

// Client is a YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    *url.URL
	batchSize  int
	endpoints  map[Endpoint]EndpointConfig
	httpClient *http.Client
	cache      fetchcache.Cache
}

// Config represents YouTube client configuration.
type Config struct {
	APIKey    string
	BaseURL   string
	BatchSize int
	Timeout   time.Duration
	Endpoints map[Endpoint]EndpointConfig
	Cache     fetchcache.Cache // nil disables response caching
}

// New creates a new YouTube client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube API key is required")
	}

	rawBase := cfg.BaseURL
	if rawBase == "" {
		rawBase = defaultBaseURL
	}
	if !strings.HasSuffix(rawBase, "/") {
		rawBase += "/"
	}
	baseURL, err := url.Parse(rawBase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid youtube base url")
	}

	endpoints := cfg.Endpoints
	if endpoints == nil {
		endpoints = DefaultEndpoints()
	}
	for _, e := range []Endpoint{Playlists, PlaylistItems, Videos} {
		if _, ok := endpoints[e]; !ok {
			return nil, errors.Newf("missing endpoint config: %s", e)
		}
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cache := cfg.Cache
	if cache == nil {
		cache = fetchcache.Nop{}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		batchSize:  batchSize,
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
	}, nil
}

// Call fetches every page of endpoint for id and returns the accumulated items.
// A lifetime makes responses reusable from the cache for that long; None always
// goes to the network. An empty locale omits the display-language hint.
//
// An error envelope on any page aborts the call and is returned as *APIError;
// items collected from earlier pages are discarded.
func (c *Client) Call(ctx context.Context, endpoint Endpoint, id string, lifetime mo.Option[time.Duration], lang locale.Locale) ([]Resource, error) {
	var items []Resource
	pageToken := ""

	for {
		reqURL, err := c.buildURL(endpoint, id, lang, pageToken)
		if err != nil {
			return nil, err
		}

		entry, err := c.fetch(ctx, reqURL, lifetime)
		if err != nil {
			return nil, err
		}

		page, err := unwrap(entry)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return items, nil
}

// buildURL builds the request URL for one page of endpoint.
func (c *Client) buildURL(endpoint Endpoint, id string, lang locale.Locale, pageToken string) (string, error) {
	ec, ok := c.endpoints[endpoint]
	if !ok {
		return "", errors.Newf("unknown endpoint: %s", endpoint)
	}

	params := requestParams{
		Part:       ec.Part,
		Fields:     ec.Fields,
		MaxResults: ec.MaxResults,
		HL:         lang.String(),
		Key:        c.apiKey,
	}
	if endpoint == PlaylistItems {
		params.PlaylistID = id
		params.PageToken = pageToken
	} else {
		params.ID = id
	}

	query, err := params.encode()
	if err != nil {
		return "", err
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: ec.Path})
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// fetch performs a GET, serving from and filling the cache when a lifetime is given.
func (c *Client) fetch(ctx context.Context, reqURL string, lifetime mo.Option[time.Duration]) (fetchcache.Entry, error) {
	ttl, cacheable := lifetime.Get()
	cacheable = cacheable && ttl > 0
	key := fetchcache.Key(reqURL)

	if cacheable {
		entry, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			zlog.Warn().Err(err).Msg("fetch cache lookup failed")
		} else if ok {
			zlog.Debug().Msgf("fetch cache hit: %s", key)
			return entry, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fetchcache.Entry{}, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fetchcache.Entry{}, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchcache.Entry{}, errors.Wrap(err, "failed to read response body")
	}

	entry := fetchcache.Entry{Status: resp.StatusCode, Body: body}
	if cacheable && resp.StatusCode == http.StatusOK {
		if err := c.cache.Set(ctx, key, entry, ttl); err != nil {
			zlog.Warn().Err(err).Msg("fetch cache store failed")
		}
	}

	return entry, nil
}

// unwrap decodes a response body into a page or an *APIError.
func unwrap(entry fetchcache.Entry) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(entry.Body, &env); err != nil {
		return nil, errors.Wrapf(err, "failed to parse response (status %d)", entry.Status)
	}
	if env.Error != nil {
		return nil, &APIError{Message: env.Error.Message, Status: entry.Status}
	}
	return &env, nil
}
