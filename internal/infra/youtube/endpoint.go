package youtube

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// Endpoint is a Data API resource kind.
type Endpoint string

const (
	Playlists     Endpoint = "playlists"
	PlaylistItems Endpoint = "playlistItems"
	Videos        Endpoint = "videos"
)

// EndpointConfig holds the fixed selectors sent with every request to an endpoint.
type EndpointConfig struct {
	Path       string // relative to the API base URL
	Part       string
	Fields     string
	MaxResults int // 0 omits the parameter
}

// DefaultEndpoints returns selectors that request only what the report needs.
func DefaultEndpoints() map[Endpoint]EndpointConfig {
	return map[Endpoint]EndpointConfig{
		Playlists: {
			Path:   "playlists",
			Part:   "snippet,contentDetails",
			Fields: "items(id,snippet(title,channelTitle,publishedAt),contentDetails(itemCount))",
		},
		PlaylistItems: {
			Path:       "playlistItems",
			Part:       "contentDetails",
			Fields:     "nextPageToken,items(contentDetails(videoId))",
			MaxResults: 50,
		},
		Videos: {
			Path:   "videos",
			Part:   "contentDetails",
			Fields: "items(id,contentDetails(duration))",
		},
	}
}

// requestParams are the query parameters of one Data API request.
type requestParams struct {
	Part       string `mapstructure:"part"`
	Fields     string `mapstructure:"fields"`
	MaxResults int    `mapstructure:"maxResults"`
	ID         string `mapstructure:"id"`
	PlaylistID string `mapstructure:"playlistId"`
	PageToken  string `mapstructure:"pageToken"`
	HL         string `mapstructure:"hl"`
	Key        string `mapstructure:"key"`
}

// encode flattens params into query values, dropping unset parameters.
func (p requestParams) encode() (url.Values, error) {
	var flat map[string]any
	if err := mapstructure.Decode(p, &flat); err != nil {
		return nil, errors.Wrap(err, "failed to flatten request params")
	}

	values := url.Values{}
	for k, v := range flat {
		if v == nil || reflect.ValueOf(v).IsZero() {
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values, nil
}
