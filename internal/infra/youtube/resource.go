package youtube

import "fmt"

// Resource is a playlist, playlist item or video returned by the Data API.
// Which parts are present depends on the endpoint and its part selector.
type Resource struct {
	ID             string          `json:"id,omitempty"`
	Snippet        *Snippet        `json:"snippet,omitempty"`
	ContentDetails *ContentDetails `json:"contentDetails,omitempty"`
	Status         *Status         `json:"status,omitempty"`
}

// Snippet holds descriptive resource fields.
type Snippet struct {
	Title        string `json:"title,omitempty"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	Description  string `json:"description,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
}

// ContentDetails holds the fields used for duration aggregation.
type ContentDetails struct {
	Duration  string `json:"duration,omitempty"`  // ISO 8601, videos only
	ItemCount *int   `json:"itemCount,omitempty"` // playlists only
	VideoID   string `json:"videoId,omitempty"`   // playlist items only
}

// Status holds the privacy status of a resource.
type Status struct {
	PrivacyStatus string `json:"privacyStatus,omitempty"`
}

// envelope is either a success page or an error body, told apart by the "error" key.
type envelope struct {
	Items         []Resource `json:"items"`
	NextPageToken string     `json:"nextPageToken"`
	Error         *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError is an error envelope returned by the Data API together with the
// HTTP status of the response that carried it.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api error (status %d): %s", e.Status, e.Message)
}
