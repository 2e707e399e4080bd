package models

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

type StreamType string

var StreamLive StreamType = "live"

// Streams keeps records raw so that liveness does not depend on every field decoding.
type Streams struct {
	Data       []jsoniter.RawMessage `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

type Stream struct {
	StreamId     string     `json:"id"`            // Stream ID
	UserId       string     `json:"user_id"`       // ID of the user who is streaming
	UserLogin    string     `json:"user_login"`    // Login of the user who is streaming
	UserName     string     `json:"user_name"`     // Display name corresponding to user_id
	GameId       string     `json:"game_id"`       // ID of the game being played on the stream
	GameName     string     `json:"game_name"`     // Name of the game being played
	StreamType   StreamType `json:"type"`          // Stream type: "live" or "" (in case of error)
	Title        string     `json:"title"`         // Stream title
	ViewerCount  uint64     `json:"viewer_count"`  // Number of viewers watching the stream at the time of the query
	StartedAt    time.Time  `json:"started_at"`    // UTC timestamp
	Lang         string     `json:"language"`      // Stream language
	ThumbnailUrl string     `json:"thumbnail_url"` // Replace {width} and {height} with any values to get that size image
	Tags         []string   `json:"tags"`          // Shows tags that apply to the stream
	IsMature     bool       `json:"is_mature"`     // Contains mature content that may be inappropriate for younger audiences
}

type Pagination struct {
	Cursor string `json:"cursor"`
}

type FollowersResponse struct {
	Total      *int64                `json:"total"`
	Data       []jsoniter.RawMessage `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

type SubscriptionsResponse struct {
	Total      *int64                `json:"total"`
	Points     int64                 `json:"points"`
	Data       []jsoniter.RawMessage `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// Count prefers the reported total and falls back to the records of the first page.
func (s SubscriptionsResponse) Count() int64 {
	if s.Total != nil {
		return *s.Total
	}
	return int64(len(s.Data))
}

// APIResponse is a raw upstream reply. StatusCode is 0 when the request never completed.
type APIResponse struct {
	StatusCode int                 `json:"code"`
	Body       jsoniter.RawMessage `json:"body"`
}

func (r APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// MarshalJSON keeps a JSON body as is and quotes anything else, an HTML error
// page from a proxy included.
func (r APIResponse) MarshalJSON() ([]byte, error) {
	var body interface{}
	switch {
	case len(r.Body) == 0:
	case jsoniter.Valid(r.Body):
		body = jsoniter.RawMessage(r.Body)
	default:
		body = string(r.Body)
	}

	return jsoniter.Marshal(struct {
		StatusCode int         `json:"code"`
		Body       interface{} `json:"body"`
	}{r.StatusCode, body})
}

// HelixCredentials authenticate a Helix request.
type HelixCredentials struct {
	ClientID    string
	AccessToken string
}
