package models

type RenderStatus string

var (
	RenderOK                   RenderStatus = "ok"
	RenderConfigurationMissing RenderStatus = "configuration_missing"
	RenderNotConnected         RenderStatus = "not_connected"
)

const (
	ConfigurationMissingMessage = "Please configure Client ID/Secret in the widget settings."
	NotConnectedMessage         = "Not connected to Twitch."
)

type Metric string

var (
	MetricFollowers   Metric = "followers"
	MetricSubscribers Metric = "subscribers"
	MetricLive        Metric = "live"
	MetricVatsim      Metric = "vatsim"
)

type Stats struct {
	FollowerCount   int64   `json:"follower_count"`
	IsLive          bool    `json:"is_live"`
	SubscriberCount int64   `json:"subscriber_count"`
	PilotHours      float64 `json:"pilot_hours"`
	ControllerHours float64 `json:"controller_hours"`
	Stream          *Stream `json:"stream,omitempty"`
}

type DebugPayload struct {
	FollowersResp APIResponse `json:"followers_resp"`
	SubsResp      APIResponse `json:"subs_resp"`
	LiveResp      APIResponse `json:"live_resp"`
	VatsimCID     int64       `json:"vatsim_cid"`
	VatsimRaw     interface{} `json:"vatsim_raw"`
}

type RenderResult struct {
	Status   RenderStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Stats    *Stats        `json:"stats,omitempty"`
	Degraded []Metric      `json:"degraded,omitempty"`
	Debug    *DebugPayload `json:"debug,omitempty"`
}

// Err maps a render that showed no stats to its sentinel error.
func (r RenderResult) Err() error {
	switch r.Status {
	case RenderConfigurationMissing:
		return ErrConfigurationMissing
	case RenderNotConnected:
		return ErrNotConnected
	}
	return nil
}
