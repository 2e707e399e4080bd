package models

type Scope string

var (
	ModeratorReadFollowers Scope = "moderator:read:followers"
	ChannelReadSubs        Scope = "channel:read:subscriptions"
)

// WidgetScopes are requested on every authorization.
var WidgetScopes = []Scope{ModeratorReadFollowers, ChannelReadSubs}

type GrantType string

var (
	GrantAuthorizationCode GrantType = "authorization_code"
	GrantRefreshToken      GrantType = "refresh_token"
)

// Twitch omits fields depending on grant type, so the optional ones are pointers.
type TwitchOautGetTokenResponse struct {
	AccessToken  string   `json:"access_token"`
	ExpiresIn    *int64   `json:"expires_in"`
	RefreshToken *string  `json:"refresh_token"`
	Scope        []string `json:"scope"`
	TokenType    string   `json:"token_type"`
	Status       int      `json:"status"`  // set on error responses
	Message      string   `json:"message"` // set on error responses
}

type RefreshOutcome string

var (
	RefreshNotAttempted RefreshOutcome = "not_attempted"
	RefreshNotNeeded    RefreshOutcome = "not_needed"
	RefreshSucceeded    RefreshOutcome = "succeeded"
	RefreshFailed       RefreshOutcome = "failed"
)

type ConnectionState string

var (
	Disconnected     ConnectionState = "disconnected"
	ConnectedValid   ConnectionState = "connected_valid"
	ConnectedExpired ConnectionState = "connected_expired"
)

// ConnectionInfo is what the settings surface shows about the Twitch link.
type ConnectionInfo struct {
	State           ConnectionState `json:"state"`
	Configured      bool            `json:"configured"`
	UserID          string          `json:"user_id,omitempty"`
	Login           string          `json:"login,omitempty"`
	DisplayName     string          `json:"display_name,omitempty"`
	Scopes          []string        `json:"scopes,omitempty"`
	RedirectURI     string          `json:"redirect_uri"`
	AuthorizeURL    string          `json:"authorize_url,omitempty"`
	DisconnectToken string          `json:"disconnect_token,omitempty"`
}
