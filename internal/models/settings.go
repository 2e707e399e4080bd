package models

// Settings is the persisted widget configuration together with the Twitch connection.
type Settings struct {
	ClientID                string   `json:"client_id"`
	ClientSecret            string   `json:"client_secret"`
	Username                string   `json:"username"`
	VatsimCID               int64    `json:"vatsim_cid"`
	FallbackPilotHours      int64    `json:"fallback_pilot_hours"`
	FallbackControllerHours int64    `json:"fallback_controller_hours"`
	Debug                   bool     `json:"debug"`
	AccessToken             string   `json:"access_token"`
	RefreshToken            string   `json:"refresh_token"`
	TokenExpiresAt          int64    `json:"token_expires_at"`
	UserID                  string   `json:"user_id"`
	Login                   string   `json:"login"`
	DisplayName             string   `json:"display_name"`
	Scopes                  []string `json:"scopes"`
}

func (s Settings) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

func (s Settings) IsConnected() bool {
	return s.AccessToken != "" && s.UserID != ""
}

// ClearConnection drops every connection field at once.
func (s *Settings) ClearConnection() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.TokenExpiresAt = 0
	s.UserID = ""
	s.Login = ""
	s.DisplayName = ""
	s.Scopes = []string{}
}

// OperatorSettings carries configuration edits; nil fields are left untouched.
type OperatorSettings struct {
	ClientID                *string
	ClientSecret            *string
	Username                *string
	VatsimCID               *int64
	FallbackPilotHours      *int64
	FallbackControllerHours *int64
	Debug                   *bool
}

func (o OperatorSettings) Apply(s *Settings) {
	if o.ClientID != nil {
		s.ClientID = *o.ClientID
	}
	if o.ClientSecret != nil {
		s.ClientSecret = *o.ClientSecret
	}
	if o.Username != nil {
		s.Username = *o.Username
	}
	if o.VatsimCID != nil {
		s.VatsimCID = *o.VatsimCID
	}
	if o.FallbackPilotHours != nil {
		s.FallbackPilotHours = *o.FallbackPilotHours
	}
	if o.FallbackControllerHours != nil {
		s.FallbackControllerHours = *o.FallbackControllerHours
	}
	if o.Debug != nil {
		s.Debug = *o.Debug
	}
}

func (o OperatorSettings) IsEmpty() bool {
	return o.ClientID == nil && o.ClientSecret == nil && o.Username == nil && o.VatsimCID == nil &&
		o.FallbackPilotHours == nil && o.FallbackControllerHours == nil && o.Debug == nil
}
