package twitch_oath_client

import (
	"twitch_vatsim_stats/internal/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/twitch"
)

// AuthorizeURL builds the consent link for the authorization-code flow.
func (twc *TwitchOauthClient) AuthorizeURL(clientID string) string {
	scopes := make([]string, 0, len(models.WidgetScopes))
	for _, scope := range models.WidgetScopes {
		scopes = append(scopes, string(scope))
	}

	endpoint := twitch.Endpoint
	if twc.idSchemeHost != TwitchIDSchemeHost {
		endpoint.AuthURL = twc.idSchemeHost + "/oauth2/authorize"
		endpoint.TokenURL = twc.idSchemeHost + "/oauth2/token"
	}

	conf := oauth2.Config{
		ClientID:    clientID,
		Endpoint:    endpoint,
		RedirectURL: twc.redirectURI,
		Scopes:      scopes,
	}

	return conf.AuthCodeURL(uuid.NewString(), oauth2.SetAuthURLParam("force_verify", "true"))
}
