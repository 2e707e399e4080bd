package twitch_oath_client

import (
	"net/http"
	"strings"
)

const TwitchIDSchemeHost string = "https://id.twitch.tv"

var expectableErrorCode = map[int]bool{
	http.StatusBadRequest:   true,
	http.StatusUnauthorized: true,
	http.StatusForbidden:    true,
}

type TwitchOauthClient struct {
	httpClient   *http.Client
	idSchemeHost string
	redirectURI  string
}

func NewTwitchOauthClient(
	httpClient *http.Client, idSchemeHost, redirectURI string,
) *TwitchOauthClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if idSchemeHost == "" {
		idSchemeHost = TwitchIDSchemeHost
	}
	return &TwitchOauthClient{
		httpClient:   httpClient,
		idSchemeHost: strings.TrimRight(idSchemeHost, "/"),
		redirectURI:  redirectURI,
	}
}

func (twc *TwitchOauthClient) RedirectURI() string {
	return twc.redirectURI
}
