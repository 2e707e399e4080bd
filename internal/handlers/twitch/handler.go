package twitch_handler

import (
	"net/http"
	"net/url"

	"twitch_vatsim_stats/internal/service/twitch_token"

	"github.com/sirupsen/logrus"
)

const messageParam = "tvs_msg"

type TwitchHandler struct {
	twitchTokenService *twitch_token.TwitchTokenService
	settingsURL        string
}

func NewTwitchHandler(twitchTokenService *twitch_token.TwitchTokenService, settingsURL string) *TwitchHandler {
	return &TwitchHandler{
		twitchTokenService: twitchTokenService,
		settingsURL:        settingsURL,
	}
}

// redirectWithMessage sends the operator back to the settings page with a notice.
func (twh *TwitchHandler) redirectWithMessage(w http.ResponseWriter, r *http.Request, msg string) {

	target, err := url.Parse(twh.settingsURL)
	if err != nil {
		logrus.Errorf("invalid settings url %q: %v", twh.settingsURL, err)
		target = &url.URL{Path: "/"}
	}

	query := target.Query()
	query.Set(messageParam, msg)
	target.RawQuery = query.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}
