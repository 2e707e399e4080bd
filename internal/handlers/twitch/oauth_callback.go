package twitch_handler

import (
	"fmt"
	"net/http"

	"twitch_vatsim_stats/internal/middleware"
	"twitch_vatsim_stats/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	missingCodeMessage       = "Missing authorization code."
	missingSecretsMessage    = "Client ID/Secret missing."
	exchangeFailedMessage    = "OAuth token exchange failed."
	unresolvedUserMessage    = "Could not resolve user from token."
	connectedMessageFormat   = "Connected to Twitch as %s."
	oauthFailedMessageFormat = "OAuth failed: %s"
)

// OAuthCallback completes the authorization-code flow Twitch redirects back to.
func (twh *TwitchHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {

	code := r.URL.Query().Get("code")
	if code == "" {
		reason := r.URL.Query().Get("error_description")
		if reason == "" {
			reason = missingCodeMessage
		}
		logrus.Warnf("oauth callback without code: %s", reason)
		twh.redirectWithMessage(w, r, fmt.Sprintf(oauthFailedMessageFormat, reason))
		return
	}

	ctx := r.Context()

	settings, err := twh.twitchTokenService.CompleteAuthorization(ctx, code)
	switch {
	case err == nil:
		twh.redirectWithMessage(w, r, fmt.Sprintf(connectedMessageFormat, settings.DisplayName))

	case errors.Is(err, models.ErrConfigurationMissing):
		twh.redirectWithMessage(w, r, missingSecretsMessage)

	case errors.Is(err, models.ErrAuthExchangeFailed):
		logrus.Error(err)
		twh.redirectWithMessage(w, r, withDetail(exchangeFailedMessage, err, settings.Debug))

	case errors.Is(err, models.ErrIdentityResolutionFailed):
		logrus.Error(err)
		twh.redirectWithMessage(w, r, withDetail(unresolvedUserMessage, err, settings.Debug))

	default:
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, err.Error())
	}
}

func withDetail(msg string, err error, debug bool) string {
	if !debug {
		return msg
	}
	return msg + " " + err.Error()
}
