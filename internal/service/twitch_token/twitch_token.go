package twitch_token

import (
	"context"
	"time"

	twitch_client "twitch_vatsim_stats/internal/client/twitch-client"
	twitch_oauth_client "twitch_vatsim_stats/internal/client/twitch-oauth-client"
	"twitch_vatsim_stats/internal/metrics"
	"twitch_vatsim_stats/internal/models"
	"twitch_vatsim_stats/internal/service/nonce"
	"twitch_vatsim_stats/internal/store"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// expirySafetyMargin makes a token count as expired a minute early.
	expirySafetyMargin int64 = 60
	// defaultRefreshExpiresIn applies when a refresh reply has no expires_in.
	defaultRefreshExpiresIn int64 = 3600
)

var errRefreshTokenChanged = errors.New("refresh token changed during refresh")

// TwitchTokenService owns the user token lifecycle:
// disconnected -> connected (valid) -> connected (expired) -> refreshed or disconnected.
type TwitchTokenService struct {
	store             store.Store
	twitchOauthClient *twitch_oauth_client.TwitchOauthClient
	twitchClient      *twitch_client.TwitchClient
	nonceService      *nonce.NonceService
	now               func() time.Time
}

func NewTwitchTokenService(
	st store.Store,
	twitchOauthClient *twitch_oauth_client.TwitchOauthClient,
	twitchClient *twitch_client.TwitchClient,
	nonceService *nonce.NonceService,
) *TwitchTokenService {
	return &TwitchTokenService{
		store:             st,
		twitchOauthClient: twitchOauthClient,
		twitchClient:      twitchClient,
		nonceService:      nonceService,
		now:               time.Now,
	}
}

// State derives the connection state at the current time.
func (tts *TwitchTokenService) State(settings models.Settings) models.ConnectionState {
	if !settings.IsConnected() {
		return models.Disconnected
	}
	if tts.now().Unix() >= settings.TokenExpiresAt {
		return models.ConnectedExpired
	}
	return models.ConnectedValid
}

// CompleteAuthorization exchanges an authorization code, resolves the account behind
// the new token and only then commits the whole connection in one update.
func (tts *TwitchTokenService) CompleteAuthorization(ctx context.Context, code string) (models.Settings, error) {

	settings, err := tts.store.Get(ctx)
	if err != nil {
		return models.Settings{}, errors.Wrap(err, "store.Get")
	}

	if !settings.HasCredentials() {
		return settings, models.ErrConfigurationMissing
	}

	issuedAt := tts.now().Unix()

	tokenInfo, raw, err := tts.twitchOauthClient.TwitchGetUserToken(ctx, settings.ClientID, settings.ClientSecret, code)
	if err != nil {
		return settings, errors.Wrapf(models.ErrAuthExchangeFailed, "TwitchGetUserToken: %v", err)
	}
	if tokenInfo == nil || tokenInfo.AccessToken == "" {
		return settings, errors.Wrapf(models.ErrAuthExchangeFailed, "no access token in reply: %s", raw)
	}

	creds := models.HelixCredentials{ClientID: settings.ClientID, AccessToken: tokenInfo.AccessToken}

	user, resp, err := tts.twitchClient.GetAuthenticatedUser(ctx, creds)
	if err != nil {
		return settings, errors.Wrapf(models.ErrIdentityResolutionFailed, "GetAuthenticatedUser: %v", err)
	}
	if user.UserID == "" {
		return settings, errors.Wrapf(models.ErrIdentityResolutionFailed, "status code %d: %s", resp.StatusCode, resp.Body)
	}

	var (
		refreshToken string
		expiresIn    int64
		scopes       = tokenInfo.Scope
	)
	if tokenInfo.RefreshToken != nil {
		refreshToken = *tokenInfo.RefreshToken
	}
	if tokenInfo.ExpiresIn != nil {
		expiresIn = *tokenInfo.ExpiresIn
	}
	if scopes == nil {
		scopes = []string{}
	}

	updated, err := tts.store.Update(ctx, func(s *models.Settings) error {
		s.AccessToken = tokenInfo.AccessToken
		s.RefreshToken = refreshToken
		s.TokenExpiresAt = issuedAt + expiresIn - expirySafetyMargin
		s.UserID = user.UserID
		s.Login = user.Login
		s.DisplayName = user.DisplayName
		s.Scopes = scopes
		return nil
	})
	if err != nil {
		return settings, errors.Wrap(err, "store.Update")
	}

	logrus.Infof("connected to twitch as %s (%s)", updated.DisplayName, updated.UserID)

	return updated, nil
}

// EnsureFreshToken refreshes an expired token. RefreshNotAttempted means freshness could
// not be ensured at all, not that the token is fresh. On failure the stale settings are
// returned together with models.ErrRefreshFailed.
func (tts *TwitchTokenService) EnsureFreshToken(ctx context.Context) (models.Settings, models.RefreshOutcome, error) {

	settings, err := tts.store.Get(ctx)
	if err != nil {
		return models.Settings{}, models.RefreshFailed, errors.Wrap(err, "store.Get")
	}

	outcome, updated, err := tts.ensureFresh(ctx, settings)
	metrics.ObserveRefresh(string(outcome))

	return updated, outcome, err
}

func (tts *TwitchTokenService) ensureFresh(ctx context.Context, settings models.Settings) (models.RefreshOutcome, models.Settings, error) {

	if settings.AccessToken == "" || settings.RefreshToken == "" || !settings.HasCredentials() {
		return models.RefreshNotAttempted, settings, nil
	}

	issuedAt := tts.now().Unix()
	if issuedAt < settings.TokenExpiresAt {
		return models.RefreshNotNeeded, settings, nil
	}

	usedRefreshToken := settings.RefreshToken

	tokenInfo, _, err := tts.twitchOauthClient.TwitchGetUserTokenRefresh(ctx, settings.ClientID, settings.ClientSecret, usedRefreshToken)
	if err != nil {
		logrus.Warnf("twitch token refresh failed: %v", err)
		return models.RefreshFailed, settings, errors.Wrapf(models.ErrRefreshFailed, "TwitchGetUserTokenRefresh: %v", err)
	}
	if tokenInfo == nil || tokenInfo.AccessToken == "" {
		logrus.Warn("twitch token refresh returned no access token")
		return models.RefreshFailed, settings, errors.Wrap(models.ErrRefreshFailed, "no access token in reply")
	}

	expiresIn := defaultRefreshExpiresIn
	if tokenInfo.ExpiresIn != nil {
		expiresIn = *tokenInfo.ExpiresIn
	}

	updated, err := tts.store.Update(ctx, func(s *models.Settings) error {
		// a disconnect or a parallel refresh won the race
		if s.RefreshToken != usedRefreshToken || s.UserID == "" {
			return errRefreshTokenChanged
		}

		s.AccessToken = tokenInfo.AccessToken
		if tokenInfo.RefreshToken != nil {
			s.RefreshToken = *tokenInfo.RefreshToken
		}
		s.TokenExpiresAt = issuedAt + expiresIn - expirySafetyMargin
		return nil
	})
	if err != nil {
		logrus.Warnf("twitch token refresh not committed: %v", err)
		return models.RefreshFailed, settings, errors.Wrapf(models.ErrRefreshFailed, "store.Update: %v", err)
	}

	logrus.Info("twitch token refreshed")

	return models.RefreshSucceeded, updated, nil
}

// Disconnect clears the connection once the anti-forgery token checks out.
func (tts *TwitchTokenService) Disconnect(ctx context.Context, antiForgeryToken string) error {

	if err := tts.nonceService.Verify(antiForgeryToken, nonce.ActionDisconnect); err != nil {
		logrus.Warnf("disconnect rejected: %v", err)
		return err
	}

	_, err := tts.store.Update(ctx, func(s *models.Settings) error {
		s.ClearConnection()
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "store.Update")
	}

	logrus.Info("disconnected from twitch")

	return nil
}

// ConnectionInfo is the view the settings surface renders.
func (tts *TwitchTokenService) ConnectionInfo(ctx context.Context) (models.ConnectionInfo, error) {

	settings, err := tts.store.Get(ctx)
	if err != nil {
		return models.ConnectionInfo{}, errors.Wrap(err, "store.Get")
	}

	info := models.ConnectionInfo{
		State:       tts.State(settings),
		Configured:  settings.HasCredentials(),
		RedirectURI: tts.twitchOauthClient.RedirectURI(),
	}

	if info.State == models.Disconnected {
		if info.Configured {
			info.AuthorizeURL = tts.twitchOauthClient.AuthorizeURL(settings.ClientID)
		}
		return info, nil
	}

	info.UserID = settings.UserID
	info.Login = settings.Login
	info.DisplayName = settings.DisplayName
	info.Scopes = settings.Scopes

	info.DisconnectToken, err = tts.nonceService.Mint(nonce.ActionDisconnect)
	if err != nil {
		return models.ConnectionInfo{}, errors.Wrap(err, "Mint")
	}

	return info, nil
}
