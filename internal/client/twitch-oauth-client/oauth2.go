package twitch_oath_client

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"twitch_vatsim_stats/internal/metrics"
	"twitch_vatsim_stats/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TwitchGetUserToken trades an authorization code for a user token pair.
func (twc *TwitchOauthClient) TwitchGetUserToken(ctx context.Context, clientID, clientSecret, code string) (data *models.TwitchOautGetTokenResponse, raw []byte, err error) {

	form := url.Values{}
	form.Add("client_id", clientID)
	form.Add("client_secret", clientSecret)
	form.Add("code", code)
	form.Add("grant_type", string(models.GrantAuthorizationCode))
	form.Add("redirect_uri", twc.redirectURI)

	return twc.postToken(ctx, form)
}

// TwitchGetUserTokenRefresh trades a refresh token for a new user token pair.
func (twc *TwitchOauthClient) TwitchGetUserTokenRefresh(ctx context.Context, clientID, clientSecret, refreshToken string) (data *models.TwitchOautGetTokenResponse, raw []byte, err error) {

	form := url.Values{}
	form.Add("client_id", clientID)
	form.Add("client_secret", clientSecret)
	form.Add("grant_type", string(models.GrantRefreshToken))
	form.Add("refresh_token", refreshToken)

	return twc.postToken(ctx, form)
}

func (twc *TwitchOauthClient) postToken(ctx context.Context, form url.Values) (data *models.TwitchOautGetTokenResponse, raw []byte, err error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, twc.idSchemeHost+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, err
	}

	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/json")

	resp, err := twc.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(metrics.APITwitchOAuth, 0)
		return nil, nil, errors.Wrap(err, "token request")
	}

	defer resp.Body.Close()

	metrics.ObserveUpstream(metrics.APITwitchOAuth, resp.StatusCode)

	raw, err = ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read token response")
	}

	var tokenInfo models.TwitchOautGetTokenResponse
	if err = jsoniter.Unmarshal(raw, &tokenInfo); err != nil {
		return nil, raw, errors.Wrapf(err, "decode token response with status code %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if expectableErrorCode[resp.StatusCode] {
			logrus.Warnf("twitch token endpoint rejected %s grant: %s", form.Get("grant_type"), tokenInfo.Message)
			return &tokenInfo, raw, errors.Errorf("token request rejected: %s", tokenInfo.Message)
		}

		return &tokenInfo, raw, errors.Errorf("token request failed with status code: %d", resp.StatusCode)
	}

	return &tokenInfo, raw, nil
}
