package twitch_client

import (
	"context"
	"fmt"
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

const TwitchApiSchemeHost string = "https://api.twitch.tv"

type TwitchClient struct {
	httpClient    *http.Client
	apiSchemeHost string
}

func NewTwitchClient(httpClient *http.Client, apiSchemeHost string) *TwitchClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiSchemeHost == "" {
		apiSchemeHost = TwitchApiSchemeHost
	}
	return &TwitchClient{
		httpClient:    httpClient,
		apiSchemeHost: strings.TrimRight(apiSchemeHost, "/"),
	}
}

// AuthenticatedGet performs one Helix GET. Non-2xx replies are returned as they are;
// the error is reserved for requests that never produced a reply.
func (twc *TwitchClient) AuthenticatedGet(ctx context.Context, path string, creds models.HelixCredentials, query url.Values) (models.APIResponse, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, twc.apiSchemeHost+path, nil)
	if err != nil {
		return models.APIResponse{}, err
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Add("Client-Id", creds.ClientID)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", creds.AccessToken))

	resp, err := twc.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(metrics.APITwitch, 0)
		return models.APIResponse{}, errors.Wrapf(err, "GET %s", path)
	}

	defer resp.Body.Close()

	metrics.ObserveUpstream(metrics.APITwitch, resp.StatusCode)

	readedResp, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return models.APIResponse{StatusCode: resp.StatusCode}, errors.Wrapf(err, "read %s", path)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		var unauthorizedResp models.GetUserUnauthorized
		if jsoniter.Unmarshal(readedResp, &unauthorizedResp) == nil {
			logrus.Warnf("twitch %s unauthorized: %s", path, unauthorizedResp.Message)
		}
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Warnf("twitch %s failed with status code: %d", path, resp.StatusCode)
	}

	return models.APIResponse{
		StatusCode: resp.StatusCode,
		Body:       readedResp,
	}, nil
}

// decodeBody fills v from the reply and leaves it zero when the body is not JSON.
func decodeBody(path string, resp models.APIResponse, v interface{}) {
	if len(resp.Body) == 0 {
		return
	}
	if err := jsoniter.Unmarshal(resp.Body, v); err != nil {
		logrus.Warnf("twitch %s returned unparsable body: %v", path, err)
	}
}
