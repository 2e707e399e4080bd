package twitch_client

import (
	"context"

	"twitch_vatsim_stats/internal/models"
)

const usersPath = "/helix/users"

// GetAuthenticatedUser resolves the account that owns the token. An empty UserID means
// the identity could not be resolved.
func (twc *TwitchClient) GetAuthenticatedUser(ctx context.Context, creds models.HelixCredentials) (user models.TwitchUserInfo, resp models.APIResponse, err error) {

	resp, err = twc.AuthenticatedGet(ctx, usersPath, creds, nil)
	if err != nil {
		return
	}

	var usersInfo models.GetUserInfoResponse
	decodeBody(usersPath, resp, &usersInfo)

	if len(usersInfo.Data) > 0 {
		user = usersInfo.Data[0]
	}

	return
}
