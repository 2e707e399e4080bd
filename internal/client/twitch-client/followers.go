package twitch_client

import (
	"context"
	"net/url"

	"twitch_vatsim_stats/internal/models"
)

const followersPath = "/helix/channels/followers"

func (twc *TwitchClient) GetFollowerCount(ctx context.Context, creds models.HelixCredentials, broadcasterID string) (total int64, resp models.APIResponse, err error) {

	query := url.Values{}
	query.Add("broadcaster_id", broadcasterID)

	resp, err = twc.AuthenticatedGet(ctx, followersPath, creds, query)
	if err != nil {
		return
	}

	var followers models.FollowersResponse
	decodeBody(followersPath, resp, &followers)

	if followers.Total != nil {
		total = *followers.Total
	}

	return
}
