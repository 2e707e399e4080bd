package twitch_client

import (
	"context"
	"net/url"

	"twitch_vatsim_stats/internal/models"
)

const subscriptionsPath = "/helix/subscriptions"

// GetSubscriberCount prefers the reported total. Counting records is only exact when
// the first page holds every subscriber.
func (twc *TwitchClient) GetSubscriberCount(ctx context.Context, creds models.HelixCredentials, broadcasterID string) (count int64, resp models.APIResponse, err error) {

	query := url.Values{}
	query.Add("broadcaster_id", broadcasterID)

	resp, err = twc.AuthenticatedGet(ctx, subscriptionsPath, creds, query)
	if err != nil {
		return
	}

	var subs models.SubscriptionsResponse
	decodeBody(subscriptionsPath, resp, &subs)

	return subs.Count(), resp, nil
}
