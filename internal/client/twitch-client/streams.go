package twitch_client

import (
	"context"
	"net/url"

	"twitch_vatsim_stats/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const streamsPath = "/helix/streams"

type StreamStatus struct {
	IsLive bool
	// Stream is the first record when it could be decoded.
	Stream *models.Stream
}

func (twc *TwitchClient) GetStreamStatus(ctx context.Context, creds models.HelixCredentials, userID string) (status StreamStatus, resp models.APIResponse, err error) {

	query := url.Values{}
	query.Add("user_id", userID)

	resp, err = twc.AuthenticatedGet(ctx, streamsPath, creds, query)
	if err != nil {
		return
	}

	var streamsInfo models.Streams
	decodeBody(streamsPath, resp, &streamsInfo)

	if len(streamsInfo.Data) == 0 {
		return
	}

	status.IsLive = true

	var stream models.Stream
	if decodeErr := jsoniter.Unmarshal(streamsInfo.Data[0], &stream); decodeErr != nil {
		logrus.Warnf("cannot decode stream record: %v", decodeErr)
		return
	}
	status.Stream = &stream

	return
}
