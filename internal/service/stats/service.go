package stats_service

import (
	twitch_client "twitch_vatsim_stats/internal/client/twitch-client"
	vatsim_client "twitch_vatsim_stats/internal/client/vatsim-client"
	"twitch_vatsim_stats/internal/service/twitch_token"
	"twitch_vatsim_stats/internal/store"
)

type StatsService struct {
	store              store.Store
	twitchTokenService *twitch_token.TwitchTokenService
	twitchClient       *twitch_client.TwitchClient
	vatsimClient       *vatsim_client.VatsimClient
}

func NewStatsService(
	st store.Store,
	twitchTokenService *twitch_token.TwitchTokenService,
	twitchClient *twitch_client.TwitchClient,
	vatsimClient *vatsim_client.VatsimClient,
) *StatsService {
	return &StatsService{
		store:              st,
		twitchTokenService: twitchTokenService,
		twitchClient:       twitchClient,
		vatsimClient:       vatsimClient,
	}
}
