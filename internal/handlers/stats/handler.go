package stats_handler

import (
	stats_service "twitch_vatsim_stats/internal/service/stats"
)

type StatsHandler struct {
	statsService *stats_service.StatsService
}

func NewStatsHandler(statsService *stats_service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}
