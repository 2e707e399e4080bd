package stats_handler

import (
	"net/http"

	"twitch_vatsim_stats/internal/middleware"

	"github.com/sirupsen/logrus"
)

// GetStats serves the widget. Configuration and connection problems are reported
// inside the result, so they still answer 200.
func (sh *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	res, err := sh.statsService.RenderStats(ctx)
	if err != nil {
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Cache-Control", "no-store")

	middleware.WriteSuccessData(w, r, res)
}
