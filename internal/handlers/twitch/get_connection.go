package twitch_handler

import (
	"net/http"

	"twitch_vatsim_stats/internal/middleware"

	"github.com/sirupsen/logrus"
)

func (twh *TwitchHandler) GetConnection(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	res, err := twh.twitchTokenService.ConnectionInfo(ctx)
	if err != nil {
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.WriteSuccessData(w, r, res)
}
