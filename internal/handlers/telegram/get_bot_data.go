package telegram

import (
	"net/http"

	"twitch_vatsim_stats/internal/middleware"

	"github.com/sirupsen/logrus"
)

func (h *TelegramHandler) GetBotData(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	res, err := h.telegramService.GetBotCommands(ctx)
	if err != nil {
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusBadGateway, err.Error())
		return
	}

	middleware.WriteSuccessData(w, r, res)
}
