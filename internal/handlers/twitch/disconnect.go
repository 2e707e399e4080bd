package twitch_handler

import (
	"net/http"

	"twitch_vatsim_stats/internal/middleware"
	"twitch_vatsim_stats/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	antiForgeryField      = "_token"
	disconnectedMessage   = "Disconnected from Twitch."
	invalidRequestMessage = "invalid request"
)

func (twh *TwitchHandler) Disconnect(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		logrus.Errorf("failed parse form, error: %v", err)
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	err := twh.twitchTokenService.Disconnect(ctx, r.PostFormValue(antiForgeryField))
	if errors.Is(err, models.ErrInvalidRequest) {
		middleware.WriteErrorResponse(w, r, http.StatusForbidden, invalidRequestMessage)
		return
	}
	if err != nil {
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	twh.redirectWithMessage(w, r, disconnectedMessage)
}
