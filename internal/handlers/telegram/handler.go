package telegram

import (
	teleService "twitch_vatsim_stats/internal/service/telegram"
)

type TelegramHandler struct {
	telegramService *teleService.TelegramService
}

func NewTelegramHandler(telegramService *teleService.TelegramService) *TelegramHandler {
	return &TelegramHandler{
		telegramService: telegramService,
	}
}
