package telegram_service

import (
	telegreamClient "twitch_vatsim_stats/internal/client/telegram-client"
)

type TelegramService struct {
	telegramClient *telegreamClient.TelegramClient
}

func NewService(telegramClient *telegreamClient.TelegramClient) *TelegramService {
	return &TelegramService{
		telegramClient: telegramClient,
	}
}
