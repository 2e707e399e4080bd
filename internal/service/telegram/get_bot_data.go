package telegram_service

import (
	"context"
	"fmt"
	"strings"

	"twitch_vatsim_stats/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

func (s *TelegramService) GetBotCommands(ctx context.Context) (res *models.TeleBotCommands, err error) {

	data, err := s.telegramClient.GetBotCommands(ctx)
	if err != nil {
		return nil, err
	}

	res = &models.TeleBotCommands{Commands: []models.TeleBotCommand{}}

	for _, commandInfo := range data {

		command := models.TeleBotCommand{
			Command:     fmt.Sprintf("/%s", commandInfo.Command),
			Description: commandInfo.Description,
		}

		res.Commands = append(res.Commands, command)
	}

	return
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (s *TelegramService) RegisterCommands(ctx context.Context, commands []models.TeleBotCommand) error {

	botCommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, command := range commands {
		botCommands = append(botCommands, tgbotapi.BotCommand{
			Command:     strings.TrimPrefix(command.Command, "/"),
			Description: command.Description,
		})
	}

	if err := s.telegramClient.SetBotCommands(ctx, botCommands); err != nil {
		return errors.Wrap(err, "SetBotCommands")
	}

	return nil
}
