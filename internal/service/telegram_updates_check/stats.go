package telegram_updates_check

import (
	"context"

	formater "twitch_vatsim_stats/internal/utils/formater"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// stats answers /stats with the widget contents and a link button while live.
func (tmcs *TelegramUpdatesCheckService) stats(ctx context.Context, msg tgbotapi.MessageConfig) tgbotapi.MessageConfig {

	result, err := tmcs.statsService.RenderStats(ctx)
	if err != nil {
		logrus.Errorf("cannot render stats for chat %d: %v", msg.ChatID, err)
		msg.Text = somethingWrong
		return msg
	}

	msg.Text = formater.StatsCaption(result, tmcs.now())

	if result.Stats != nil && result.Stats.Stream != nil && result.Stats.Stream.UserLogin != "" {
		msg = formater.CreateTelegramSingleButtonLink(msg, formater.TwitchChannelLink(result.Stats.Stream.UserLogin), watchButtonText, msg.ReplyToMessageID)
	}

	return msg
}
