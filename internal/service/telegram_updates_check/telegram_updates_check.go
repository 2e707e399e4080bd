package telegram_updates_check

import (
	"context"
	"strings"
	"time"

	telegram_client "twitch_vatsim_stats/internal/client/telegram-client"
	"twitch_vatsim_stats/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	telegramUpdatesCheckBGSync = "telegramUpdatesCheck_BGSync"
	updatesTimeout             = 60
	staleMessageAge            = 12 * time.Second

	startCommand    = "/start"
	commandsCommand = "/commands"
	pingCommand     = "/ping"
	statsCommand    = "/stats"
)

// BotCommands is the command menu the bot answers to.
var BotCommands = []models.TeleBotCommand{
	{Command: statsCommand, Description: "Show follower, subscriber and VATSIM hour totals"},
	{Command: pingCommand, Description: "Check that the bot is alive"},
	{Command: commandsCommand, Description: "List the commands"},
}

type statsRenderer interface {
	RenderStats(ctx context.Context) (models.RenderResult, error)
}

type TelegramUpdatesCheckService struct {
	telegramClient *telegram_client.TelegramClient
	statsService   statsRenderer
	now            func() time.Time
}

func NewTelegramUpdatesCheckService(telegramClient *telegram_client.TelegramClient, statsService statsRenderer) *TelegramUpdatesCheckService {
	return &TelegramUpdatesCheckService{
		telegramClient: telegramClient,
		statsService:   statsService,
		now:            time.Now,
	}
}

// SyncBg answers bot commands until ctx is done.
func (tmcs *TelegramUpdatesCheckService) SyncBg(ctx context.Context) {

	logrus.Infof("started bg %s process", telegramUpdatesCheckBGSync)

	updates := tmcs.telegramClient.Updates(updatesTimeout)
	defer tmcs.telegramClient.StopUpdates()

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("stoping bg %s process", telegramUpdatesCheckBGSync)
			return
		case updateInfo, ok := <-updates:
			if !ok {
				logrus.Warnf("%s updates channel closed", telegramUpdatesCheckBGSync)
				return
			}

			msg, reply := tmcs.handleUpdate(ctx, updateInfo)
			if !reply {
				continue
			}

			if err := tmcs.telegramClient.Send(msg); err != nil {
				logrus.Errorf("cannot answer chat %d: %v", msg.ChatID, err)
			}
		}
	}
}

func (tmcs *TelegramUpdatesCheckService) handleUpdate(ctx context.Context, updateInfo tgbotapi.Update) (msg tgbotapi.MessageConfig, reply bool) {

	if updateInfo.Message == nil {
		return
	}

	message := updateInfo.Message

	command := parseCommand(message.Text)
	if command == "" {
		return
	}

	if message.From != nil {
		logrus.Infof("[%s] %s", message.From.UserName, message.Text)
	}

	msg = tgbotapi.NewMessage(message.Chat.ID, "")
	msg.ReplyToMessageID = message.MessageID

	sentAt := time.Unix(int64(message.Date), 0)
	if sentAt.Add(staleMessageAge).Before(tmcs.now()) {
		logrus.Infof("skip reason: old time. message time %s, time now %s", sentAt, tmcs.now())
		msg.Text = napMessage
		return msg, true
	}

	switch command {
	case startCommand:
		msg.Text = buildCommandListResponse(greetingMessage, true)
	case commandsCommand:
		msg.Text = buildCommandListResponse("", false)
	case pingCommand:
		msg.Text = "pong"
	case statsCommand:
		msg = tmcs.stats(ctx, msg)
	default:
		return msg, false
	}

	return msg, true
}

// parseCommand returns the leading command without a @botname suffix.
func parseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}

	command := fields[0]
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}

	return strings.ToLower(command)
}
