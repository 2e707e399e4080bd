package telegram_client

import (
	"context"
	"net/http"

	tgBotApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type TelegramClient struct {
	bot *tgBotApi.BotAPI
}

// NewTelegramClient authorizes the bot. An empty apiEndpoint means the public Bot API.
func NewTelegramClient(token, apiEndpoint string, httpClient *http.Client) (*TelegramClient, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgBotApi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	bot, err := tgBotApi.NewBotAPIWithClient(token, apiEndpoint, httpClient)
	if err != nil {
		return nil, errors.Wrap(err, "NewBotAPIWithClient")
	}

	logrus.Infof("Authorized on account %s", bot.Self.UserName)

	return &TelegramClient{bot: bot}, nil
}

func (tc *TelegramClient) UserName() string {
	return tc.bot.Self.UserName
}

func (tc *TelegramClient) GetBotCommands(ctx context.Context) (res []tgBotApi.BotCommand, err error) {
	res, err = tc.bot.GetMyCommands()
	if err != nil {
		return nil, errors.Wrap(err, "GetMyCommands")
	}

	return
}

func (tc *TelegramClient) SetBotCommands(ctx context.Context, commands []tgBotApi.BotCommand) error {
	_, err := tc.bot.Request(tgBotApi.NewSetMyCommands(commands...))
	if err != nil {
		return errors.Wrap(err, "setMyCommands")
	}

	return nil
}

// Updates starts long polling. The channel is closed by StopUpdates.
func (tc *TelegramClient) Updates(timeout int) tgBotApi.UpdatesChannel {
	reader := tgBotApi.NewUpdate(0)
	reader.Timeout = timeout

	return tc.bot.GetUpdatesChan(reader)
}

func (tc *TelegramClient) StopUpdates() {
	tc.bot.StopReceivingUpdates()
}

func (tc *TelegramClient) Send(msg tgBotApi.Chattable) error {
	_, err := tc.bot.Send(msg)
	if err != nil {
		return errors.Wrap(err, "Send")
	}

	return nil
}
