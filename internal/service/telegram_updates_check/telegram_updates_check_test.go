package telegram_updates_check

import (
	"context"
	"testing"
	"time"

	"twitch_vatsim_stats/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeStats struct {
	result models.RenderResult
	err    error
	calls  int
}

func (f *fakeStats) RenderStats(ctx context.Context) (models.RenderResult, error) {
	f.calls++
	return f.result, f.err
}

func newTestService(stats *fakeStats) *TelegramUpdatesCheckService {
	service := NewTelegramUpdatesCheckService(nil, stats)
	service.now = func() time.Time { return testNow }
	return service
}

func update(text string, sentAt time.Time) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 5,
			From:      &tgbotapi.User{UserName: "viewer"},
			Chat:      &tgbotapi.Chat{ID: 100},
			Date:      int(sentAt.Unix()),
			Text:      text,
		},
	}
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, "/stats", parseCommand("/stats"))
	assert.Equal(t, "/stats", parseCommand("/Stats@widget_bot please"))
	assert.Equal(t, "", parseCommand("hello /stats"))
	assert.Equal(t, "", parseCommand(""))
}

func TestHandleUpdate_Ping(t *testing.T) {
	service := newTestService(&fakeStats{})

	msg, reply := service.handleUpdate(context.Background(), update("/ping", testNow))
	require.True(t, reply)

	assert.Equal(t, "pong", msg.Text)
	assert.Equal(t, int64(100), msg.ChatID)
	assert.Equal(t, 5, msg.ReplyToMessageID)
}

func TestHandleUpdate_Commands(t *testing.T) {
	service := newTestService(&fakeStats{})

	msg, reply := service.handleUpdate(context.Background(), update("/start", testNow))
	require.True(t, reply)

	assert.Contains(t, msg.Text, greetingMessage)
	assert.Contains(t, msg.Text, "/stats - ")
}

func TestHandleUpdate_Ignored(t *testing.T) {
	stats := &fakeStats{}
	service := newTestService(stats)

	for _, text := range []string{"just chatting", "/unknown"} {
		_, reply := service.handleUpdate(context.Background(), update(text, testNow))
		assert.False(t, reply, text)
	}

	_, reply := service.handleUpdate(context.Background(), tgbotapi.Update{})
	assert.False(t, reply)
	assert.Zero(t, stats.calls)
}

func TestHandleUpdate_StaleMessage(t *testing.T) {
	stats := &fakeStats{}
	service := newTestService(stats)

	msg, reply := service.handleUpdate(context.Background(), update("/stats", testNow.Add(-time.Minute)))
	require.True(t, reply)

	assert.Equal(t, napMessage, msg.Text)
	assert.Zero(t, stats.calls)
}

func TestHandleUpdate_Stats(t *testing.T) {
	stats := &fakeStats{result: models.RenderResult{
		Status: models.RenderOK,
		Stats: &models.Stats{
			FollowerCount: 10,
			IsLive:        true,
			PilotHours:    150,
			Stream:        &models.Stream{UserLogin: "Pilot", Title: "Night ops"},
		},
	}}
	service := newTestService(stats)

	msg, reply := service.handleUpdate(context.Background(), update("/stats", testNow))
	require.True(t, reply)

	assert.Contains(t, msg.Text, "Live now: Night ops")
	assert.Contains(t, msg.Text, "Pilot hours: 150")

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, "https://www.twitch.tv/pilot", *markup.InlineKeyboard[0][0].URL)
}

func TestHandleUpdate_StatsNotConnected(t *testing.T) {
	service := newTestService(&fakeStats{result: models.RenderResult{
		Status:  models.RenderNotConnected,
		Message: models.NotConnectedMessage,
	}})

	msg, reply := service.handleUpdate(context.Background(), update("/stats", testNow))
	require.True(t, reply)

	assert.Equal(t, models.NotConnectedMessage, msg.Text)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestHandleUpdate_StatsFailure(t *testing.T) {
	service := newTestService(&fakeStats{err: errors.New("store down")})

	msg, reply := service.handleUpdate(context.Background(), update("/stats", testNow))
	require.True(t, reply)

	assert.Equal(t, somethingWrong, msg.Text)
}
