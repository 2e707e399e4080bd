package twitch_token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	twitch_client "twitch_vatsim_stats/internal/client/twitch-client"
	twitch_oauth_client "twitch_vatsim_stats/internal/client/twitch-oauth-client"
	"twitch_vatsim_stats/internal/models"
	"twitch_vatsim_stats/internal/service/nonce"
	"twitch_vatsim_stats/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1700000000, 0)

type fakeTwitch struct {
	tokenStatus int
	tokenBody   string
	usersBody   string
	onToken     func()

	tokenCalls int32
	usersCalls int32
	lastForm   url.Values
}

func (f *fakeTwitch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/oauth2/token":
		atomic.AddInt32(&f.tokenCalls, 1)
		_ = r.ParseForm()
		f.lastForm = r.PostForm
		if f.onToken != nil {
			f.onToken()
		}
		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
		}
		_, _ = w.Write([]byte(f.tokenBody))
	case "/helix/users":
		atomic.AddInt32(&f.usersCalls, 1)
		_, _ = w.Write([]byte(f.usersBody))
	default:
		http.NotFound(w, r)
	}
}

type testEnv struct {
	service *TwitchTokenService
	store   *store.FileStore
	nonce   *nonce.NonceService
	twitch  *fakeTwitch
}

func newTestEnv(t *testing.T, initial func(*models.Settings)) *testEnv {
	t.Helper()

	fake := &fakeTwitch{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	st := store.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	if initial != nil {
		_, err := st.Update(context.Background(), func(s *models.Settings) error {
			initial(s)
			return nil
		})
		require.NoError(t, err)
	}

	ns, err := nonce.NewNonceService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	service := NewTwitchTokenService(
		st,
		twitch_oauth_client.NewTwitchOauthClient(srv.Client(), srv.URL, "https://example.com/oauth/callback"),
		twitch_client.NewTwitchClient(srv.Client(), srv.URL),
		ns,
	)
	service.now = func() time.Time { return fixedNow }

	return &testEnv{service: service, store: st, nonce: ns, twitch: fake}
}

func withCredentials(s *models.Settings) {
	s.ClientID = "cid"
	s.ClientSecret = "secret"
}

func connected(expiresAt int64) func(*models.Settings) {
	return func(s *models.Settings) {
		withCredentials(s)
		s.AccessToken = "old-access"
		s.RefreshToken = "old-refresh"
		s.TokenExpiresAt = expiresAt
		s.UserID = "42"
		s.Login = "pilot"
		s.DisplayName = "Pilot"
		s.Scopes = []string{"channel:read:subscriptions"}
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestCompleteAuthorization(t *testing.T) {
	env := newTestEnv(t, withCredentials)
	env.twitch.tokenBody = `{"access_token":"access","expires_in":14400,"refresh_token":"refresh","scope":["moderator:read:followers","channel:read:subscriptions"],"token_type":"bearer"}`
	env.twitch.usersBody = `{"data":[{"id":"42","login":"pilot","display_name":"Pilot"}]}`

	settings, err := env.service.CompleteAuthorization(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "access", settings.AccessToken)
	assert.Equal(t, "refresh", settings.RefreshToken)
	assert.Equal(t, fixedNow.Unix()+14400-60, settings.TokenExpiresAt)
	assert.Equal(t, "42", settings.UserID)
	assert.Equal(t, "pilot", settings.Login)
	assert.Equal(t, "Pilot", settings.DisplayName)
	assert.Equal(t, []string{"moderator:read:followers", "channel:read:subscriptions"}, settings.Scopes)
	assert.Equal(t, "the-code", env.twitch.lastForm.Get("code"))

	stored, err := env.store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings, stored)
	assert.Equal(t, models.ConnectedValid, env.service.State(stored))
}

func TestCompleteAuthorization_LooselyTypedTokenReply(t *testing.T) {
	env := newTestEnv(t, withCredentials)
	env.twitch.tokenBody = `{"access_token":"access","expires_in":"14400","refresh_token":"refresh","scope":"moderator:read:followers channel:read:subscriptions","token_type":"bearer"}`
	env.twitch.usersBody = `{"data":[{"id":"42","login":"pilot","display_name":"Pilot"}]}`

	settings, err := env.service.CompleteAuthorization(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "access", settings.AccessToken)
	assert.Equal(t, fixedNow.Unix()+14400-60, settings.TokenExpiresAt)
	assert.Equal(t, "42", settings.UserID)
	assert.Equal(t, []string{"moderator:read:followers", "channel:read:subscriptions"}, settings.Scopes)
}

func TestCompleteAuthorization_MissingCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.CompleteAuthorization(context.Background(), "code")
	assert.ErrorIs(t, err, models.ErrConfigurationMissing)
	assert.Equal(t, int32(0), atomic.LoadInt32(&env.twitch.tokenCalls))
}

func TestCompleteAuthorization_NoAccessTokenLeavesSettingsUntouched(t *testing.T) {
	env := newTestEnv(t, withCredentials)
	env.twitch.tokenStatus = http.StatusBadRequest
	env.twitch.tokenBody = `{"status":400,"message":"Invalid authorization code"}`

	before := readFile(t, env.store.Path())

	_, err := env.service.CompleteAuthorization(context.Background(), "bad")
	assert.ErrorIs(t, err, models.ErrAuthExchangeFailed)

	assert.Equal(t, before, readFile(t, env.store.Path()))
	assert.Equal(t, int32(0), atomic.LoadInt32(&env.twitch.usersCalls))
}

func TestCompleteAuthorization_EmptyAccessToken(t *testing.T) {
	env := newTestEnv(t, withCredentials)
	env.twitch.tokenBody = `{"refresh_token":"refresh"}`

	before := readFile(t, env.store.Path())

	_, err := env.service.CompleteAuthorization(context.Background(), "code")
	assert.ErrorIs(t, err, models.ErrAuthExchangeFailed)
	assert.Equal(t, before, readFile(t, env.store.Path()))
}

func TestCompleteAuthorization_IdentityResolutionFailed(t *testing.T) {
	env := newTestEnv(t, withCredentials)
	env.twitch.tokenBody = `{"access_token":"access","expires_in":14400,"refresh_token":"refresh"}`
	env.twitch.usersBody = `{"data":[]}`

	before := readFile(t, env.store.Path())

	_, err := env.service.CompleteAuthorization(context.Background(), "code")
	assert.ErrorIs(t, err, models.ErrIdentityResolutionFailed)

	assert.Equal(t, before, readFile(t, env.store.Path()))
}

func TestEnsureFreshToken_NotAttempted(t *testing.T) {
	tests := []struct {
		name    string
		initial func(*models.Settings)
	}{
		{name: "nothing stored", initial: nil},
		{name: "no refresh token", initial: func(s *models.Settings) {
			connected(0)(s)
			s.RefreshToken = ""
		}},
		{name: "no credentials", initial: func(s *models.Settings) {
			connected(0)(s)
			s.ClientSecret = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.initial)

			_, outcome, err := env.service.EnsureFreshToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, models.RefreshNotAttempted, outcome)
			assert.Equal(t, int32(0), atomic.LoadInt32(&env.twitch.tokenCalls))
		})
	}
}

func TestEnsureFreshToken_NotNeeded(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()+100))

	settings, outcome, err := env.service.EnsureFreshToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RefreshNotNeeded, outcome)
	assert.Equal(t, "old-access", settings.AccessToken)
	assert.Equal(t, int32(0), atomic.LoadInt32(&env.twitch.tokenCalls))
}

func TestEnsureFreshToken_Refreshes(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()))
	env.twitch.tokenBody = `{"access_token":"new-access","refresh_token":"new-refresh","expires_in":7200}`

	settings, outcome, err := env.service.EnsureFreshToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RefreshSucceeded, outcome)
	assert.Equal(t, "new-access", settings.AccessToken)
	assert.Equal(t, "new-refresh", settings.RefreshToken)
	assert.Equal(t, fixedNow.Unix()+7200-60, settings.TokenExpiresAt)
	assert.Equal(t, "42", settings.UserID)
	assert.Equal(t, "refresh_token", env.twitch.lastForm.Get("grant_type"))
	assert.Equal(t, "old-refresh", env.twitch.lastForm.Get("refresh_token"))

	stored, err := env.store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings, stored)
}

func TestEnsureFreshToken_DefaultsOmittedFields(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()-10))
	env.twitch.tokenBody = `{"access_token":"new-access"}`

	settings, outcome, err := env.service.EnsureFreshToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RefreshSucceeded, outcome)
	assert.Equal(t, "old-refresh", settings.RefreshToken)
	assert.Equal(t, fixedNow.Unix()+3600-60, settings.TokenExpiresAt)
}

func TestEnsureFreshToken_FailureKeepsStaleToken(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()-10))
	env.twitch.tokenStatus = http.StatusBadRequest
	env.twitch.tokenBody = `{"status":400,"message":"Invalid refresh token"}`

	before := readFile(t, env.store.Path())

	settings, outcome, err := env.service.EnsureFreshToken(context.Background())
	assert.ErrorIs(t, err, models.ErrRefreshFailed)
	assert.Equal(t, models.RefreshFailed, outcome)
	assert.Equal(t, "old-access", settings.AccessToken)
	assert.Equal(t, models.ConnectedExpired, env.service.State(settings))

	assert.Equal(t, before, readFile(t, env.store.Path()))
}

func TestEnsureFreshToken_DisconnectDuringRefreshWins(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()-10))
	env.twitch.tokenBody = `{"access_token":"new-access","refresh_token":"new-refresh","expires_in":7200}`
	env.twitch.onToken = func() {
		_, err := env.store.Update(context.Background(), func(s *models.Settings) error {
			s.ClearConnection()
			return nil
		})
		assert.NoError(t, err)
	}

	_, outcome, err := env.service.EnsureFreshToken(context.Background())
	assert.ErrorIs(t, err, models.ErrRefreshFailed)
	assert.Equal(t, models.RefreshFailed, outcome)

	stored, err := env.store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored.AccessToken)
	assert.Empty(t, stored.UserID)
}

func TestDisconnect(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()+100))

	token, err := env.nonce.Mint(nonce.ActionDisconnect)
	require.NoError(t, err)

	require.NoError(t, env.service.Disconnect(context.Background(), token))

	stored, err := env.store.Get(context.Background())
	require.NoError(t, err)

	assert.Empty(t, stored.AccessToken)
	assert.Empty(t, stored.RefreshToken)
	assert.Zero(t, stored.TokenExpiresAt)
	assert.Empty(t, stored.UserID)
	assert.Empty(t, stored.Login)
	assert.Empty(t, stored.DisplayName)
	assert.Empty(t, stored.Scopes)
	assert.Equal(t, "cid", stored.ClientID)
	assert.Equal(t, models.Disconnected, env.service.State(stored))
}

func TestDisconnect_InvalidToken(t *testing.T) {
	env := newTestEnv(t, connected(fixedNow.Unix()+100))

	before := readFile(t, env.store.Path())

	err := env.service.Disconnect(context.Background(), "forged")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	assert.Equal(t, before, readFile(t, env.store.Path()))
}

func TestConnectionInfo(t *testing.T) {
	t.Run("disconnected with credentials", func(t *testing.T) {
		env := newTestEnv(t, withCredentials)

		info, err := env.service.ConnectionInfo(context.Background())
		require.NoError(t, err)

		assert.Equal(t, models.Disconnected, info.State)
		assert.True(t, info.Configured)
		assert.Contains(t, info.AuthorizeURL, "force_verify=true")
		assert.Empty(t, info.DisconnectToken)
	})

	t.Run("unconfigured", func(t *testing.T) {
		env := newTestEnv(t, nil)

		info, err := env.service.ConnectionInfo(context.Background())
		require.NoError(t, err)

		assert.False(t, info.Configured)
		assert.Empty(t, info.AuthorizeURL)
	})

	t.Run("connected", func(t *testing.T) {
		env := newTestEnv(t, connected(fixedNow.Unix()+100))

		info, err := env.service.ConnectionInfo(context.Background())
		require.NoError(t, err)

		assert.Equal(t, models.ConnectedValid, info.State)
		assert.Equal(t, "Pilot", info.DisplayName)
		assert.NoError(t, env.nonce.Verify(info.DisconnectToken, nonce.ActionDisconnect))
	})
}
