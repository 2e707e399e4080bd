package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	telegramClient "twitch_vatsim_stats/internal/client/telegram-client"
	twitchClient "twitch_vatsim_stats/internal/client/twitch-client"
	twitchOauthClient "twitch_vatsim_stats/internal/client/twitch-oauth-client"
	vatsimClient "twitch_vatsim_stats/internal/client/vatsim-client"
	"twitch_vatsim_stats/internal/config"
	"twitch_vatsim_stats/internal/logger"
	"twitch_vatsim_stats/internal/middleware"
	"twitch_vatsim_stats/internal/store"

	statsHandler "twitch_vatsim_stats/internal/handlers/stats"
	telegramHandler "twitch_vatsim_stats/internal/handlers/telegram"
	twitchHandler "twitch_vatsim_stats/internal/handlers/twitch"

	nonceService "twitch_vatsim_stats/internal/service/nonce"
	statsService "twitch_vatsim_stats/internal/service/stats"
	telegramService "twitch_vatsim_stats/internal/service/telegram"
	teleUpdatesCheckService "twitch_vatsim_stats/internal/service/telegram_updates_check"
	twitchTokenService "twitch_vatsim_stats/internal/service/twitch_token"

	dbRepository "twitch_vatsim_stats/db/repository"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	_ "github.com/lib/pq"
)

const (
	shutdownTimeout   = 10 * time.Second
	telegramPollSlack = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("cannot load config: %v", err)
	}

	err = logger.Setup(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.IsProd(),
		File:  cfg.LogFile,
	})
	if err != nil {
		logrus.Fatalf("cannot set up logger: %v", err)
	}

	settingsStore, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("cannot init settings store: %v", err)
	}
	defer closeStore()

	if !cfg.Operator.IsEmpty() {
		if _, err = store.ApplyOperatorSettings(ctx, settingsStore, cfg.Operator); err != nil {
			logrus.Fatalf("cannot apply operator settings: %v", err)
		}
		logrus.Info("operator settings applied from environment")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var (
		twitchOauthClient = twitchOauthClient.NewTwitchOauthClient(httpClient, cfg.TwitchIDURL, cfg.RedirectURL)
		twitchClient      = twitchClient.NewTwitchClient(httpClient, cfg.TwitchAPIURL)
		vatsimClient      = vatsimClient.NewVatsimClient(httpClient, cfg.VatsimAPIURL)
	)

	nonces, err := nonceService.NewNonceService(cfg.NonceSecret, nonceService.DefaultLifetime)
	if err != nil {
		logrus.Fatalf("cannot init nonceService: %v", err)
	}

	tts := twitchTokenService.NewTwitchTokenService(settingsStore, twitchOauthClient, twitchClient, nonces)
	ss := statsService.NewStatsService(settingsStore, tts, twitchClient, vatsimClient)

	twitchHandler := twitchHandler.NewTwitchHandler(tts, cfg.SettingsURL)
	statsHandler := statsHandler.NewStatsHandler(ss)

	adminRouter, publicRouter := mux.NewRouter(), mux.NewRouter()

	adminRouter.HandleFunc("/oauth/callback", twitchHandler.OAuthCallback).Methods("GET")
	adminRouter.HandleFunc("/oauth/disconnect", twitchHandler.Disconnect).Methods("POST")
	adminRouter.HandleFunc("/settings/connection", twitchHandler.GetConnection).Methods("GET")
	adminRouter.Handle("/metrics", promhttp.Handler()).Methods("GET")

	publicRouter.HandleFunc("/stats", statsHandler.GetStats).Methods("GET", "OPTIONS")

	g, gctx := errgroup.WithContext(ctx)

	if cfg.TelegramAPIToken != "" {
		// long polling holds the request open for the poll timeout
		telegaClient, err := telegramClient.NewTelegramClient(cfg.TelegramAPIToken, "", &http.Client{
			Timeout: cfg.HTTPTimeout + 60*time.Second + telegramPollSlack,
		})
		if err != nil {
			logrus.Fatalf("cannot init telegramClient: %v", err)
		}

		telegaService := telegramService.NewService(telegaClient)
		if err = telegaService.RegisterCommands(ctx, teleUpdatesCheckService.BotCommands); err != nil {
			logrus.Warnf("cannot register telegram commands: %v", err)
		}

		telegaHandler := telegramHandler.NewTelegramHandler(telegaService)
		adminRouter.HandleFunc("/telegram/commands", telegaHandler.GetBotData).Methods("GET")

		tucs := teleUpdatesCheckService.NewTelegramUpdatesCheckService(telegaClient, ss)
		g.Go(func() error {
			tucs.SyncBg(gctx)
			return nil
		})
	}

	adminSrv := &http.Server{
		Handler:      middleware.LogRequests(adminRouter),
		Addr:         cfg.AdminAddr,
		WriteTimeout: cfg.WriteTimeout(),
		ReadTimeout:  5 * time.Second,
	}

	// every render waits for upstreams, so the write timeout follows the client timeout
	publicSrv := &http.Server{
		Handler:      middleware.LogRequests(middleware.ConfigureCORS(publicRouter, cfg.CORSAllowedOrigins)),
		Addr:         cfg.PublicAddr,
		WriteTimeout: cfg.WriteTimeout(),
		ReadTimeout:  5 * time.Second,
	}

	logrus.Infof("server start... admin on %s, public on %s", cfg.AdminAddr, cfg.PublicAddr)

	g.Go(func() error {
		return serve(adminSrv, cfg)
	})
	g.Go(func() error {
		return serve(publicSrv, cfg)
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logrus.Info("server shutdown...")
		_ = adminSrv.Shutdown(shutdownCtx)
		_ = publicSrv.Shutdown(shutdownCtx)
		return nil
	})

	if err = g.Wait(); err != nil {
		logrus.Errorf("server stopped: %v", err)
		closeStore()
		os.Exit(1)
	}
}

func serve(srv *http.Server, cfg config.Config) (err error) {
	if cfg.IsProd() {
		err = srv.ListenAndServeTLS(cfg.CrtDir, cfg.TLSKeyDir)
	} else {
		err = srv.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return errors.Wrapf(err, "serve %s", srv.Addr)
}

// newStore picks Postgres, then Redis, then the settings file.
func newStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch {
	case cfg.DBConn != "":
		db, err := sqlx.Connect("postgres", cfg.DBConn)
		if err != nil {
			return nil, nil, errors.Wrap(err, "cannot connect to db")
		}

		if err = db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, errors.Wrap(err, "cannot ping db")
		}

		logrus.Info("settings stored in postgres")

		return dbRepository.NewDBRepository(db), func() { _ = db.Close() }, nil

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrap(err, "cannot ping redis")
		}

		logrus.Infof("settings stored in redis under %s", store.DefaultRedisKey)

		return store.NewRedisStore(client, store.DefaultRedisKey), func() { _ = client.Close() }, nil

	default:
		logrus.Infof("settings stored in %s", cfg.SettingsPath)

		return store.NewFileStore(cfg.SettingsPath), func() {}, nil
	}
}
