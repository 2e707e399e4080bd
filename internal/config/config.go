// Package config reads the service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"twitch_vatsim_stats/internal/models"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	LocalENV = "local"
	ProdENV  = "prod"

	defaultPublicAddr   = ":8080"
	defaultAdminAddr    = "127.0.0.1:8081"
	defaultRedirectURL  = "http://localhost:8081/oauth/callback"
	defaultSettingsURL  = "/settings/connection"
	defaultSettingsPath = "settings.json"
	defaultHTTPTimeout  = 20 * time.Second
	writeTimeoutSlack   = 10 * time.Second
	minNonceSecretLen   = 16
)

type Config struct {
	Env string

	PublicAddr  string
	AdminAddr   string
	RedirectURL string
	SettingsURL string

	DBConn       string
	RedisAddr    string
	SettingsPath string

	NonceSecret string
	HTTPTimeout time.Duration

	TwitchAPIURL string
	TwitchIDURL  string
	VatsimAPIURL string

	CORSAllowedOrigins []string

	LogLevel string
	LogFile  string

	TelegramAPIToken string

	CrtDir    string
	TLSKeyDir string

	// Operator holds the settings seeds found in the environment.
	Operator models.OperatorSettings
}

func (c Config) IsProd() bool {
	return c.Env == ProdENV
}

// WriteTimeout bounds a handler that makes two upstream round trips one after
// the other, a token call followed by either the Helix fan-out or the identity lookup.
func (c Config) WriteTimeout() time.Duration {
	return 2*c.HTTPTimeout + writeTimeoutSlack
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	return parse(os.LookupEnv)
}

func parse(lookup func(string) (string, bool)) (cfg Config, err error) {

	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg.Env = get("CURRENT_ENV", LocalENV)
	if cfg.Env != LocalENV && cfg.Env != ProdENV {
		return cfg, errors.Errorf("unknown env: %s", cfg.Env)
	}

	cfg.PublicAddr = get("PUBLIC_ADDR", defaultPublicAddr)
	cfg.AdminAddr = get("ADMIN_ADDR", defaultAdminAddr)
	cfg.RedirectURL = get("REDIRECT_URL", defaultRedirectURL)
	cfg.SettingsURL = get("SETTINGS_URL", defaultSettingsURL)

	cfg.DBConn = get("DB_CONN", "")
	cfg.RedisAddr = get("REDIS_ADDR", "")
	cfg.SettingsPath = get("SETTINGS_PATH", defaultSettingsPath)

	cfg.NonceSecret = get("NONCE_SECRET", "")
	if len(cfg.NonceSecret) < minNonceSecretLen {
		return cfg, errors.Errorf("NONCE_SECRET must be at least %d characters", minNonceSecretLen)
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if raw := get("HTTP_TIMEOUT", ""); raw != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw)
		if err != nil || cfg.HTTPTimeout <= 0 {
			return cfg, errors.Errorf("invalid HTTP_TIMEOUT %q", raw)
		}
	}

	cfg.TwitchAPIURL = get("TWITCH_API_URL", "")
	cfg.TwitchIDURL = get("TWITCH_ID_URL", "")
	cfg.VatsimAPIURL = get("VATSIM_API_URL", "")

	cfg.CORSAllowedOrigins = splitList(get("CORS_ALLOWED_ORIGINS", ""))

	cfg.LogLevel = get("LOG_LEVEL", "info")
	cfg.LogFile = get("LOG_FILE", "")

	cfg.TelegramAPIToken = get("TELEGRAM_API_TOKEN", "")

	cfg.CrtDir = get("CRT_DIR", "")
	cfg.TLSKeyDir = get("TLS_KEY_DIR", "")
	if cfg.IsProd() && (cfg.CrtDir == "" || cfg.TLSKeyDir == "") {
		return cfg, errors.New("CRT_DIR and TLS_KEY_DIR are required in prod")
	}

	cfg.Operator, err = parseOperator(lookup)
	if err != nil {
		return cfg, errors.Wrap(err, "parseOperator")
	}

	return cfg, nil
}

// parseOperator only sets the seeds that are present, so unset variables never
// overwrite what the operator stored earlier.
func parseOperator(lookup func(string) (string, bool)) (op models.OperatorSettings, err error) {

	str := func(key string) *string {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		v = strings.TrimSpace(v)
		return &v
	}

	num := func(key string) (*int64, error) {
		v := str(key)
		if v == nil {
			return nil, nil
		}
		if *v == "" {
			var zero int64
			return &zero, nil
		}
		n, err := strconv.ParseInt(*v, 10, 64)
		if err != nil || n < 0 {
			return nil, errors.Errorf("%s must be a non-negative integer, got %q", key, *v)
		}
		return &n, nil
	}

	op.ClientID = str("TWITCH_CLIENT_ID")
	op.ClientSecret = str("TWITCH_SECRET")
	op.Username = str("TWITCH_USERNAME")

	if op.VatsimCID, err = num("VATSIM_CID"); err != nil {
		return
	}
	if op.FallbackPilotHours, err = num("FALLBACK_PILOT_HOURS"); err != nil {
		return
	}
	if op.FallbackControllerHours, err = num("FALLBACK_CONTROLLER_HOURS"); err != nil {
		return
	}

	if v := str("TVS_DEBUG"); v != nil {
		debug := false
		if *v != "" {
			debug, err = strconv.ParseBool(*v)
			if err != nil {
				return op, errors.Errorf("TVS_DEBUG must be a boolean, got %q", *v)
			}
		}
		op.Debug = &debug
	}

	return
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
