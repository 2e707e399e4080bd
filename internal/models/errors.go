package models

import "github.com/pkg/errors"

type GetUserUnauthorized struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

var (
	ErrConfigurationMissing     = errors.New("twitch client id or secret is not configured")
	ErrNotConnected             = errors.New("twitch account is not connected")
	ErrAuthExchangeFailed       = errors.New("oauth token exchange failed")
	ErrIdentityResolutionFailed = errors.New("could not resolve user from token")
	ErrRefreshFailed            = errors.New("oauth token refresh failed")
	ErrUpstreamUnavailable      = errors.New("upstream unavailable")
	ErrInvalidRequest           = errors.New("invalid request")
)
