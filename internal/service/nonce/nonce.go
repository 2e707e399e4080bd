// Package nonce mints and checks short-lived anti-forgery tokens bound to one action.
package nonce

import (
	"time"

	"twitch_vatsim_stats/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	DefaultLifetime = 12 * time.Hour

	ActionDisconnect = "tvs_disconnect"
)

type claims struct {
	Action string `json:"action"`
	jwt.RegisteredClaims
}

type NonceService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewNonceService(secret string, lifetime time.Duration) (*NonceService, error) {
	if len(secret) < 16 {
		return nil, errors.New("nonce secret must be at least 16 characters")
	}
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &NonceService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

func (ns *NonceService) Mint(action string) (string, error) {
	issued := ns.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ns.lifetime)),
		},
	})

	signed, err := token.SignedString(ns.secret)
	if err != nil {
		return "", errors.Wrap(err, "SignedString")
	}

	return signed, nil
}

// Verify returns models.ErrInvalidRequest for anything but a live token minted for action.
func (ns *NonceService) Verify(token, action string) error {
	if token == "" {
		return errors.Wrap(models.ErrInvalidRequest, "empty nonce")
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (interface{}, error) {
		return ns.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ns.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return errors.Wrapf(models.ErrInvalidRequest, "nonce: %v", err)
	}

	if parsed.Action != action {
		return errors.Wrapf(models.ErrInvalidRequest, "nonce issued for %q", parsed.Action)
	}

	return nil
}
