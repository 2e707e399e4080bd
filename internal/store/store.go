// Package store persists the widget settings record.
package store

import (
	"context"

	"twitch_vatsim_stats/internal/models"
)

// Store is the settings persistence surface. Update is an atomic read-modify-write:
// when apply returns an error nothing is written and that error is returned.
type Store interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, apply func(*models.Settings) error) (models.Settings, error)
}

// ApplyOperatorSettings writes configuration edits, leaving the connection untouched.
func ApplyOperatorSettings(ctx context.Context, st Store, edits models.OperatorSettings) (models.Settings, error) {
	return st.Update(ctx, func(s *models.Settings) error {
		edits.Apply(s)
		return nil
	})
}

func normalize(s *models.Settings) {
	if s.Scopes == nil {
		s.Scopes = []string{}
	}
}
