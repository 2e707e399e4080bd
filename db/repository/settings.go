package repository

import (
	"context"
	"database/sql"

	"twitch_vatsim_stats/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const settingsRowID = 1

type settingsRow struct {
	ClientID                string         `db:"client_id"`
	ClientSecret            string         `db:"client_secret"`
	Username                string         `db:"username"`
	VatsimCID               int64          `db:"vatsim_cid"`
	FallbackPilotHours      int64          `db:"fallback_pilot_hours"`
	FallbackControllerHours int64          `db:"fallback_controller_hours"`
	Debug                   bool           `db:"debug"`
	AccessToken             string         `db:"access_token"`
	RefreshToken            string         `db:"refresh_token"`
	TokenExpiresAt          int64          `db:"token_expires_at"`
	UserID                  string         `db:"user_id"`
	Login                   string         `db:"login"`
	DisplayName             string         `db:"display_name"`
	Scopes                  pq.StringArray `db:"scopes"`
}

func (r settingsRow) toModel() models.Settings {
	scopes := []string(r.Scopes)
	if scopes == nil {
		scopes = []string{}
	}

	return models.Settings{
		ClientID:                r.ClientID,
		ClientSecret:            r.ClientSecret,
		Username:                r.Username,
		VatsimCID:               r.VatsimCID,
		FallbackPilotHours:      r.FallbackPilotHours,
		FallbackControllerHours: r.FallbackControllerHours,
		Debug:                   r.Debug,
		AccessToken:             r.AccessToken,
		RefreshToken:            r.RefreshToken,
		TokenExpiresAt:          r.TokenExpiresAt,
		UserID:                  r.UserID,
		Login:                   r.Login,
		DisplayName:             r.DisplayName,
		Scopes:                  scopes,
	}
}

const selectSettingsQuery = `
		select 
			client_id,
			client_secret,
			username,
			vatsim_cid,
			fallback_pilot_hours,
			fallback_controller_hours,
			debug,
			access_token,
			refresh_token,
			token_expires_at,
			user_id,
			login,
			display_name,
			scopes
		from tvs_settings ts
		where ts.id = $1`

func (dbr *DBRepository) Get(ctx context.Context) (models.Settings, error) {

	var row settingsRow

	err := dbr.db.GetContext(ctx, &row, selectSettingsQuery+";", settingsRowID)
	if err == sql.ErrNoRows {
		return settingsRow{}.toModel(), nil
	}
	if err != nil {
		return models.Settings{}, errors.Wrap(err, "GetContext")
	}

	return row.toModel(), nil
}

// Update locks the settings row for the duration of apply, so concurrent writers
// from other processes are serialized.
func (dbr *DBRepository) Update(ctx context.Context, apply func(*models.Settings) error) (models.Settings, error) {

	tx, err := dbr.BeginTransaction(ctx)
	if err != nil {
		return models.Settings{}, errors.Wrap(err, "BeginTransaction")
	}

	defer tx.Rollback()

	var row settingsRow

	err = tx.GetContext(ctx, &row, selectSettingsQuery+"\n\t\tfor update;", settingsRowID)
	if err != nil && err != sql.ErrNoRows {
		return models.Settings{}, errors.Wrap(err, "GetContext")
	}

	settings := row.toModel()
	if err = apply(&settings); err != nil {
		return models.Settings{}, err
	}
	if settings.Scopes == nil {
		settings.Scopes = []string{}
	}

	if err = dbr.upsertSettings(ctx, tx, settings); err != nil {
		return models.Settings{}, errors.Wrap(err, "upsertSettings")
	}

	if err = tx.Commit(); err != nil {
		return models.Settings{}, errors.Wrap(err, "Commit")
	}

	return settings, nil
}

func (dbr *DBRepository) upsertSettings(ctx context.Context, tx *sqlx.Tx, s models.Settings) (err error) {

	query := `
		insert into tvs_settings (
			id,
			client_id,
			client_secret,
			username,
			vatsim_cid,
			fallback_pilot_hours,
			fallback_controller_hours,
			debug,
			access_token,
			refresh_token,
			token_expires_at,
			user_id,
			login,
			display_name,
			scopes
		) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		on conflict (id) do update
			set (
				client_id,
				client_secret,
				username,
				vatsim_cid,
				fallback_pilot_hours,
				fallback_controller_hours,
				debug,
				access_token,
				refresh_token,
				token_expires_at,
				user_id,
				login,
				display_name,
				scopes,
				updated_at
			) = ($2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now());
	`

	res, err := tx.ExecContext(ctx, query,
		settingsRowID,
		s.ClientID,
		s.ClientSecret,
		s.Username,
		s.VatsimCID,
		s.FallbackPilotHours,
		s.FallbackControllerHours,
		s.Debug,
		s.AccessToken,
		s.RefreshToken,
		s.TokenExpiresAt,
		s.UserID,
		s.Login,
		s.DisplayName,
		pq.StringArray(s.Scopes),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n < 1 {
		return errors.New("no rows upserted")
	}

	return
}
