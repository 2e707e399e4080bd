package stats_service

import (
	"context"

	twitch_client "twitch_vatsim_stats/internal/client/twitch-client"
	"twitch_vatsim_stats/internal/metrics"
	"twitch_vatsim_stats/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RenderStats collects everything the widget shows. Upstream failures degrade to zero
// values and are listed in Degraded; only a settings read failure is returned.
func (ss *StatsService) RenderStats(ctx context.Context) (result models.RenderResult, err error) {

	settings, err := ss.store.Get(ctx)
	if err != nil {
		return result, errors.Wrap(err, "store.Get")
	}

	defer func() {
		if err != nil {
			return
		}
		metrics.ObserveRender(string(result.Status))
		if renderErr := result.Err(); renderErr != nil {
			logrus.Infof("stats not rendered: %v", renderErr)
		}
	}()

	if !settings.HasCredentials() {
		result.Status = models.RenderConfigurationMissing
		result.Message = models.ConfigurationMissingMessage
		return
	}

	if !settings.IsConnected() {
		result.Status = models.RenderNotConnected
		result.Message = models.NotConnectedMessage
		return
	}

	fresh, outcome, refreshErr := ss.twitchTokenService.EnsureFreshToken(ctx)
	if refreshErr != nil {
		logrus.Warnf("rendering with stored token, refresh %s: %v", outcome, refreshErr)
	}
	if fresh.IsConnected() {
		settings = fresh
	}

	creds := models.HelixCredentials{
		ClientID:    settings.ClientID,
		AccessToken: settings.AccessToken,
	}

	var (
		followers     int64
		subscribers   int64
		live          twitch_client.StreamStatus
		hours         models.VatsimHours
		followersResp models.APIResponse
		subsResp      models.APIResponse
		liveResp      models.APIResponse
		followersErr  error
		subsErr       error
		liveErr       error
	)

	var g errgroup.Group

	g.Go(func() error {
		followers, followersResp, followersErr = ss.twitchClient.GetFollowerCount(ctx, creds, settings.UserID)
		return nil
	})
	g.Go(func() error {
		subscribers, subsResp, subsErr = ss.twitchClient.GetSubscriberCount(ctx, creds, settings.UserID)
		return nil
	})
	g.Go(func() error {
		live, liveResp, liveErr = ss.twitchClient.GetStreamStatus(ctx, creds, settings.UserID)
		return nil
	})
	g.Go(func() error {
		hours = ss.vatsimClient.FetchHours(ctx, settings.VatsimCID)
		return nil
	})

	// goroutines above never fail
	_ = g.Wait()

	result.Status = models.RenderOK
	result.Stats = &models.Stats{
		FollowerCount:   followers,
		IsLive:          live.IsLive,
		SubscriberCount: subscribers,
		PilotHours:      hours.Pilot + float64(settings.FallbackPilotHours),
		ControllerHours: hours.Controller + float64(settings.FallbackControllerHours),
		Stream:          live.Stream,
	}

	if degraded(models.MetricFollowers, followersResp, followersErr) {
		result.Degraded = append(result.Degraded, models.MetricFollowers)
	}
	if degraded(models.MetricSubscribers, subsResp, subsErr) {
		result.Degraded = append(result.Degraded, models.MetricSubscribers)
	}
	if degraded(models.MetricLive, liveResp, liveErr) {
		result.Degraded = append(result.Degraded, models.MetricLive)
	}
	if hours.Failed {
		logrus.Warn(errors.Wrapf(models.ErrUpstreamUnavailable, "%s for cid %d", models.MetricVatsim, settings.VatsimCID))
		result.Degraded = append(result.Degraded, models.MetricVatsim)
	}

	if settings.Debug {
		result.Debug = &models.DebugPayload{
			FollowersResp: followersResp,
			SubsResp:      subsResp,
			LiveResp:      liveResp,
			VatsimCID:     settings.VatsimCID,
			VatsimRaw:     hours.Raw,
		}
	}

	return
}

func degraded(metric models.Metric, resp models.APIResponse, err error) bool {
	switch {
	case err != nil:
		logrus.Warn(errors.Wrapf(models.ErrUpstreamUnavailable, "%s: %v", metric, err))
		return true
	case !resp.OK():
		logrus.Warn(errors.Wrapf(models.ErrUpstreamUnavailable, "%s: status code %d", metric, resp.StatusCode))
		return true
	}
	return false
}
