package formater

import (
	"fmt"
	"strings"
	"time"

	"twitch_vatsim_stats/internal/models"
)

// StatsCaption renders a widget result as a plain text message.
func StatsCaption(result models.RenderResult, now time.Time) string {

	if result.Status != models.RenderOK || result.Stats == nil {
		return result.Message
	}

	stats := result.Stats

	var builder strings.Builder

	if stats.IsLive {
		builder.WriteString("🔴 Live now")
		if stats.Stream != nil {
			builder.WriteString(fmt.Sprintf(": %s", ClearTags(stats.Stream.Title)))
			builder.WriteString(fmt.Sprintf("\nViewers: %d", stats.Stream.ViewerCount))
			if !stats.Stream.StartedAt.IsZero() {
				builder.WriteString(fmt.Sprintf("\nUptime: %s", CreateStreamDuration(stats.Stream.StartedAt, now)))
			}
		}
	} else {
		builder.WriteString("Offline")
	}

	builder.WriteString(fmt.Sprintf("\nFollowers: %d", stats.FollowerCount))
	builder.WriteString(fmt.Sprintf("\nSubscribers: %d", stats.SubscriberCount))
	builder.WriteString(fmt.Sprintf("\nPilot hours: %s", FormatHours(stats.PilotHours)))
	builder.WriteString(fmt.Sprintf("\nController hours: %s", FormatHours(stats.ControllerHours)))

	if len(result.Degraded) > 0 {
		names := make([]string, 0, len(result.Degraded))
		for _, metric := range result.Degraded {
			names = append(names, string(metric))
		}
		builder.WriteString(fmt.Sprintf("\nUnavailable right now: %s", strings.Join(names, ", ")))
	}

	return builder.String()
}
