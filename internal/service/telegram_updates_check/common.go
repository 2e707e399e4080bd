package telegram_updates_check

import (
	"fmt"
	"strings"
)

const (
	greetingMessage   = "Greetings! The bot shows the Twitch and VATSIM stats of this channel"
	commandListHeader = "Bot's command list:"
	commandFormat     = "%s - %s"
	somethingWrong    = "Oops, something went wrong. Please try again later"
	napMessage        = "Sorry, I took a short nap. I'm awake now, please send the command again"
	watchButtonText   = "Watch on Twitch"
)

// buildCommandListResponse builds the command list response message
func buildCommandListResponse(prefix string, includePrefix bool) string {
	var builder strings.Builder

	if includePrefix && prefix != "" {
		builder.WriteString(prefix)
		builder.WriteString("\n")
	}

	builder.WriteString(commandListHeader)

	for _, teleCommand := range BotCommands {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf(commandFormat, teleCommand.Command, teleCommand.Description))
	}

	return builder.String()
}
