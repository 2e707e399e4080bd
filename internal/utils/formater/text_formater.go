package formater

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"twitch_vatsim_stats/internal/models"
)

var tagRe = regexp.MustCompile(`@[^\s.,!?]+`)

// clear all @ symbols in tag subtrings because telegram can interpret it wrong
func ClearTags(text string) string {
	matches := tagRe.FindAllString(text, -1)
	for _, match := range matches {
		text = strings.ReplaceAll(text, match, match[1:])
	}

	return text
}

func TwitchChannelLink(login string) string {
	return fmt.Sprintf("%s/%s", models.TwitchWWWSchemeHost, strings.ToLower(login))
}

// FormatHours prints hour totals without trailing zeros: 150, 12.5.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
