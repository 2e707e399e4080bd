package models

const TwitchWWWSchemeHost = "https://www.twitch.tv"

type TeleBotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type TeleBotCommands struct {
	Commands []TeleBotCommand `json:"commands"`
}
