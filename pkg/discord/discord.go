// Package discord wraps the small slice of the Discord REST API this service
// needs: direct messages to players. No gateway connection is opened.
package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Notifier sends direct messages to Discord users.
type Notifier interface {
	SendDM(discordID uint64, embed *discordgo.MessageEmbed) error
}

type client struct {
	session *discordgo.Session
}

// NewClient creates a REST-only Discord client. Returns nil if no token is
// configured; callers treat a nil Notifier as "DMs disabled".
func NewClient(botToken string) (Notifier, error) {
	if botToken == "" {
		return nil, nil
	}
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, err
	}
	return &client{session: s}, nil
}

func (c *client) SendDM(discordID uint64, embed *discordgo.MessageEmbed) error {
	ch, err := c.session.UserChannelCreate(strconv.FormatUint(discordID, 10))
	if err != nil {
		return err
	}
	_, err = c.session.ChannelMessageSendEmbed(ch.ID, embed)
	return err
}
