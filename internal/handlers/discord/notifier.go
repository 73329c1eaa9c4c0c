package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sideline/internal/services/match"
	"github.com/bwmarrin/discordgo"
)

// embedSender is the part of discordgo.Session the notifier uses
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config holds the configuration for the notifier
type Config struct {
	// Discord bot token
	Token string

	// Channel that match updates are posted to
	ChannelID string
}

// Notifier posts committed match operations to a Discord channel
type Notifier struct {
	session   *discordgo.Session
	sender    embedSender
	channelID string
}

// New creates a Discord notifier
func New(cfg *Config) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Notifier{
		session:   session,
		sender:    session,
		channelID: cfg.ChannelID,
	}, nil
}

// Start opens the Discord connection
func (n *Notifier) Start() error {
	if err := n.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

// Stop closes the Discord connection
func (n *Notifier) Stop() error {
	return n.session.Close()
}

// Notify implements match.Notifier
func (n *Notifier) Notify(ctx context.Context, note *match.Notification) error {
	if note == nil {
		return errors.New("notification cannot be nil")
	}

	_, err := n.sender.ChannelMessageSendEmbed(n.channelID, renderNotification(note), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send match update for %s: %w", note.MatchID, err)
	}
	return nil
}
