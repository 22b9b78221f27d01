// Package discord is the chat front-end: slash commands, trade components
// and channel notifications, all backed by the GardenBot HTTP API.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	Registry *CommandRegistry

	events   *SSEClient
	notifier *SSENotifier
}

// Config holds the bot configuration
type Config struct {
	Token  string
	AppID  string
	APIURL string
	APIKey string
	// NotificationChannelID receives wilting, death and trade notices; empty disables them
	NotificationChannelID string
}

// New creates a new Discord bot
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	b := &Bot{
		Session:  s,
		Client:   NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:    cfg.AppID,
		Registry: NewCommandRegistry(),
	}

	if cfg.NotificationChannelID != "" {
		b.events = NewSSEClient(b.Client.BaseURL, cfg.APIKey)
		b.notifier = NewSSENotifier(s, cfg.NotificationChannelID)
		b.notifier.RegisterHandlers(b.events)
	}

	return b, nil
}

// Start opens the gateway connection and the notification stream
func (b *Bot) Start(ctx context.Context) error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if b.events != nil {
		b.events.Start(ctx)
	}

	slog.Info("Discord bot is now running")
	return nil
}

// Stop closes the notification stream and the gateway connection
func (b *Bot) Stop() {
	if b.events != nil {
		b.events.Stop()
	}
	if err := b.Session.Close(); err != nil {
		slog.Error("Failed to close Discord session", "error", err)
	}
}

// Run runs the bot until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(ctx); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Client)
	}
}
