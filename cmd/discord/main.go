package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/osse101/GardenBot_Go/internal/config"
	"github.com/osse101/GardenBot_Go/internal/discord"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// Default values for optional configuration
const (
	DefaultHealthPort  = "8082"
	DefaultAPIURL      = "http://localhost:8080"
	discordServiceName = logger.DefaultServiceName + "-discord"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	// Load .env file
	_ = godotenv.Load()

	setupLogger()

	if err := config.ValidateDiscordEnv(); err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(loadConfig())
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	healthPort := os.Getenv("DISCORD_HEALTH_PORT")
	if healthPort == "" {
		healthPort = DefaultHealthPort
	}
	httpServer := discord.NewHTTPServer(healthPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	for _, factory := range getCommandFactories() {
		bot.Registry.Register(factory())
	}
	discord.RegisterTradeComponents(bot.Registry)

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Discord bot stopped")
}

// setupLogger installs the same structured logger the API server uses
func setupLogger() {
	cfg := logger.DefaultConfig()
	cfg.ServiceName = discordServiceName
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	slog.SetDefault(logger.New(cfg, os.Stdout))
}

// loadConfig reads the bot configuration; required variables are checked by
// config.ValidateDiscordEnv
func loadConfig() discord.Config {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	notificationChannelID := os.Getenv("DISCORD_NOTIFICATION_CHANNEL_ID")
	if notificationChannelID != "" {
		slog.Info("SSE notifications enabled", "channel_id", notificationChannelID)
	}

	return discord.Config{
		Token:                 os.Getenv("DISCORD_TOKEN"),
		AppID:                 os.Getenv("DISCORD_APP_ID"),
		APIURL:                apiURL,
		APIKey:                os.Getenv("API_KEY"),
		NotificationChannelID: notificationChannelID,
	}
}

// getCommandFactories returns every slash command the bot serves
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		// Garden
		discord.WaterCommand,
		discord.PlantsCommand,
		discord.PlantCommand,
		discord.RenameCommand,
		discord.DeleteCommand,
		discord.ImmortalizeCommand,
		discord.ReviveCommand,
		discord.GiveCommand,
		discord.HerbiaryCommand,

		// Shop
		discord.ShopCommand,
		discord.BuyPlantCommand,
		discord.BuyItemCommand,
		discord.BuyPotCommand,
		discord.RefreshShopCommand,

		// Social
		discord.TradeCommand,
		discord.KeysCommand,
	}
}
