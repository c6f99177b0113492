package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/feature-poll/cliparse"
	"github.com/danielhkuo/feature-poll/db"
	"github.com/danielhkuo/feature-poll/discord"
	"github.com/danielhkuo/feature-poll/handlers"
	"github.com/danielhkuo/feature-poll/pollcache"
	"github.com/danielhkuo/feature-poll/scheduler"
)

func main() {
	// .env is optional; real deployments use the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	store := db.NewStore(dbConn)

	// Hydrate the poll cache from storage
	cache, err := pollcache.Load(store)
	if err != nil {
		slog.Error("poll cache load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Poll cache loaded", "polls", cache.Len())

	// Wire up Discord
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("discord session creation failed", "error", err)
		os.Exit(1)
	}

	sink := discord.NewNotifier(session, cfg)
	handler := handlers.New(store, cache, sink, cfg)
	bot := discord.NewBot(session, handler, cfg)

	if err := bot.Start(); err != nil {
		slog.Error("bot startup failed", "error", err)
		os.Exit(1)
	}
	defer bot.Close()

	// Run the announcement loop until shutdown
	ctx, stop := context.WithCancel(context.Background())
	go scheduler.New(handler, cfg).Run(ctx)

	slog.Info("Bot running", "guild", cfg.GuildID)

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	<-ctrlc

	stop()
	slog.Info("Shutting down")
}
