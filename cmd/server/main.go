package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/mail"
	"wedding-rsvp/internal/server"
	"wedding-rsvp/internal/store"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load .env file (ignore error if the file doesn't exist)
	if err := godotenv.Overload(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel).Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	// Initialize the household store
	st, err := store.NewPostgres(context.Background(), cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Run migrations
	if err := st.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Confirmation mailer
	notifier := mail.NewSMTPNotifier(
		cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.MailFrom, cfg.OperatorEmail, log,
	)

	// Create and start the server
	srv := server.New(cfg, st, notifier, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("starting server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
