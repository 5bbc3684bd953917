package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arvandy/storefront/internal/config"
	"github.com/arvandy/storefront/internal/constants"
	"github.com/arvandy/storefront/internal/log"
)

func Start() {
	// Config decides where the log file lives, so it is loaded with a plain
	// stdout logger before the real one exists.
	bootstrap := zerolog.New(os.Stdout).With().Timestamp().Logger()

	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	c = bootstrap.WithContext(c)

	cfg := config.InitConfig(c, constants.AppName)

	logger := log.InitLogger(cfg.Application.LogPath, cfg.Application.Env).
		With().
		Str(log.KeyAppName, constants.AppName).
		Str(log.KeyTag, "main Start").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	rootCmd := &cobra.Command{Use: constants.AppName}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "server",
		Short: "Run the storefront api server",
		Run: func(cmd *cobra.Command, args []string) {
			RunApiServer(cmd.Context())
		},
	})
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
