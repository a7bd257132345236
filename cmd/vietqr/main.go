package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/base48/vietqr-portal/internal/config"
	"github.com/base48/vietqr-portal/internal/logger"
	"github.com/base48/vietqr-portal/internal/qrpay"
)

var (
	logLevel string

	cfg *config.Config
	log *slog.Logger
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vietqr",
		Short: "Generate and read VietQR bank transfer codes",
		Long: `vietqr builds NAPAS VietQR payloads for interbank transfers, renders them
as PNG images and reads the transfer details back from scanned codes.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")

	rootCmd.AddCommand(
		newGenerateCommand(),
		newDecodeCommand(),
		newInspectCommand(),
		newBanksCommand(),
	)

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	// Load .env file if exists
	godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log = logger.Init(level, cfg.LogFormat)
	return nil
}

func newService() (*qrpay.Service, error) {
	renderer, err := qrpay.NewRenderer(qrpay.RendererOptions{
		LogoPath:       cfg.LogoPath,
		FontPath:       cfg.FontPath,
		BackgroundPath: cfg.BackgroundPath,
		Size:           cfg.QRSize,
	})
	if err != nil {
		return nil, err
	}
	return qrpay.NewService(cfg.DefaultBankBIN, renderer, log), nil
}
