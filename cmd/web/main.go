package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantamisecode-hub/groona-insights/pkg/server"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/backend"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/config"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/currency"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/insights"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/repository"
	"github.com/quantamisecode-hub/groona-insights/pkg/store/duckdb"
	reportstore "github.com/quantamisecode-hub/groona-insights/pkg/store/duckdb/report"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Groona Insights web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "insights.yaml",
		"Path to the configuration profile")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Token:   cfg.BackendToken,
	})
	converter := currency.NewConverter(client)
	source := repository.NewCache(client, cfg.CacheTTL)
	engine := insights.NewEngine(converter)

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("failed to open report database: %w", err)
	}
	reports, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Str("backend", cfg.BackendURL).Msg("backend configured")

	// Warm the rate table for the tenant's common pairs; misses degrade
	// to unconverted amounts later, so failures here are not fatal.
	converter.Prime(ctx, [][2]string{
		{"EUR", "USD"}, {"GBP", "USD"}, {"USD", "EUR"}, {"USD", "GBP"},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Source:   source,
			Engine:   engine,
			Insights: client,
			Reports:  reports,
		},
	})

	return api.Start()
}
