package commands

import (
	"fmt"

	"github.com/quantamisecode-hub/groona-insights/pkg/services/backend"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/config"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/currency"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/insights"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/repository"
)

// App bundles the services a command needs, built once from a profile.
type App struct {
	Config  *config.Config
	Source  repository.Source
	Engine  *insights.Engine
	Backend *backend.Client
}

// BuildApp wires the backend client, the read-through cache and the
// aggregation engine from a config profile.
func BuildApp(profilePath string) (*App, error) {
	cfg, err := config.Load(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Token:   cfg.BackendToken,
	})
	converter := currency.NewConverter(client)

	return &App{
		Config:  cfg,
		Source:  repository.NewCache(client, cfg.CacheTTL),
		Engine:  insights.NewEngine(converter),
		Backend: client,
	}, nil
}
