package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/config"
	"github.com/guttosm/quotepulse/internal/api"
	"github.com/guttosm/quotepulse/internal/cache"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/marketdata"
	"github.com/guttosm/quotepulse/internal/refresh"
	"github.com/guttosm/quotepulse/internal/service"
)

// cachePurgeSpec is how often expired snapshots are swept from the cache.
const cachePurgeSpec = "@every 5m"

// App is the wired service.
type App struct {
	Router  *gin.Engine     // HTTP routes, health probes included
	Driver  *refresh.Driver // must be Run for the live dashboard to update
	Cleanup func()          // releases the journal; call after Driver.Run returns
}

// InitializeApp sets up all application dependencies from config.AppConfig.
//
// Responsibilities:
//   - Opens the fetch journal selected by JOURNAL_DRIVER (PostgreSQL, SQLite or none).
//   - Builds the Yahoo market data client, snapshot cache and quote aggregator.
//   - Creates the refresh driver for the configured initial selection and
//     schedules cache housekeeping on it.
//   - Configures the Gin router and registers health and readiness probes.
//
// Returns:
//   - *App: router, driver and cleanup.
//   - error: any initialization error; resources opened so far are released.
func InitializeApp() (*App, error) {
	cfg := config.AppConfig

	period, err := models.ParsePeriod(cfg.Refresh.Period)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_PERIOD: %w", err)
	}

	journal, checks, err := openJournal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	client := marketdata.NewYahooClient(cfg.Quote.BaseURL, cfg.Quote.FetchTimeout)
	snapshots := cache.New(cfg.Quote.CacheTTL, nil)
	agg := service.NewQuoteAggregator(client, snapshots, journal, cfg.Quote.FetchTimeout)

	initial := dto.Selection{Symbol: cfg.Refresh.Symbol, Period: period, ShowMA: cfg.Refresh.ShowMA}
	driver := refresh.NewDriver(agg, initial, cfg.Refresh.Interval, nil)
	driver.AddJob("cache-purge", cachePurgeSpec, func() {
		if n := snapshots.Purge(); n > 0 {
			logger.L().Debug().Int("evicted", n).Int("remaining", snapshots.Len()).Msg("snapshot cache purged")
		}
	})

	handler := api.NewHandler(agg, driver)
	router := api.NewRouter(handler, api.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
	})
	api.NewHealthHandler(checks).Register(router)

	cleanup := func() {
		if err := journal.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("closing journal")
		}
	}

	return &App{Router: router, Driver: driver, Cleanup: cleanup}, nil
}
