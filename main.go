package main

import (
	"log"

	"github.com/joho/godotenv"

	"abdesign/adapters/api"
	"abdesign/adapters/gonumdist"
	"abdesign/adapters/stats/design"
	"abdesign/adapters/stats/inference"
	"abdesign/adapters/stats/simulate"
	"abdesign/app"
	"abdesign/internal"
	"abdesign/internal/config"
)

func main() {
	logger := internal.DefaultLogger.WithComponent("server")

	// Load .env if present; environment variables win either way
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	sampler := simulate.NewSampler(gonumdist.NewBinomialSource())
	service := app.NewDesignService(
		sampler,
		inference.NewNullBuilder(sampler),
		inference.NewPowerEstimator(sampler),
		design.NewCalculator(gonumdist.NewNormal()),
	)

	handler := api.NewHandler(service, cfg.Simulation)
	router := api.NewRouter(handler, cfg.Server.GinMode)

	logger.Info("design engine listening on :%s (sim defaults: count=%d seed=%d workers=%d)",
		cfg.Server.Port, cfg.Simulation.DefaultSimCount, cfg.Simulation.DefaultSeed, cfg.Simulation.SweepWorkers)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
