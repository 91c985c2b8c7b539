// Tokenguard - Token trust and risk assessment for EVM chains
package main

import (
	"context"
	"os"

	"github.com/mossrow/tokenguard/internal/config"
	"github.com/mossrow/tokenguard/internal/logging"
	"github.com/mossrow/tokenguard/internal/server"
	"github.com/mossrow/tokenguard/internal/traces"
)

// Build info - set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	logger := logging.New("info", "text")

	logger.Info("starting tokenguard",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	format := "text"
	if cfg.IsProduction() {
		format = "json"
	}
	logger = logging.New(cfg.LogLevel, format)

	logger.Info("configuration loaded",
		"env", cfg.Env,
		"port", cfg.Port,
		"contract_analysis", cfg.ContractAnalysis,
		"external_checks", cfg.ExternalChecks,
	)

	ctx := context.Background()

	shutdownTraces, err := traces.Init(ctx, cfg.OTLPEndpoint, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTraces(context.Background()) }()

	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
