package main

import (
	"time"

	"github.com/lox/masquerade/cmd/masquerade/shared"
	"github.com/lox/masquerade/internal/content"
	"github.com/lox/masquerade/internal/server"
)

// ServeCmd contains server configuration
type ServeCmd struct {
	Config       string `kong:"short='c',default='masquerade.hcl',help='Path to HCL configuration file'"`
	Addr         string `kong:"help='Server address (overrides config)'"`
	Debug        bool   `kong:"help='Enable debug logging'"`
	Seed         *int64 `kong:"help='Deterministic RNG seed for rooms (optional)'"`
	SalonSeconds *int   `kong:"help='Gossip salon time limit in seconds, 0 disables (overrides config)'"`
	StaticDir    string `kong:"help='Directory of static web assets to serve (overrides config)'"`
	ContentDir   string `kong:"help='Directory of card and motif content overriding the embedded pools'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}

	// Command line overrides
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.SalonSeconds != nil {
		cfg.Game.SalonSeconds = *c.SalonSeconds
	}
	if c.StaticDir != "" {
		cfg.Server.StaticDir = c.StaticDir
	}
	if c.ContentDir != "" {
		cfg.Game.ContentDir = c.ContentDir
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(c.Debug)
	shared.SetLevelFromString(logger, cfg.Server.LogLevel)

	pool, err := content.Load(cfg.Game.ContentDir)
	if err != nil {
		return err
	}

	registry := server.NewRegistry(pool, server.RegistryConfig{
		Seed:         cfg.Game.Seed,
		SalonTimeout: time.Duration(cfg.Game.SalonSeconds) * time.Second,
	}, logger)

	addr := c.Addr
	if addr == "" {
		addr = cfg.GetServerAddress()
	}
	s := server.NewServer(addr, cfg.Server.StaticDir, registry, logger)

	logger.Info("Starting masquerade server",
		"addr", addr,
		"salon_seconds", cfg.Game.SalonSeconds,
		"static_dir", cfg.Server.StaticDir)

	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		return s.Stop()
	case err := <-serverErr:
		return err
	}
}
