package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	LogFile   string `hcl:"log_file,optional"`
	StaticDir string `hcl:"static_dir,optional"`
}

// GameSettings contains room behaviour configuration
type GameSettings struct {
	// Seed fixes the per-room rng base for reproducible games; zero means
	// seed from the clock.
	Seed int64 `hcl:"seed,optional"`

	// SalonSeconds bounds the gossip salon; zero leaves it host-driven.
	SalonSeconds int `hcl:"salon_seconds,optional"`

	// ContentDir overrides the embedded card and motif pools.
	ContentDir string `hcl:"content_dir,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A
// missing file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.SalonSeconds < 0 {
		return fmt.Errorf("salon_seconds must not be negative: %d", c.Game.SalonSeconds)
	}
	if c.Server.StaticDir != "" {
		info, err := os.Stat(c.Server.StaticDir)
		if err != nil {
			return fmt.Errorf("static_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("static_dir is not a directory: %s", c.Server.StaticDir)
		}
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
