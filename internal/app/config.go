package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	corecmd "toolsbot/core/cmd"
	coreconfig "toolsbot/core/config"
	coredatabase "toolsbot/core/database"
)

// Config carries the core configuration plus the database settings of
// this bot.
type Config struct {
	core     *coreconfig.Config
	Database coredatabase.Config
}

// CoreConfig implements corecmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config { return c.core }

// LoadConfig reads the YAML config file and overlays environment
// variables on both the core and the database sections.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	core, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}

	var extra struct {
		Database coredatabase.Config `yaml:"database"`
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &extra.Database); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	return &Config{core: core, Database: extra.Database}, nil
}
