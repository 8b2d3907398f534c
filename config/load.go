package config

import (
	"dsc/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, DSC_* environment variables override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("DSC")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(config *core.Config) {
	if config.App.EngineID == "" {
		config.App.EngineID = "dsc-engine"
	}

	if config.App.Location == "" {
		config.App.Location = "UTC"
	}
}
