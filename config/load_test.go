package config

import (
	"testing"

	"dsc/core"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	var cfg core.Config
	defaultConfig(&cfg)

	assert.Equal(t, "dsc-engine", cfg.App.EngineID)
	assert.Equal(t, "UTC", cfg.App.Location)

	cfg = core.Config{App: core.App{EngineID: "engine-1", Location: "Asia/Shanghai"}}
	defaultConfig(&cfg)
	assert.Equal(t, "engine-1", cfg.App.EngineID)
	assert.Equal(t, "Asia/Shanghai", cfg.App.Location)
}
