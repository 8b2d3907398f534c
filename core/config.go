package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config dsc config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Assets      []*Asset    `json:"assets"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Custodian   Custodian   `json:"custodian"`
	Token       Token       `json:"token"`
}

// App app config
type App struct {
	// EngineID identity of the engine on the token ledger
	EngineID string `json:"engine_id"`
	Location string `json:"location"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
}

// Custodian custody api, transfers are forwarded to it when set
type Custodian struct {
	EndPoint string `json:"end_point"`
}

// Token pegged unit ledger config
type Token struct {
	Burners []string `json:"burners"`
}

