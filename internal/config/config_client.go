package config

import (
	"fmt"
	"time"
)

// ClientApp names the dataset this process follows and the identity it
// reports to the sync ledger.
type ClientApp struct {
	Dataset  string
	ClientID string
}

// ClientAdapter points the fetch layer at the artifact server.
type ClientAdapter struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// ClientDB selects the local catalog database. An empty DSN means no
// SQL store at all; the client then keeps the catalog in memory.
type ClientDB struct {
	DSN string
}

type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers sets the background sync schedule.
type ClientWorkers struct {
	SyncInterval time.Duration
}

// ClientConfig is the slice of [StructuredConfig] a viewer process
// needs. Server-only settings, the listen address and the data root,
// never reach the client runtime.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig assembles the client view of the merged configuration
// and validates it: a client cannot run without a base URL, a fetch
// timeout, a sync interval, and a (dataset, client id) identity.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Dataset:  cfg.App.Dataset,
			ClientID: cfg.App.ClientID,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}

	return clientCfg, clientCfg.validate()
}
