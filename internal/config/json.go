package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with json tags and
// string-friendly durations, so a config file can spell timeouts as
// "45s" instead of nanosecond counts.
type StructuredJSONConfig struct {
	App struct {
		Dataset  string `json:"dataset"`
		ClientID string `json:"client_id"`
		Version  string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			DataRoot string `json:"data_root"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		RateLimitPerMinute int      `json:"rate_limit_per_minute"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

// toConfig flattens the file representation into the shared config
// shape. JSONFilePath stays empty on purpose: a file cannot chain-load
// another file.
func (j StructuredJSONConfig) toConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Dataset:  j.App.Dataset,
			ClientID: j.App.ClientID,
			Version:  j.App.Version,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Files: Files{DataRoot: j.Storage.Files.DataRoot},
		},
		Server: Server{
			HTTPAddress:        j.Server.HTTPAddress,
			RequestTimeout:     time.Duration(j.Server.RequestTimeout),
			RateLimitPerMinute: j.Server.RateLimitPerMinute,
		},
		Adapter: Adapter{
			BaseURL:        j.Adapter.BaseURL,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval: time.Duration(j.Workers.SyncInterval),
		},
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var fileCfg StructuredJSONConfig
	if err := json.Unmarshal(raw, &fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fileCfg.toConfig(), nil
}

// Duration accepts either a time.ParseDuration string ("45s", "1h30m")
// or a bare number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var nanos float64
	if err := json.Unmarshal(data, &nanos); err != nil {
		return err
	}
	*d = Duration(time.Duration(nanos))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
