package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// accept both Go duration strings and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		HashKey      string `json:"hash_key"`
		Version      string `json:"version"`
		SessionToken string `json:"session_token"`
		LogFile      string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Remote struct {
			DSN string `json:"dsn"`
		} `json:"remote,omitempty"`
		Hub struct {
			DSN string `json:"dsn"`
		} `json:"hub,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Hub struct {
		CandidateAddresses []string `json:"candidate_addresses"`
		Port               int      `json:"port"`
		ProbeTimeout       Duration `json:"probe_timeout"`
		MaxFailures        int      `json:"max_failures"`
	} `json:"hub,omitempty"`

	Workers struct {
		CloudSyncInterval Duration `json:"cloud_sync_interval"`
		HubSyncInterval   Duration `json:"hub_sync_interval"`
	} `json:"workers,omitempty"`

	Lock struct {
		Timezone string `json:"timezone"`
	} `json:"lock,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:      jsonCfg.App.HashKey,
			Version:      jsonCfg.App.Version,
			SessionToken: jsonCfg.App.SessionToken,
			LogFile:      jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB:     DB{DSN: jsonCfg.Storage.DB.DSN},
			Remote: DB{DSN: jsonCfg.Storage.Remote.DSN},
			Hub:    DB{DSN: jsonCfg.Storage.Hub.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Hub: Hub{
			CandidateAddresses: jsonCfg.Hub.CandidateAddresses,
			Port:               jsonCfg.Hub.Port,
			ProbeTimeout:       time.Duration(jsonCfg.Hub.ProbeTimeout),
			MaxFailures:        jsonCfg.Hub.MaxFailures,
		},
		Workers: Workers{
			CloudSyncInterval: time.Duration(jsonCfg.Workers.CloudSyncInterval),
			HubSyncInterval:   time.Duration(jsonCfg.Workers.HubSyncInterval),
		},
		Lock: Lock{Timezone: jsonCfg.Lock.Timezone},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
