// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config file.
type StructuredJSONConfig struct {
	Engine struct {
		Scope            string   `json:"scope"`
		Types            []string `json:"types"`
		BatchSize        int      `json:"batch_size"`
		PageSize         int      `json:"page_size"`
		RetryMaxAttempts int      `json:"retry_max_attempts"`
		RetryBaseDelay   Duration `json:"retry_base_delay"`
		RetryMaxDelay    Duration `json:"retry_max_delay"`
	} `json:"engine,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		Mode           string   `json:"mode"`
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		PushDebounce Duration `json:"push_debounce"`
		PollInterval Duration `json:"poll_interval"`
	} `json:"workers,omitempty"`

	Log struct {
		Disabled bool   `json:"disabled"`
		Level    string `json:"level"`
		File     string `json:"file"`
	} `json:"log,omitempty"`
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
		Engine: Engine{
			Scope:            jsonCfg.Engine.Scope,
			Types:            jsonCfg.Engine.Types,
			BatchSize:        jsonCfg.Engine.BatchSize,
			PageSize:         jsonCfg.Engine.PageSize,
			RetryMaxAttempts: jsonCfg.Engine.RetryMaxAttempts,
			RetryBaseDelay:   time.Duration(jsonCfg.Engine.RetryBaseDelay),
			RetryMaxDelay:    time.Duration(jsonCfg.Engine.RetryMaxDelay),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			Mode:           jsonCfg.Adapter.Mode,
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			PushDebounce: time.Duration(jsonCfg.Workers.PushDebounce),
			PollInterval: time.Duration(jsonCfg.Workers.PollInterval),
		},
		Log: Log{
			Disabled: jsonCfg.Log.Disabled,
			Level:    jsonCfg.Log.Level,
			File:     jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
