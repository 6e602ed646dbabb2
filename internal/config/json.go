// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the optional JSON config file.
type StructuredJSONConfig struct {
	Bot struct {
		Token          string   `json:"token"`
		AdminIDs       []int64  `json:"admin_ids"`
		DefaultLocale  string   `json:"default_locale"`
		APIEndpoint    string   `json:"api_endpoint"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"bot,omitempty"`

	Storage struct {
		DB struct {
			DSN            string   `json:"dsn"`
			MaxConns       int      `json:"max_conns"`
			AcquireTimeout Duration `json:"acquire_timeout"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string   `json:"address"`
			Username string   `json:"username"`
			Password string   `json:"password"`
			DB       int      `json:"db"`
			StateTTL Duration `json:"state_ttl"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		WebhookAddress string `json:"webhook_address"`
		WebhookPath    string `json:"webhook_path"`
		WebhookSecret  string `json:"webhook_secret"`
		PollTimeout    int    `json:"poll_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		Shards       int      `json:"shards"`
		QueueSize    int      `json:"queue_size"`
		EventTimeout Duration `json:"event_timeout"`
	} `json:"workers,omitempty"`
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
		Bot: Bot{
			Token:          jsonCfg.Bot.Token,
			AdminIDs:       jsonCfg.Bot.AdminIDs,
			DefaultLocale:  jsonCfg.Bot.DefaultLocale,
			APIEndpoint:    jsonCfg.Bot.APIEndpoint,
			RequestTimeout: time.Duration(jsonCfg.Bot.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN:            jsonCfg.Storage.DB.DSN,
				MaxConns:       jsonCfg.Storage.DB.MaxConns,
				AcquireTimeout: time.Duration(jsonCfg.Storage.DB.AcquireTimeout),
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Username: jsonCfg.Storage.Redis.Username,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
				StateTTL: time.Duration(jsonCfg.Storage.Redis.StateTTL),
			},
		},
		Server: Server{
			WebhookAddress: jsonCfg.Server.WebhookAddress,
			WebhookPath:    jsonCfg.Server.WebhookPath,
			WebhookSecret:  jsonCfg.Server.WebhookSecret,
			PollTimeout:    jsonCfg.Server.PollTimeout,
		},
		Workers: Workers{
			Shards:       jsonCfg.Workers.Shards,
			QueueSize:    jsonCfg.Workers.QueueSize,
			EventTimeout: time.Duration(jsonCfg.Workers.EventTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
