package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration.
var Config AppConfig

// Load reads and validates the application configuration from config.yml.
// API keys may be overridden through TRACK_MTA_API_KEY / TRACK_MTA_BUS_KEY.
func Load() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse unmarshals, validates and applies defaults to a raw YAML document.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	v := validator.New()
	if err := v.Struct(cfg.App); err != nil {
		return cfg, err
	}
	if err := v.Struct(cfg.URLs); err != nil {
		return cfg, err
	}
	if cfg.URLs.BusEndpoints != nil {
		if err := v.Struct(cfg.URLs.BusEndpoints); err != nil {
			return cfg, err
		}
	}
	applyDefaults(&cfg)
	if k := os.Getenv("TRACK_MTA_API_KEY"); k != "" {
		cfg.Keys.MTAAPIKey = k
	}
	if k := os.Getenv("TRACK_MTA_BUS_KEY"); k != "" {
		cfg.Keys.MTABusKey = k
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.App.SearchRadiusMeters == 0 {
		cfg.App.SearchRadiusMeters = 500
	}
	if cfg.App.HTTPTimeoutMS == 0 {
		cfg.App.HTTPTimeoutMS = 15000
	}
	if cfg.App.HTTPConnectMS == 0 {
		cfg.App.HTTPConnectMS = 10000
	}
	if cfg.App.RetryAttempts == 0 {
		cfg.App.RetryAttempts = 2
	}
	if cfg.App.RetryDelayMS == 0 {
		cfg.App.RetryDelayMS = 500
	}
	if cfg.App.NearbyMaxResults == 0 {
		cfg.App.NearbyMaxResults = 20
	}
	if cfg.App.NearbyStopQueries == 0 {
		cfg.App.NearbyStopQueries = 3
	}
	if cfg.App.PerFeedArrivals == 0 {
		cfg.App.PerFeedArrivals = 5
	}
	if cfg.App.StaticDataDir == "" {
		cfg.App.StaticDataDir = "./data"
	}
}
