// Package config loads and validates the application configuration from
// config.yml and exposes the subway line-to-feed-group mapping.
package config
