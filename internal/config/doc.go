// Package config loads and persists the tagsum configuration.
//
// The effective config is built by layering defaults, the JSON config file
// in the platform config directory, TAGSUM_* environment variables, and CLI
// flag overrides — later layers win. API keys are never stored here; they
// come from the environment, optionally populated from a .env file via
// [LoadDotenv].
package config
