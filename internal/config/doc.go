// Package config loads the CLI settings.
//
// Settings come from an optional YAML file (API version, call timeout, log
// level, env file). The Dataverse connection string comes from the
// environment, optionally seeded from a .env file, and is only read when the
// first remote call needs it.
package config
