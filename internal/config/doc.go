// Package config loads the docsite server configuration from the environment
// and optional .env files.
package config
