// Package config handles configuration loading, parsing, and validation
// from various sources (.env file, YAML file, environment variables, command
// line flags). It provides type-safe access to the settings needed by the
// generation clients, the orchestrator and logging, while keeping
// configuration details separate from business logic.
package config
