// Package config loads runtime configuration from multiple sources (a dotenv
// file, environment variables, a YAML file, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults. It exposes
// strongly typed settings, including the container catalog, to the rest of the
// application.
package config
