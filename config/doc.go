// Package config resolves connection settings for providers from a YAML
// file, a .env file and process environment variables, in increasing order
// of precedence.
package config
