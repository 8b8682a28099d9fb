// Package config handles loading and parsing of configuration from an optional
// .env file, YAML files and environment variables. It defines the server
// settings: listen port, root directory, default file name, diagnostics flag,
// timeouts, the optional admin listener and logging.
//
// Config is the raw, validated input. Settings is the immutable value derived
// from it once at startup and passed to the request handler.
package config
