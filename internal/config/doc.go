// Package config loads the storefront configuration.
//
// Settings are layered, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. The config file, TOML or YAML by extension
//  3. STOREFRONT_* environment variables
//
// Example TOML:
//
//	[api]
//	baseUrl = "https://larek-api.nomoreparties.co/api/weblarek"
//	cdnUrl = "https://larek-api.nomoreparties.co/content/weblarek"
//	timeout = "10s"
//
//	[logging]
//	level = "debug"
//
// Watch reloads the file when it changes on disk.
package config
