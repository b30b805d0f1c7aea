// Package server holds the HTTP server configuration.
//
// The main application entry point handles the actual server startup; this
// package only defines the configuration structure for server settings such
// as the listen port and the API key protecting the audit endpoints.
//
// # Usage
//
// This package is primarily used by core/config to embed server settings.
package server
