// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key protecting the routes
// and the request body limit, which bounds direct uploads.
package server
