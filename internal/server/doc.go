// Package server wires and runs the bot's operational HTTP server.
//
// It provides startup and graceful shutdown of the transport; the caller
// owns signal handling and the application lifecycle.
package server
