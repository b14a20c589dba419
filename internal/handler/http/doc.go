// Package http implements the operational HTTP surface of the bot.
//
// It exposes route wiring, request handlers, and middleware for the small
// read-only API used by deployment tooling: liveness with directory state
// and the build version. Request tracing and access logging are handled in
// this package before requests reach the service layer.
package http
