// Package http provides the HTTP transport layer for the batch analytics
// API. Handlers are thin adapters over the service layer: they validate
// path parameters, call the service, and render either a success envelope
// or an RFC 7807 problem response.
//
// Routes exposed under /api:
//
//	GET /batches                              list batch identifiers
//	GET /variables                            list tracked process variables
//	GET /batches/{batchID}/summary            per-batch statistics
//	GET /batches/{batchID}/series/{variable}  time series for one variable
//	GET /health, /health/live, /health/ready  health probes
//	GET /version                              build information
//
// Handlers depend on narrow interfaces rather than concrete services so
// tests can substitute stubs.
package http
