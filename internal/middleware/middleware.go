// Package middleware holds the Echo middlewares applied to every request:
// request ids, request-scoped logging, tracing, rate limiting, CORS,
// panic recovery and the global error handler.
package middleware
