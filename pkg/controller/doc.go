// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - CORS: Echoes allowed origins and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//
// Provided helpers:
//   - Pprof: Serves the runtime profiles under a path prefix.
package controller
