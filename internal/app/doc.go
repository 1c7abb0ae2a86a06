// Package app wires the application together: configuration, logging,
// metrics, the analysis service and the HTTP router, plus the server
// lifecycle (start, signal handling, graceful shutdown).
package app
