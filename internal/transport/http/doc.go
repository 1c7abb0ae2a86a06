// Package http implements HTTP request handlers for the analysis service.
// It provides a thin layer between HTTP transport and the analysis pipeline,
// keeping handlers focused solely on HTTP concerns.
//
// Handlers in this package follow these principles:
//
//  1. Thin handlers - minimal logic, delegate to services
//  2. HTTP-only concerns - request parsing, response formatting
//  3. Error transformation - convert pipeline errors to HTTP responses
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → AnalysisService
//	                                              ↓
//	HTTP Response ← Handler ← Result ←───────────┘
//
// Runs are created with POST /api/analysis and read back with
// GET /api/analysis/{runID}; individual result tables are served as JSON or,
// with ?format=csv, as CSV attachments.
package http
