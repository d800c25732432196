// Package app wires the production dashboard together and manages its
// lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, config.yaml and VOLVE_* variables
//  2. Initialize logging and OpenTelemetry
//  3. Create the workbook loader, chart renderer and services
//  4. Set up middleware, handlers and the /metrics endpoint
//  5. Configure the HTTP server
//
// The workbook is not read at startup. The production service loads it on
// the first Data, Plots, chart or API request.
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// the configured shutdown timeout and flushes telemetry.
package app
