// Package app provides application initialization and lifecycle management
// for the batch analytics server. It wires configuration, logging, the batch
// service, and the HTTP transport together at startup and handles graceful
// shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from file and environment
//	2. Initialize logging and request metrics
//	3. Load the sensor log table and create the batch service
//	4. Set up HTTP handlers and middleware
//	5. Configure and start the HTTP server
//	6. Set up graceful shutdown handlers
//
// The sensor log is loaded exactly once at startup; a missing or malformed
// source file fails initialization rather than serving an empty API.
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    slog.Error("init failed", slog.String("error", err.Error()))
//	    os.Exit(1)
//	}
//	if err := application.Run(); err != nil {
//	    os.Exit(1)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM to ensure active requests complete
// within the configured shutdown timeout before the process exits.
//
// # Error Handling
//
// All initialization errors are returned to the caller. The app does not
// call os.Exit() directly, allowing the main function to control the exit
// process.
package app
