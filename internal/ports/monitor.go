package ports

// StreamMonitor defines the interface for the surface through which the
// surrounding monitoring system asks for stream health verdicts
type StreamMonitor interface {
	// Start starts the monitor service
	Start() error

	// Stop stops the monitor service
	Stop() error
}
