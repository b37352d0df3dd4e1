package server

// Server is the lifecycle contract the main binary runs against.
// RunServer blocks until shutdown completes; Shutdown may also be
// called directly to stop serving early.
type Server interface {
	RunServer()
	Shutdown()
}
