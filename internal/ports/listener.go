package ports

// Listener is a long-running inbound surface of the daemon
type Listener interface {
	// Name identifies the listener in logs
	Name() string

	// Start starts serving in the background
	Start() error

	// Stop stops serving and releases the listening socket
	Stop() error
}
