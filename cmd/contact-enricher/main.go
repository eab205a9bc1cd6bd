package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/di"
	"github.com/mikey/contact-email-guesser/internal/factory"
	"github.com/mikey/contact-email-guesser/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	listeners []ports.Listener,
	resolver core.DomainResolver,
	cache factory.GuessCache,
	store factory.ContactStore,
) error {
	defer logger.Sync()

	// Start the listeners
	var started []ports.Listener
	for _, l := range listeners {
		if err := l.Start(); err != nil {
			logger.Error("Failed to start listener", zap.String("listener", l.Name()), zap.Error(err))
			stopAll(logger, started)
			return err
		}
		logger.Info("Started listener", zap.String("listener", l.Name()))
		started = append(started, l)
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	stopAll(logger, started)

	// Close any resources that need closing
	if closer, ok := resolver.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close domain resolver", zap.Error(err))
		}
	}

	cache.Stop()

	if err := store.Close(); err != nil {
		logger.Error("Failed to close contact store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}

func stopAll(logger *zap.Logger, listeners []ports.Listener) {
	for i := len(listeners) - 1; i >= 0; i-- {
		if err := listeners[i].Stop(); err != nil {
			logger.Error("Failed to stop listener", zap.String("listener", listeners[i].Name()), zap.Error(err))
		}
	}
}
