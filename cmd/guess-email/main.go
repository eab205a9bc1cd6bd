package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mikey/contact-email-guesser/internal/adapters/cli"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/di"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	flags := di.ParseFlags()

	// Colors only make sense on an interactive terminal
	color.NoColor = flags.NoColor || !isTerminal(os.Stdout)

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	presenter *cli.Presenter,
	resolver core.DomainResolver,
) error {
	defer logger.Sync()

	// Close any resources that need closing
	if closer, ok := resolver.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close domain resolver", zap.Error(err))
			}
		}()
	}

	req, err := buildRequest(flags)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if req.Domain == "" {
		if req.CompanyName == "" {
			return errors.New("either -domain or -company is required")
		}
		resolution, err := resolver.ResolveDomain(ctx, req.CompanyName)
		if err != nil {
			return fmt.Errorf("failed to resolve domain for %q: %w", req.CompanyName, err)
		}
		logger.Info("Resolved company domain",
			zap.String("company", req.CompanyName),
			zap.String("domain", resolution.Domain),
			zap.String("source", resolution.Source),
			zap.Float64("confidence", resolution.Confidence))
		req.Domain = resolution.Domain
	}

	_, err = presenter.Run(ctx, req)
	return err
}

func buildRequest(flags *di.CLIFlags) (core.GuessRequest, error) {
	size, err := pattern.ParseCompanySize(flags.Size)
	if err != nil {
		return core.GuessRequest{}, err
	}

	req := core.GuessRequest{
		FirstName:   flags.First,
		LastName:    flags.Last,
		Domain:      flags.Domain,
		CompanyName: flags.Company,
		CompanySize: size,
	}

	if flags.Samples != "" {
		if req.KnownEmails, err = cli.LoadSamples(flags.Samples); err != nil {
			return core.GuessRequest{}, err
		}
	}

	return req, nil
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
