package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"go.uber.org/zap"
)

// Guesser runs a single stateless guess
type Guesser interface {
	Guess(ctx context.Context, req core.GuessRequest) (*pattern.Result, error)
}

// Presenter runs guesses from the command line and renders the results
type Presenter struct {
	service Guesser
	logger  *zap.Logger
	out     io.Writer
	verbose bool
	json    bool
	colors  map[string]*color.Color
}

// NewPresenter creates a new CLI presenter writing to out
func NewPresenter(service Guesser, logger *zap.Logger, out io.Writer, verbose, jsonOutput bool) *Presenter {
	return &Presenter{
		service: service,
		logger:  logger,
		out:     out,
		verbose: verbose,
		json:    jsonOutput,
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

// Run guesses the address for req and writes the result
func (p *Presenter) Run(ctx context.Context, req core.GuessRequest) (*pattern.Result, error) {
	p.logger.Debug("Guessing email",
		zap.String("domain", req.Domain),
		zap.Int("known_emails", len(req.KnownEmails)))

	start := time.Now()
	result, err := p.service.Guess(ctx, req)
	if err != nil {
		p.logger.Error("Failed to guess email", zap.Error(err))
		return nil, err
	}
	duration := time.Since(start)

	if p.json {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("failed to encode result: %w", err)
		}
		return result, nil
	}

	p.render(req, result, duration)
	return result, nil
}

func (p *Presenter) render(req core.GuessRequest, result *pattern.Result, duration time.Duration) {
	white := p.colors["white"]

	white.Fprintf(p.out, "\n=== Input ===\n")
	fmt.Fprintf(p.out, "Name: %s %s\n", req.FirstName, req.LastName)
	fmt.Fprintf(p.out, "Domain: %s\n", req.Domain)
	if req.CompanyName != "" {
		fmt.Fprintf(p.out, "Company: %s\n", req.CompanyName)
	}
	if req.CompanySize != pattern.SizeUnknown {
		fmt.Fprintf(p.out, "Company size: %s\n", req.CompanySize)
	}
	fmt.Fprintf(p.out, "Known emails: %d\n", len(req.KnownEmails))

	if result.Detected != nil {
		white.Fprintf(p.out, "\n=== Detected pattern ===\n")
		fmt.Fprintf(p.out, "Template: %s (%d%%)\n", result.Detected.Template, result.Detected.Confidence)
		if p.verbose {
			for _, ex := range result.Detected.Examples {
				fmt.Fprintf(p.out, "  e.g. %s\n", ex)
			}
		}
	}

	white.Fprintf(p.out, "\n=== Results ===\n")
	fmt.Fprintf(p.out, "Best: ")
	p.confidenceColor(result.Best.Confidence).Fprintf(p.out, "%s", result.Best.Email)
	fmt.Fprintf(p.out, " [%s, %d%%]\n", result.Best.Template, result.Best.Confidence)

	for _, alt := range result.Alternatives {
		fmt.Fprintf(p.out, "Alternative: ")
		p.confidenceColor(alt.Confidence).Fprintf(p.out, "%s", alt.Email)
		fmt.Fprintf(p.out, " [%s, %d%%]\n", alt.Template, alt.Confidence)
	}

	if result.Profile.URL != "" {
		fmt.Fprintf(p.out, "Profile: ")
		p.colors["cyan"].Fprintf(p.out, "%s", result.Profile.URL)
		fmt.Fprintf(p.out, " (%d%%)\n", result.Profile.Confidence)
	}
	fmt.Fprintf(p.out, "Profile search: %s\n", result.ProfileSearchURL)

	if p.verbose {
		fmt.Fprintf(p.out, "Processing time: %v\n", duration)
	}
}

func (p *Presenter) confidenceColor(confidence int) *color.Color {
	switch {
	case confidence >= 75:
		return p.colors["green"]
	case confidence >= 40:
		return p.colors["yellow"]
	default:
		return p.colors["red"]
	}
}
