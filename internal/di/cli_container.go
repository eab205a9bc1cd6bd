package di

import (
	"flag"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/contact-email-guesser/internal/adapters/cli"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/factory"
	"github.com/mikey/contact-email-guesser/internal/logging"
	"github.com/mikey/contact-email-guesser/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Person flags
	First   string
	Last    string
	Domain  string
	Company string
	Size    string

	// Pattern detection flags
	Samples string

	// Domain resolution flags
	Provider string

	// Output flags
	JSON       bool
	NoColor    bool
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) *CLIFlags {
	flags := &CLIFlags{}

	// Person flags
	fs.StringVar(&flags.First, "first", "", "First name of the person")
	fs.StringVar(&flags.Last, "last", "", "Last name of the person")
	fs.StringVar(&flags.Domain, "domain", "", "Company email domain")
	fs.StringVar(&flags.Company, "company", "", "Company name (resolves the domain when -domain is empty)")
	fs.StringVar(&flags.Size, "size", "", "Company size (small, medium, large)")

	// Pattern detection flags
	fs.StringVar(&flags.Samples, "samples", "", "YAML file of known {name, email} pairs at the company")

	// Domain resolution flags
	fs.StringVar(&flags.Provider, "provider", "heuristic", "Domain resolver (heuristic, bedrock, gemini, openai)")

	// Output flags
	fs.BoolVar(&flags.JSON, "json", false, "Print the result as JSON")
	fs.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	// ExitOnError flag sets never return an error here
	_ = fs.Parse(args)
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewResolverFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register domain resolver
	if err := container.Provide(func(f *factory.ResolverFactory) (core.DomainResolver, error) {
		return f.CreateResolver()
	}); err != nil {
		return nil, err
	}

	// Register enrichment service with no store and no cache
	if err := container.Provide(func(
		resolver core.DomainResolver,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
	) *core.EnrichmentService {
		return core.NewEnrichmentService(
			nil, // No store for CLI
			nil, // No cache for CLI
			resolver,
			nil, // Personal providers only matter for stored accounts
			textProcessor,
			logger,
			core.ServiceConfig{},
		)
	}); err != nil {
		return nil, err
	}

	// Register presenter
	if err := container.Provide(func(service *core.EnrichmentService, logger *zap.Logger, flags *CLIFlags) *cli.Presenter {
		return cli.NewPresenter(service, logger, os.Stdout, flags.Verbose, flags.JSON)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("cli.verbose", flags.Verbose)
	v.Set("cli.json", flags.JSON)

	// Model resolvers read their keys and regions from the environment
	v.Set("resolver.provider", flags.Provider)
	v.Set("resolver.fallback", true)

	return config.NewFromViper(v)
}
