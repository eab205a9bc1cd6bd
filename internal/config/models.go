package config

import "time"

// HTTPConfig represents the configuration for the JSON API listener
type HTTPConfig struct {
	Enabled       bool
	ListenAddress string
}

// IntakeConfig represents the configuration for the SMTP intake listener
type IntakeConfig struct {
	Enabled       bool
	ListenAddress string
	Domain        string
}

// ServerConfig represents the configuration of all listeners
type ServerConfig struct {
	HTTP   HTTPConfig
	Intake IntakeConfig
}

// StoreConfig represents the configuration for the contact store
type StoreConfig struct {
	Type           string
	SQLitePath     string
	MySQLDSN       string
	MaxKnownEmails int
	SeedFile       string
}

// CacheConfig represents the configuration for the guess cache
type CacheConfig struct {
	Type             string
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
}

// ResolverConfig represents the configuration for company domain resolution
type ResolverConfig struct {
	Provider      string
	Fallback      bool
	RetryAttempts int
	RetryDelay    time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GetServer returns the listener configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		HTTP: HTTPConfig{
			Enabled:       c.GetBool("server.http.enabled"),
			ListenAddress: c.GetString("server.http.listen_address"),
		},
		Intake: IntakeConfig{
			Enabled:       c.GetBool("server.intake.enabled"),
			ListenAddress: c.GetString("server.intake.listen_address"),
			Domain:        c.GetString("server.intake.domain"),
		},
	}
}

// GetStore returns the contact store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:           c.GetString("store.type"),
		SQLitePath:     c.GetString("store.sqlite_path"),
		MySQLDSN:       c.GetString("store.mysql_dsn"),
		MaxKnownEmails: c.GetInt("store.max_known_emails"),
		SeedFile:       c.GetString("store.seed_file"),
	}
}

// GetCache returns the guess cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, err
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, err
	}
	return CacheConfig{
		Type:             c.GetString("cache.type"),
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
	}, nil
}

// GetResolver returns the domain resolver configuration
func (c *Config) GetResolver() (ResolverConfig, error) {
	delay, err := c.GetDuration("resolver.retry_delay")
	if err != nil {
		return ResolverConfig{}, err
	}
	return ResolverConfig{
		Provider:      c.GetString("resolver.provider"),
		Fallback:      c.GetBool("resolver.fallback"),
		RetryAttempts: c.GetInt("resolver.retry_attempts"),
		RetryDelay:    delay,
	}, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}
