package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=90s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public URL used in RSS links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Storage StorageConfig `yaml:"storage" json:"storage" jsonschema:"description=Settings storage configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=Generative AI configuration for headline fetching"`

	Digest DigestConfig `yaml:"digest" json:"digest" jsonschema:"description=Digest preview configuration"`

	Content ContentConfig `yaml:"content" json:"content" jsonschema:"description=Source page extraction for the article detail"`
}

// StorageConfig selects where user settings are persisted
type StorageConfig struct {
	Backend         string `yaml:"backend" json:"backend" jsonschema:"default=sqlite,enum=sqlite,enum=postgres,enum=redis,enum=memory,description=Settings storage backend"`
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"description=Database connection string for sqlite or postgres"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=2,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	RedisAddr       string `yaml:"redis_addr" json:"redis_addr" jsonschema:"default=localhost:6379,description=Redis address for the redis backend"`
	RedisPassword   string `yaml:"redis_password" json:"redis_password" jsonschema:"description=Redis password"`
	RedisDB         int    `yaml:"redis_db" json:"redis_db" jsonschema:"default=0,description=Redis database number"`
}

// LLMConfig holds the generative AI configuration
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gemini-2.5-flash)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=4096,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SearchTool   string        `yaml:"search_tool" json:"search_tool" jsonschema:"description=Tool type enabling search augmentation (e.g. google_search), empty to disable"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the model (optional)"`
	Headlines    int           `yaml:"headlines" json:"headlines" jsonschema:"default=5,minimum=1,maximum=20,description=Number of headlines requested per category"`
	SummaryMin   int           `yaml:"summary_min" json:"summary_min" jsonschema:"default=700,description=Minimum summary length in characters"`
	SummaryMax   int           `yaml:"summary_max" json:"summary_max" jsonschema:"default=800,description=Maximum summary length in characters"`
}

// DigestConfig holds digest preview settings
type DigestConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=3,minimum=1,description=Maximum concurrent category fetches"`
	Timezone      string        `yaml:"timezone" json:"timezone" jsonschema:"default=America/Sao_Paulo,description=Time zone of the email send time"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"description=Deadline of a digest compose (default 80% of server timeout)"`
}

// ContentConfig controls extraction of the article text from its source page
type ContentConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Offer the source page text in the article detail"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Source page fetch timeout"`
	MaxChars int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=3000,description=Maximum characters of extracted text shown"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() error {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 90 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost" + c.Server.Listen
		if !strings.HasPrefix(c.Server.Listen, ":") {
			c.Server.BaseURL = "http://" + c.Server.Listen
		}
	}

	// storage
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.DSN == "" {
		dbPath, err := DefaultDBPath()
		if err != nil {
			return err
		}
		c.Storage.DSN = "file:" + dbPath + "?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Storage.MaxOpenConns == 0 {
		c.Storage.MaxOpenConns = 4
	}
	if c.Storage.MaxIdleConns == 0 {
		c.Storage.MaxIdleConns = 2
	}
	if c.Storage.ConnMaxLifetime == 0 {
		c.Storage.ConnMaxLifetime = 3600
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = "localhost:6379"
	}

	// llm
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.Headlines == 0 {
		c.LLM.Headlines = 5
	}
	if c.LLM.SummaryMin == 0 {
		c.LLM.SummaryMin = 700
	}
	if c.LLM.SummaryMax == 0 {
		c.LLM.SummaryMax = 800
	}

	// digest
	if c.Digest.MaxConcurrent == 0 {
		c.Digest.MaxConcurrent = 3
	}
	if c.Digest.Timezone == "" {
		c.Digest.Timezone = "America/Sao_Paulo"
	}
	if c.Digest.Timeout == 0 {
		c.Digest.Timeout = c.Server.Timeout * 4 / 5 // the response has to fit into server write timeout
	}

	// content
	if c.Content.Timeout == 0 {
		c.Content.Timeout = 10 * time.Second
	}
	if c.Content.MaxChars == 0 {
		c.Content.MaxChars = 3000
	}
	return nil
}

// DefaultDBPath returns the sqlite file location under the XDG data directory, creating parent dirs
func DefaultDBPath() (string, error) {
	p, err := xdg.DataFile(filepath.Join("resumo", "resumo.db"))
	if err != nil {
		return "", fmt.Errorf("resolve data file: %w", err)
	}
	return p, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Headlines < 1 || cfg.LLM.Headlines > 20 {
		return fmt.Errorf("llm.headlines must be between 1 and 20")
	}
	if cfg.LLM.SummaryMin < 1 || cfg.LLM.SummaryMax < cfg.LLM.SummaryMin {
		return fmt.Errorf("llm.summary_min must be positive and not greater than llm.summary_max")
	}
	if cfg.LLM.Timeout < time.Second {
		return fmt.Errorf("llm timeout must be at least 1 second")
	}

	// validate storage config
	switch cfg.Storage.Backend {
	case BackendSQLite, BackendMemory, BackendRedis:
	case BackendPostgres:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	// validate digest config
	if cfg.Digest.MaxConcurrent < 1 {
		return fmt.Errorf("digest.max_concurrent must be at least 1")
	}
	if _, err := time.LoadLocation(cfg.Digest.Timezone); err != nil {
		return fmt.Errorf("digest.timezone: %w", err)
	}

	if cfg.Content.MaxChars < 0 {
		return fmt.Errorf("content.max_chars can't be negative")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Digest.Timeout <= 0 || cfg.Digest.Timeout >= cfg.Server.Timeout {
		return fmt.Errorf("digest.timeout %v must be positive and shorter than server timeout %v", cfg.Digest.Timeout, cfg.Server.Timeout)
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
