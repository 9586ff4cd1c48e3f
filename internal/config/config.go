package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	AI       AIConfig       `yaml:"ai"`
	CORS     CORSConfig     `yaml:"cors"`
	Penalty  PenaltyConfig  `yaml:"penalty"`
	Usage    UsageConfig    `yaml:"usage"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Mode     string `yaml:"mode"` // debug, release, test
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessExpireHour  int    `yaml:"access_expire_hour"`
	RefreshExpireHour int    `yaml:"refresh_expire_hour"`
}

// AIConfig selects the LLM provider and its credentials.
type AIConfig struct {
	Provider    string  `yaml:"provider"` // openai, anthropic, ollama, gemini
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// PenaltyConfig controls the no-show penalty system.
type PenaltyConfig struct {
	MaxNoShowCount int `yaml:"max_no_show_count"`
	DurationDays   int `yaml:"duration_days"`
}

// UsageConfig controls AI feature usage ceilings and call-log retention.
type UsageConfig struct {
	PortfolioGenerationLimit int `yaml:"portfolio_generation_limit"`
	LogRetentionDays         int `yaml:"log_retention_days"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8000",
			Mode:     "debug",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "projectmate.db",
		},
		JWT: JWTConfig{
			Secret:            "projectmate-secret-key-change-in-production",
			AccessExpireHour:  1,
			RefreshExpireHour: 24 * 7,
		},
		AI: AIConfig{
			Provider:    "openai",
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4",
			MaxTokens:   2000,
			Temperature: 0.7,
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Penalty: PenaltyConfig{
			MaxNoShowCount: 3,
			DurationDays:   30,
		},
		Usage: UsageConfig{
			PortfolioGenerationLimit: 3,
			LogRetentionDays:         30,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		c.AI.Provider = provider
	}
	if baseURL := os.Getenv("AI_BASE_URL"); baseURL != "" {
		c.AI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("AI_API_KEY"); apiKey != "" {
		c.AI.APIKey = apiKey
	}
	if model := os.Getenv("AI_MODEL"); model != "" {
		c.AI.Model = model
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORS.Origins = splitAndTrim(origins)
	}
	if v := os.Getenv("MAX_NO_SHOW_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Penalty.MaxNoShowCount = n
		}
	}
	if v := os.Getenv("PENALTY_DURATION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Penalty.DurationDays = n
		}
	}
	if v := os.Getenv("PORTFOLIO_GENERATION_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Usage.PortfolioGenerationLimit = n
		}
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = def.JWT.Secret
	}
	if c.JWT.AccessExpireHour == 0 {
		c.JWT.AccessExpireHour = def.JWT.AccessExpireHour
	}
	if c.JWT.RefreshExpireHour == 0 {
		c.JWT.RefreshExpireHour = def.JWT.RefreshExpireHour
	}
	if c.AI.Provider == "" {
		c.AI.Provider = def.AI.Provider
	}
	if c.AI.Model == "" {
		c.AI.Model = def.AI.Model
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = def.AI.MaxTokens
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = def.AI.Temperature
	}
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = def.CORS.Origins
	}
	if c.Penalty.MaxNoShowCount == 0 {
		c.Penalty.MaxNoShowCount = def.Penalty.MaxNoShowCount
	}
	if c.Penalty.DurationDays == 0 {
		c.Penalty.DurationDays = def.Penalty.DurationDays
	}
	if c.Usage.PortfolioGenerationLimit == 0 {
		c.Usage.PortfolioGenerationLimit = def.Usage.PortfolioGenerationLimit
	}
	if c.Usage.LogRetentionDays == 0 {
		c.Usage.LogRetentionDays = def.Usage.LogRetentionDays
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
