package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TokenizerConfig configures sentence splitting and stopword filtering.
type TokenizerConfig struct {
	SentenceSplitter string   `yaml:"sentence_splitter"`
	StopwordsFile    string   `yaml:"stopwords_file,omitempty"`
	ExtraStopwords   []string `yaml:"extra_stopwords,omitempty"`
	Stem             bool     `yaml:"stem"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
	Style        string `yaml:"style"`
	Scoring      string `yaml:"scoring"`
	Parallelism  int    `yaml:"parallelism"`
}

// ServerConfig holds the HTTP shell settings. RateLimit is requests per
// second across all clients; a negative value disables limiting.
type ServerConfig struct {
	Addr             string  `yaml:"addr"`
	ReadTimeoutSecs  int     `yaml:"read_timeout_secs"`
	WriteTimeoutSecs int     `yaml:"write_timeout_secs"`
	MaxBodyBytes     int64   `yaml:"max_body_bytes"`
	RateLimit        float64 `yaml:"rate_limit"`
	RateBurst        int     `yaml:"rate_burst"`
}

// LogConfig controls structured logging. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/textsum/config.yaml.
// If neither exists, it writes defaults to ~/.config/textsum/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every invalid setting at once.
func (c *AppConfig) Validate() error {
	var errs []error
	switch c.Tokenizer.SentenceSplitter {
	case "punkt", "regex":
	default:
		errs = append(errs, fmt.Errorf("tokenizer.sentence_splitter: unknown value %q", c.Tokenizer.SentenceSplitter))
	}
	if c.Summarizer.Type != "frequency" {
		errs = append(errs, fmt.Errorf("summarizer.type: unknown value %q", c.Summarizer.Type))
	}
	switch strings.ToLower(strings.TrimSpace(c.Summarizer.Style)) {
	case "plain", "bullets", "numbered":
	default:
		errs = append(errs, fmt.Errorf("summarizer.style: unknown value %q", c.Summarizer.Style))
	}
	switch c.Summarizer.Scoring {
	case "reference", "symmetric":
	default:
		errs = append(errs, fmt.Errorf("summarizer.scoring: unknown value %q", c.Summarizer.Scoring))
	}
	if c.Tokenizer.Stem && c.Summarizer.Scoring != "symmetric" {
		errs = append(errs, errors.New("tokenizer.stem requires summarizer.scoring: symmetric"))
	}
	if c.Summarizer.MaxSentences < 1 {
		errs = append(errs, errors.New("summarizer.max_sentences must be at least 1"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown value %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown value %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textsum", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Tokenizer:  TokenizerConfig{SentenceSplitter: "punkt"},
		Summarizer: SummarizerConfig{Type: "frequency", MaxSentences: 5, Style: "plain", Scoring: "reference", Parallelism: 4},
		Server: ServerConfig{
			Addr:             ":8080",
			ReadTimeoutSecs:  10,
			WriteTimeoutSecs: 30,
			MaxBodyBytes:     5 << 20,
			RateLimit:        20,
			RateBurst:        40,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Tokenizer.SentenceSplitter == "" {
		cfg.Tokenizer.SentenceSplitter = def.Tokenizer.SentenceSplitter
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = def.Summarizer.Type
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Summarizer.Style == "" {
		cfg.Summarizer.Style = def.Summarizer.Style
	}
	if cfg.Summarizer.Scoring == "" {
		cfg.Summarizer.Scoring = def.Summarizer.Scoring
	}
	if cfg.Summarizer.Parallelism <= 0 {
		cfg.Summarizer.Parallelism = def.Summarizer.Parallelism
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = def.Server.ReadTimeoutSecs
	}
	if cfg.Server.WriteTimeoutSecs == 0 {
		cfg.Server.WriteTimeoutSecs = def.Server.WriteTimeoutSecs
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = def.Server.RateLimit
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = def.Server.RateBurst
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Log.File != "" {
		if cfg.Log.MaxSizeMB == 0 {
			cfg.Log.MaxSizeMB = 10
		}
		if cfg.Log.MaxBackups == 0 {
			cfg.Log.MaxBackups = 3
		}
		if cfg.Log.MaxAgeDays == 0 {
			cfg.Log.MaxAgeDays = 28
		}
	}
}

// applyEnvOverrides lets the environment (or a .env file) win over the YAML file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("TEXTSUM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("TEXTSUM_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("TEXTSUM_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TEXTSUM_SCORING"); v != "" {
		cfg.Summarizer.Scoring = strings.ToLower(v)
	}
}
