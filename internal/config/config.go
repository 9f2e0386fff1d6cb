package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/finguard-dev/finguard/internal/categories"
	"github.com/finguard-dev/finguard/internal/scam"
)

// FileName is the project config file name.
const FileName = "finguard.yaml"

// Environment overrides.
const (
	EnvDataDir        = "FINGUARD_DATA_DIR"
	EnvEncrypt        = "FINGUARD_ENCRYPT"
	EnvLogEnv         = "FINGUARD_LOG_ENV"
	EnvAssistantModel = "FINGUARD_ASSISTANT_MODEL"
)

// Config represents the top-level finguard.yaml configuration.
type Config struct {
	Owner       OwnerConfig       `yaml:"owner"`
	Storage     StorageConfig     `yaml:"storage"`
	Categories  []string          `yaml:"categories"`
	Scam        ScamConfig        `yaml:"scam"`
	Assistant   AssistantConfig   `yaml:"assistant"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Log         LogConfig         `yaml:"log"`
}

// OwnerConfig identifies whose ledger this is.
type OwnerConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// StorageConfig locates the backing files. Relative paths resolve against
// the data directory, which itself resolves against the project root.
type StorageConfig struct {
	DataDir      string `yaml:"data_dir"`
	ExpensesFile string `yaml:"expenses_file"`
	BudgetFile   string `yaml:"budget_file"`
	BankFile     string `yaml:"bank_file"`
	ActivityFile string `yaml:"activity_file"`
	Encrypt      bool   `yaml:"encrypt"`
	KeyFile      string `yaml:"key_file"`
}

// ScamConfig tunes the suspicious-expense heuristic.
type ScamConfig struct {
	Keywords  []string `yaml:"keywords"`
	Threshold string   `yaml:"threshold"` // decimal; "0" disables the amount check
}

// AssistantConfig configures the chat endpoint.
type AssistantConfig struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url,omitempty"`
	APIKeyEnv string `yaml:"api_key_env"`
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// CredentialsConfig locates the credentials file.
type CredentialsConfig struct {
	File string `yaml:"file"`
}

// LogConfig selects the logger setup: development, production or test.
type LogConfig struct {
	Env string `yaml:"env"`
}

// Path returns the config path for a project root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads a finguard.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(owner string) *Config {
	return &Config{
		Owner: OwnerConfig{
			Name:     owner,
			Currency: "INR",
		},
		Storage: StorageConfig{
			DataDir:      "data",
			ExpensesFile: "expenses.json",
			BudgetFile:   "budget.json",
			BankFile:     "bank.json",
			ActivityFile: "activity.csv",
			Encrypt:      false,
			KeyFile:      "secret.key",
		},
		Categories: categories.Default(),
		Scam: ScamConfig{
			Keywords:  scam.DefaultKeywords(),
			Threshold: scam.DefaultThreshold.String(),
		},
		Assistant: AssistantConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   "30s",
		},
		Credentials: CredentialsConfig{
			File: "credentials.yaml",
		},
		Log: LogConfig{
			Env: "development",
		},
	}
}

// LoadProject loads <root>/.env and <root>/finguard.yaml, fills unset fields
// from Default, applies environment overrides and validates the result.
// A missing finguard.yaml yields the defaults.
func LoadProject(root string) (*Config, error) {
	if err := LoadEnv(root); err != nil {
		return nil, err
	}

	cfg, err := Load(Path(root))
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default("")
	case err != nil:
		return nil, err
	}

	cfg.fillDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads <root>/.env into the process environment if it exists.
// Variables already set are not overridden.
func LoadEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from FINGUARD_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv(EnvEncrypt); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvEncrypt, v, err)
		}
		c.Storage.Encrypt = b
	}
	if v := os.Getenv(EnvLogEnv); v != "" {
		c.Log.Env = v
	}
	if v := os.Getenv(EnvAssistantModel); v != "" {
		c.Assistant.Model = v
	}
	return nil
}

// Validate checks the values that are parsed lazily.
func (c *Config) Validate() error {
	var problems []string
	if _, err := c.ScamThreshold(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.AssistantTimeout(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(c.Categories) == 0 {
		problems = append(problems, "categories must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default("")
	setIfEmpty(&c.Owner.Currency, def.Owner.Currency)
	setIfEmpty(&c.Storage.DataDir, def.Storage.DataDir)
	setIfEmpty(&c.Storage.ExpensesFile, def.Storage.ExpensesFile)
	setIfEmpty(&c.Storage.BudgetFile, def.Storage.BudgetFile)
	setIfEmpty(&c.Storage.BankFile, def.Storage.BankFile)
	setIfEmpty(&c.Storage.ActivityFile, def.Storage.ActivityFile)
	setIfEmpty(&c.Storage.KeyFile, def.Storage.KeyFile)
	setIfEmpty(&c.Scam.Threshold, def.Scam.Threshold)
	setIfEmpty(&c.Assistant.Model, def.Assistant.Model)
	setIfEmpty(&c.Assistant.APIKeyEnv, def.Assistant.APIKeyEnv)
	setIfEmpty(&c.Assistant.Timeout, def.Assistant.Timeout)
	setIfEmpty(&c.Credentials.File, def.Credentials.File)
	setIfEmpty(&c.Log.Env, def.Log.Env)
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
	}
	if c.Scam.Keywords == nil {
		c.Scam.Keywords = def.Scam.Keywords
	}
}

func setIfEmpty(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = v
	}
}
