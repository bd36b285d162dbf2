package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMeetingDate  = "2025-12-01"
	DefaultPromptChars  = 20000
	HardPromptCeiling   = 200000
	DefaultNotionAPI    = "https://api.notion.com"
	DefaultNotionVer    = "2022-06-28"
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultOllamaModel  = "llama3.2"
	DefaultOllamaServer = "http://localhost:11434"
)

// ErrNoDestinations is returned when sync is requested without any
// destination database configured.
var ErrNoDestinations = errors.New("no destination databases configured")

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Meeting     MeetingConfig     `yaml:"meeting"`
	Prompt      PromptConfig      `yaml:"prompt"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Notion      NotionConfig      `yaml:"notion"`
	Cache       CacheConfig       `yaml:"cache"`
	Server      ServerConfig      `yaml:"server"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Archived  string `yaml:"archived"`
	Temp      string `yaml:"temp"`
	Debug     string `yaml:"debug"`
	Employees string `yaml:"employees"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	MaxBackground int `yaml:"max_background"`
}

type MeetingConfig struct {
	DefaultDate string `yaml:"default_date"`
}

type PromptConfig struct {
	MaxChars          int  `yaml:"max_chars"`
	PrioritizeActions bool `yaml:"prioritize_actions"`
}

type ProvidersConfig struct {
	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OllamaConfig struct {
	Disabled  bool   `yaml:"disabled"`
	ServerURL string `yaml:"server_url"`
	Model     string `yaml:"model"`
}

type ExtractionConfig struct {
	HeuristicFallback bool `yaml:"heuristic_fallback"`
}

type NotionConfig struct {
	Token      string            `yaml:"token"`
	BaseURL    string            `yaml:"base_url"`
	Version    string            `yaml:"version"`
	RateLimit  float64           `yaml:"rate_limit"`
	Databases  map[string]string `yaml:"databases"`
	Properties NotionProperties  `yaml:"properties"`
}

// NotionProperties names the database columns a task is written to.
type NotionProperties struct {
	Title      string `yaml:"title"`
	Assignee   string `yaml:"assignee"`
	Role       string `yaml:"role"`
	Priority   string `yaml:"priority"`
	Deadline   string `yaml:"deadline"`
	Confidence string `yaml:"confidence"`
	Status     string `yaml:"status"`
}

type CacheConfig struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Load reads the YAML file at path, applies .env and environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// destinationEnv maps destination names to the variables holding their
// database ids. Operations and Project Management share one database.
var destinationEnv = []struct {
	name string
	env  string
}{
	{"HR", "NOTION_DB_HR"},
	{"Marketing", "NOTION_DB_MARKETING"},
	{"Social Media", "NOTION_DB_SOCIAL_MEDIA"},
	{"Operations", "NOTION_DB_OPERATIONS"},
	{"Project Management", "NOTION_DB_OPERATIONS"},
	{"Business Development", "NOTION_DB_BUSINESS_DEV"},
	{"AI Research & Development", "NOTION_DB_AI_RND"},
	{"default", "NOTION_DB_DEFAULT"},
}

// ApplyEnv overlays secrets and destination ids from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	keys := getenv("GEMINI_API_KEY")
	if keys == "" {
		keys = getenv("GOOGLE_API_KEY")
	}
	if keys != "" {
		c.Providers.Gemini.APIKeys = splitList(keys)
	}
	if v := getenv("OPENAI_API_KEY"); v != "" {
		c.Providers.OpenAI.APIKey = v
	}
	if v := getenv("OLLAMA_HOST"); v != "" {
		c.Providers.Ollama.ServerURL = v
	}
	if v := getenv("NOTION_TOKEN"); v != "" {
		c.Notion.Token = v
	}

	for _, d := range destinationEnv {
		v := strings.TrimSpace(getenv(d.env))
		if v == "" {
			continue
		}
		if c.Notion.Databases == nil {
			c.Notion.Databases = make(map[string]string)
		}
		c.Notion.Databases[d.name] = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Destinations returns the configured destinations with empty ids removed.
func (c *Config) Destinations() map[string]string {
	out := make(map[string]string, len(c.Notion.Databases))
	for name, id := range c.Notion.Databases {
		if id = strings.TrimSpace(id); id != "" {
			out[name] = id
		}
	}
	return out
}

// SyncEnabled reports whether a token and at least one destination exist.
func (c *Config) SyncEnabled() bool {
	return c.Notion.Token != "" && len(c.Destinations()) > 0
}

// RequireSync returns the fatal startup error for a sync run, if any.
func (c *Config) RequireSync() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("notion.token is required (set NOTION_TOKEN, see https://www.notion.so/my-integrations)")
	}
	if len(c.Destinations()) == 0 {
		return fmt.Errorf("%w: set NOTION_DB_HR, NOTION_DB_DEFAULT, ...", ErrNoDestinations)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Prompt.MaxChars < 0 {
		return fmt.Errorf("prompt.max_chars must not be negative")
	}
	if c.Notion.RateLimit < 0 {
		return fmt.Errorf("notion.rate_limit must not be negative")
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Debug == "" {
		c.Paths.Debug = "data/debug"
	}
	if c.Paths.Employees == "" {
		c.Paths.Employees = "employees.json"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxBackground == 0 {
		c.Performance.MaxBackground = 2
	}
	if c.Meeting.DefaultDate == "" {
		c.Meeting.DefaultDate = DefaultMeetingDate
	}
	if c.Prompt.MaxChars == 0 {
		c.Prompt.MaxChars = DefaultPromptChars
	}
	if c.Prompt.MaxChars > HardPromptCeiling {
		c.Prompt.MaxChars = HardPromptCeiling
	}
	if c.Providers.Gemini.Model == "" {
		c.Providers.Gemini.Model = DefaultGeminiModel
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = DefaultOpenAIModel
	}
	if c.Providers.Ollama.Model == "" {
		c.Providers.Ollama.Model = DefaultOllamaModel
	}
	if c.Providers.Ollama.ServerURL == "" {
		c.Providers.Ollama.ServerURL = DefaultOllamaServer
	}
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = DefaultNotionAPI
	}
	if c.Notion.Version == "" {
		c.Notion.Version = DefaultNotionVer
	}
	if c.Notion.RateLimit == 0 {
		c.Notion.RateLimit = 3
	}
	c.Notion.Properties.applyDefaults()
	if c.Cache.Path == "" {
		c.Cache.Path = "data/cache.db"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}

	return nil
}

func (p *NotionProperties) applyDefaults() {
	if p.Title == "" {
		p.Title = "Name"
	}
	if p.Assignee == "" {
		p.Assignee = "Assignee"
	}
	if p.Role == "" {
		p.Role = "Role"
	}
	if p.Priority == "" {
		p.Priority = "Priority"
	}
	if p.Deadline == "" {
		p.Deadline = "Deadline"
	}
	if p.Confidence == "" {
		p.Confidence = "Confidence"
	}
	if p.Status == "" {
		p.Status = "Status"
	}
}
