package config

import (
	"strings"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/pkg/config"
)

// NewsAPI holds the configuration for the headline search source.
type NewsAPI struct {
	// Provider selects the headline source: "newsapi" (default) or "google_rss".
	Provider            string        `mapstructure:"provider"`
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Language            string        `mapstructure:"language"`
	SortBy              string        `mapstructure:"sort_by"`
	PageSize            int           `mapstructure:"page_size"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	GoogleRSSURL        string        `mapstructure:"google_rss_url"`
}

// HuggingFace holds the configuration for the sentiment inference API.
type HuggingFace struct {
	ModelURL            string        `mapstructure:"model_url"`
	Token               string        `mapstructure:"token"`
	MaxTextLength       int           `mapstructure:"max_text_length"`
	MaxAttempts         int           `mapstructure:"max_attempts"`
	InitialBackoff      time.Duration `mapstructure:"initial_backoff"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Collector holds the configuration for the daily batch collector.
type Collector struct {
	Cron         string          `mapstructure:"cron"`
	TargetDelay  time.Duration   `mapstructure:"target_delay"`
	MaxHeadlines int             `mapstructure:"max_headlines"`
	RunLockTTL   time.Duration   `mapstructure:"run_lock_ttl"`
	Targets      []entity.Target `mapstructure:"targets"`
}

// LiveFeed holds the configuration for the websocket sentiment feed.
type LiveFeed struct {
	Interval       time.Duration `mapstructure:"interval"`
	MaxHeadlines   int           `mapstructure:"max_headlines"`
	// MinTitleWords keeps titles with strictly more words; 0 means the
	// default of 3 and a negative value disables the filter.
	MinTitleWords  int           `mapstructure:"min_title_words"`
	MaxSubscribers int           `mapstructure:"max_subscribers"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
}

// Summary holds the configuration for the narrative summary endpoint.
type Summary struct {
	Provider     string        `mapstructure:"provider"`
	MaxHeadlines int           `mapstructure:"max_headlines"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Anthropic holds the configuration for the Anthropic API.
type Anthropic struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// Config holds the full configuration shared by the collector and API services.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	API         config.API      `mapstructure:"api"`
	Telegram    config.Telegram `mapstructure:"telegram"`
	NewsAPI     NewsAPI         `mapstructure:"newsapi"`
	HuggingFace HuggingFace     `mapstructure:"huggingface"`
	Collector   Collector       `mapstructure:"collector"`
	LiveFeed    LiveFeed        `mapstructure:"live_feed"`
	Summary     Summary         `mapstructure:"summary"`
	Gemini      Gemini          `mapstructure:"gemini"`
	Anthropic   Anthropic       `mapstructure:"anthropic"`
}

// Load loads the configuration from the given path and fills unset values with defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills zero-valued settings.
func (c *Config) SetDefaults() {
	if c.App.Name == "" {
		c.App.Name = "stock-sentiment-tracker"
	}
	if c.API.Port == 0 {
		c.API.Port = 8000
	}
	if len(c.API.CORSAllowedOrigins) == 0 {
		c.API.CORSAllowedOrigins = []string{"http://localhost:5173"}
	}

	if c.NewsAPI.Provider == "" {
		c.NewsAPI.Provider = "newsapi"
	}
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2/everything"
	}
	if c.NewsAPI.GoogleRSSURL == "" {
		c.NewsAPI.GoogleRSSURL = "https://news.google.com/rss/search"
	}
	if c.NewsAPI.Language == "" {
		c.NewsAPI.Language = "en"
	}
	if c.NewsAPI.SortBy == "" {
		c.NewsAPI.SortBy = "publishedAt"
	}
	if c.NewsAPI.Timeout == 0 {
		c.NewsAPI.Timeout = 30 * time.Second
	}

	if c.HuggingFace.ModelURL == "" {
		c.HuggingFace.ModelURL = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment"
	}
	if c.HuggingFace.MaxTextLength == 0 {
		c.HuggingFace.MaxTextLength = 512
	}
	if c.HuggingFace.MaxAttempts == 0 {
		c.HuggingFace.MaxAttempts = 3
	}
	if c.HuggingFace.InitialBackoff == 0 {
		c.HuggingFace.InitialBackoff = 2 * time.Second
	}
	if c.HuggingFace.Timeout == 0 {
		c.HuggingFace.Timeout = 30 * time.Second
	}

	if c.Collector.Cron == "" {
		c.Collector.Cron = "0 6 * * *"
	}
	if c.Collector.TargetDelay == 0 {
		c.Collector.TargetDelay = 15 * time.Second
	}
	if c.Collector.MaxHeadlines == 0 {
		c.Collector.MaxHeadlines = 20
	}
	if c.Collector.RunLockTTL == 0 {
		c.Collector.RunLockTTL = 2 * time.Hour
	}
	if len(c.Collector.Targets) == 0 {
		c.Collector.Targets = DefaultTargets()
	}

	if c.LiveFeed.Interval == 0 {
		c.LiveFeed.Interval = 900 * time.Second
	}
	if c.LiveFeed.MaxHeadlines == 0 {
		c.LiveFeed.MaxHeadlines = 20
	}
	if c.LiveFeed.MinTitleWords == 0 {
		c.LiveFeed.MinTitleWords = 3
	}
	if c.LiveFeed.MaxSubscribers == 0 {
		c.LiveFeed.MaxSubscribers = 100
	}
	if c.LiveFeed.WriteTimeout == 0 {
		c.LiveFeed.WriteTimeout = 10 * time.Second
	}
	if c.LiveFeed.PongWait == 0 {
		c.LiveFeed.PongWait = 60 * time.Second
	}

	if c.Summary.Provider == "" {
		c.Summary.Provider = "gemini"
	}
	if c.Summary.MaxHeadlines == 0 {
		c.Summary.MaxHeadlines = 15
	}
	if c.Summary.CacheTTL == 0 {
		c.Summary.CacheTTL = 30 * time.Minute
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-haiku-4-5"
	}
	if c.Anthropic.MaxTokens == 0 {
		c.Anthropic.MaxTokens = 1024
	}
}

// FindTarget looks up a configured target by ticker.
func (c *Config) FindTarget(ticker string) (entity.Target, bool) {
	for _, t := range c.Collector.Targets {
		if t.Ticker == ticker {
			return t, true
		}
	}
	return entity.Target{}, false
}

// ResolveTarget returns the configured target for ticker, or a bare target
// carrying only the ticker when it is not in the configured list.
func (c *Config) ResolveTarget(ticker string) entity.Target {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if t, ok := c.FindTarget(ticker); ok {
		return t
	}
	return entity.Target{Ticker: ticker}
}
