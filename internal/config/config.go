package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	RabbitMQ     RabbitMQConfig     `yaml:"rabbitmq"`
	HTTP         HTTPConfig         `yaml:"http"`
	YouTube      YouTubeConfig      `yaml:"youtube"`
	Serper       SerperConfig       `yaml:"serper"`
	GoogleSearch GoogleSearchConfig `yaml:"google_search"`
	Reddit       RedditConfig       `yaml:"reddit"`
	Twitter      TwitterConfig      `yaml:"twitter"`
	Collect      CollectConfig      `yaml:"collect"`
	LogLevel     string             `yaml:"log_level"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN prefers the URL form and falls back to discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type YouTubeConfig struct {
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	RegionCode        string `yaml:"region_code"`
	RelevanceLanguage string `yaml:"relevance_language"`
	Order             string `yaml:"order"`
}

type SerperConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Country string `yaml:"gl"`
	Locale  string `yaml:"hl"`
}

type GoogleSearchConfig struct {
	APIKey   string `yaml:"api_key"`
	EngineID string `yaml:"engine_id"`
	BaseURL  string `yaml:"base_url"`
}

type RedditConfig struct {
	ClientID      string   `yaml:"client_id"`
	ClientSecret  string   `yaml:"client_secret"`
	UserAgent     string   `yaml:"user_agent"`
	AuthURL       string   `yaml:"auth_url"`
	BaseURL       string   `yaml:"base_url"`
	Subreddits    []string `yaml:"subreddits"`
	WebSubreddits []string `yaml:"web_subreddits"`
	Sort          string   `yaml:"sort"`
	TimeFilter    string   `yaml:"time_filter"`
}

func (r RedditConfig) HasCredentials() bool {
	return r.ClientID != "" && r.ClientSecret != ""
}

type TwitterConfig struct {
	BearerToken string `yaml:"bearer_token"`
	BaseURL     string `yaml:"base_url"`
	Language    string `yaml:"language"`
}

type ReliabilityConfig struct {
	Video     float64 `yaml:"video"`
	SNS       float64 `yaml:"sns"`
	Community float64 `yaml:"community"`
}

// defaultReliability is applied before decoding, so an explicit 0 in the
// file is kept.
var defaultReliability = ReliabilityConfig{Video: 0.8, SNS: 0.65, Community: 0.6}

type CollectConfig struct {
	MaxResults      int               `yaml:"max_results"`
	BatchMaxResults int               `yaml:"batch_max_results"`
	BatchLimit      int               `yaml:"batch_limit"`
	Sources         []string          `yaml:"sources"`
	BatchSources    []string          `yaml:"batch_sources"`
	Interval        time.Duration     `yaml:"interval"`
	RunTimeout      time.Duration     `yaml:"run_timeout"`
	Language        string            `yaml:"language"`
	Country         string            `yaml:"country"`
	Reliability     ReliabilityConfig `yaml:"reliability"`
}

// Load reads the YAML file at path. A missing file falls back to the
// embedded defaults, which read credentials from the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = defaultConfig
	} else if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Config{Collect: CollectConfig{Reliability: defaultReliability}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Status reports which integrations have the credentials they need.
func (c *Config) Status() map[string]bool {
	return map[string]bool{
		"database":      c.Database.DSN() != "",
		"rabbitmq":      c.RabbitMQ.Enabled(),
		"youtube":       c.YouTube.APIKey != "",
		"serper":        c.Serper.APIKey != "",
		"google_search": c.GoogleSearch.APIKey != "" && c.GoogleSearch.EngineID != "",
		"reddit":        c.Reddit.HasCredentials(),
		"twitter":       c.Twitter.BearerToken != "",
	}
}

func (c *Config) setDefaults() {
	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = 10 * time.Second
	}
	if c.Database.QueryTimeout == 0 {
		c.Database.QueryTimeout = 30 * time.Second
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 5 * time.Minute
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "review_collector"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "curated_sources"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "curated_sources"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = "ShoeReviewCollector/1.0"
	}
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if c.YouTube.RegionCode == "" {
		c.YouTube.RegionCode = "JP"
	}
	if c.YouTube.RelevanceLanguage == "" {
		c.YouTube.RelevanceLanguage = "ja"
	}
	if c.YouTube.Order == "" {
		c.YouTube.Order = "relevance"
	}
	if c.Serper.BaseURL == "" {
		c.Serper.BaseURL = "https://google.serper.dev"
	}
	if c.Serper.Country == "" {
		c.Serper.Country = "jp"
	}
	if c.Serper.Locale == "" {
		c.Serper.Locale = "ja"
	}
	if c.GoogleSearch.BaseURL == "" {
		c.GoogleSearch.BaseURL = "https://www.googleapis.com"
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = c.HTTP.UserAgent
	}
	if c.Reddit.AuthURL == "" {
		c.Reddit.AuthURL = "https://www.reddit.com/api/v1/access_token"
	}
	if c.Reddit.BaseURL == "" {
		c.Reddit.BaseURL = "https://oauth.reddit.com"
	}
	if len(c.Reddit.Subreddits) == 0 {
		c.Reddit.Subreddits = []string{"running", "RunningShoeGeeks", "AdvancedRunning", "Marathon", "trailrunning"}
	}
	if len(c.Reddit.WebSubreddits) == 0 {
		c.Reddit.WebSubreddits = []string{"running", "RunningShoeGeeks", "AdvancedRunning"}
	}
	if c.Reddit.Sort == "" {
		c.Reddit.Sort = "top"
	}
	if c.Reddit.TimeFilter == "" {
		c.Reddit.TimeFilter = "year"
	}
	if c.Twitter.BaseURL == "" {
		c.Twitter.BaseURL = "https://api.twitter.com"
	}
	if c.Twitter.Language == "" {
		c.Twitter.Language = "ja"
	}
	if c.Collect.MaxResults == 0 {
		c.Collect.MaxResults = 10
	}
	if c.Collect.BatchMaxResults == 0 {
		c.Collect.BatchMaxResults = 5
	}
	if c.Collect.BatchLimit == 0 {
		c.Collect.BatchLimit = 5
	}
	if len(c.Collect.Sources) == 0 {
		c.Collect.Sources = []string{"youtube", "social"}
	}
	if len(c.Collect.BatchSources) == 0 {
		c.Collect.BatchSources = []string{"youtube"}
	}
	if c.Collect.Interval == 0 {
		c.Collect.Interval = 24 * time.Hour
	}
	if c.Collect.RunTimeout == 0 {
		c.Collect.RunTimeout = 30 * time.Minute
	}
	if c.Collect.Language == "" {
		c.Collect.Language = "ja"
	}
	if c.Collect.Country == "" {
		c.Collect.Country = "JP"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
