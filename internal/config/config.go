package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// EnvAPIBaseURL overrides API.BaseURL when set.
const EnvAPIBaseURL = "TINYLINK_API_BASE_URL"

const (
	// FallbackAPIBaseURL is used when no base URL is configured and the stub API is disabled.
	FallbackAPIBaseURL = "https://tinylink-backend-cyan.vercel.app/api/links"
	// APIBasePath is the path the links API is served under.
	APIBasePath = "/api/links"
	// RedirectBasePath is the path short links resolve under.
	RedirectBasePath = "/r"
)

type Config struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	API        `yaml:"api"`
	Display    `yaml:"display"`
	Stub       `yaml:"stub"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   15 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type API struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	ClickTimeout time.Duration `yaml:"click_timeout"`
}

var defaultAPI = API{
	Timeout:      10 * time.Second,
	ClickTimeout: 5 * time.Second,
}

type Display struct {
	Timezone string `yaml:"timezone"`
}

var defaultDisplay = Display{
	Timezone: "Asia/Kolkata",
}

// Stub controls the in-memory links API mounted on the dashboard server.
type Stub struct {
	Enabled bool `yaml:"enabled"`
}

// APIBaseURL returns the links API root the dashboard talks to.
func (c *Config) APIBaseURL() string {
	if c.API.BaseURL != "" {
		return strings.TrimRight(c.API.BaseURL, "/")
	}
	if c.Stub.Enabled {
		return fmt.Sprintf("http://localhost:%d%s", c.HTTPServer.Port, APIBasePath)
	}
	return FallbackAPIBaseURL
}

// ShortURLBase returns the prefix of public short links, derived from the
// API base URL.
func (c *Config) ShortURLBase() string {
	base := c.APIBaseURL()
	if strings.Contains(base, APIBasePath) {
		return strings.Replace(base, APIBasePath, RedirectBasePath, 1)
	}
	return base + RedirectBasePath
}

// Location loads the display timezone.
func (d *Display) Location() (*time.Location, error) {
	const op = "config.Display.Location"

	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load timezone %q: %w", op, d.Timezone, err)
	}

	return loc, nil
}

// Load reads the config file at path on top of the defaults and applies the
// environment override. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	setDefaults(&cfg)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
		}
	}

	if baseURL, ok := os.LookupEnv(EnvAPIBaseURL); ok && baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.HTTPServer = defaultHTTPServer
	cfg.API = defaultAPI
	cfg.Display = defaultDisplay
}
