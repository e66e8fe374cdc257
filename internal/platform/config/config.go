// Package config loads runtime configuration for the web server.
package config

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment key read by Load.
const EnvPrefix = "TANITI_WEB_"

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultDataSource    = "data/taniti.json"
	defaultLoadTimeout   = 15 * time.Second
	defaultContentTTL    = 5 * time.Minute
	defaultCookieName    = "taniti_session"
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 50
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 14
	defaultServiceName   = "taniti-web"
	minSessionKeyBytes   = 32
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Session   SessionConfig
	Log       LogConfig
	Analytics AnalyticsConfig
	Telemetry TelemetryConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DevMode      bool
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// SiteConfig locates the dataset and editorial content.
type SiteConfig struct {
	DataSource  string
	LoadTimeout time.Duration
	ContentTTL  time.Duration
	Watch       bool
	BaseURL     string
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	// Key is the HMAC signing key. Empty means a random per-process key.
	Key        []byte
	CookieName string
	Secure     bool
}

// LogConfig controls zap output.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// AnalyticsConfig holds client instrumentation surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// TelemetryConfig names the tracer.
type TelemetryConfig struct {
	ServiceName string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	configFile   string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithConfigFile loads a YAML file beneath the environment layers.
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) {
		o.configFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over everything else.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration from, lowest first: built-in defaults, the YAML
// config file, the .env file, the process environment and WithEnvMap values.
// The YAML path may also come from TANITI_WEB_CONFIG_FILE.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}
	system := map[string]string{}
	if options.useSystemEnv {
		system = systemEnv()
	}

	configFile := options.configFile
	for _, layer := range []map[string]string{dotEnv, system, options.envMap} {
		if v := strings.TrimSpace(layer[EnvPrefix+"CONFIG_FILE"]); v != "" {
			configFile = v
		}
	}
	fileValues, err := loadYAML(configFile)
	if err != nil {
		return Config{}, err
	}

	values := map[string]string{}
	for _, layer := range []map[string]string{fileValues, dotEnv, system, options.envMap} {
		for k, v := range layer {
			values[k] = v
		}
	}
	lookup := func(key string) (string, bool) {
		v, ok := values[EnvPrefix+key]
		return strings.TrimSpace(v), ok
	}

	var invalid []string
	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SERVER_PORT", portFromEnv(values)),
			ReadTimeout:  durationWithDefault(lookup, "SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			DevMode:      boolWithDefault(lookup, "SERVER_DEV", false),
		},
		Site: SiteConfig{
			DataSource:  stringWithDefault(lookup, "SITE_DATA_SOURCE", defaultDataSource),
			LoadTimeout: durationWithDefault(lookup, "SITE_LOAD_TIMEOUT", defaultLoadTimeout),
			ContentTTL:  durationWithDefault(lookup, "SITE_CONTENT_TTL", defaultContentTTL),
			BaseURL:     strings.TrimRight(stringWithDefault(lookup, "SITE_BASE_URL", ""), "/"),
		},
		Session: SessionConfig{
			CookieName: stringWithDefault(lookup, "SESSION_COOKIE", defaultCookieName),
			Secure:     boolWithDefault(lookup, "SESSION_SECURE", false),
		},
		Log: LogConfig{
			Level:      strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
			File:       stringWithDefault(lookup, "LOG_FILE", ""),
			MaxSizeMB:  intWithDefault(lookup, "LOG_MAX_SIZE_MB", defaultLogMaxSizeMB),
			MaxBackups: intWithDefault(lookup, "LOG_MAX_BACKUPS", defaultLogMaxBackups),
			MaxAgeDays: intWithDefault(lookup, "LOG_MAX_AGE_DAYS", defaultLogMaxAgeDays),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "ANALYTICS_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "ANALYTICS_GTM_CONTAINER_ID", ""),
			Debug:            boolWithDefault(lookup, "ANALYTICS_DEBUG", false),
		},
		Telemetry: TelemetryConfig{
			ServiceName: stringWithDefault(lookup, "TELEMETRY_SERVICE_NAME", defaultServiceName),
		},
	}
	// Watch defaults to dev mode.
	cfg.Site.Watch = boolWithDefault(lookup, "SITE_WATCH", cfg.Server.DevMode)

	if raw, ok := lookup("SESSION_KEY"); ok && raw != "" {
		key, err := hex.DecodeString(raw)
		if err != nil || len(key) < minSessionKeyBytes {
			invalid = append(invalid, "Session.Key")
		} else {
			cfg.Session.Key = key
		}
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// portFromEnv honours the platform-provided PORT when no prefixed port is set.
func portFromEnv(values map[string]string) string {
	if v := strings.TrimSpace(values["PORT"]); v != "" {
		return v
	}
	return defaultPort
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if p, err := strconv.Atoi(cfg.Server.Port); err != nil || p <= 0 || p > 65535 {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if strings.TrimSpace(cfg.Site.DataSource) == "" {
		missing = append(missing, "Site.DataSource")
	}
	if cfg.Site.LoadTimeout <= 0 {
		missing = append(missing, "Site.LoadTimeout")
	}
	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		missing = append(missing, "Session.CookieName")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		missing = append(missing, "Log.Level")
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return &ValidationError{fields: missing}
	}
	return nil
}

func systemEnv() map[string]string {
	out := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		out[strings.TrimSpace(key)] = value
	}
	return out
}

// loadYAML flattens a sectioned YAML document into prefixed env keys, so
//
//	server:
//	  read_timeout: 20s
//
// becomes TANITI_WEB_SERVER_READ_TIMEOUT=20s. Top-level scalars map directly.
func loadYAML(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", path, err)
	}
	out := make(map[string]string)
	for section, raw := range doc {
		name := envName(section)
		switch v := raw.(type) {
		case map[string]any:
			for key, value := range v {
				out[EnvPrefix+name+"_"+envName(key)] = scalar(value)
			}
		default:
			out[EnvPrefix+name] = scalar(v)
		}
	}
	return out, nil
}

func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(strings.TrimSpace(key)))
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, scalar(p))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
