// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
// An empty database URL selects the in-memory identity store.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides settings for Redis-backed components (relay queue,
// pre-call lead cache).
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// RelayConfig provides settings for the outbound workflow relay.
type RelayConfig interface {
	RedisConfig
	GetWorkflowWebhookURL() string
	GetRelayTimeout() time.Duration
}

// WebhookSecrets provides the per-source HMAC signing secrets.
// An empty secret disables verification for that source (dev mode).
type WebhookSecrets interface {
	GetElevenLabsWebhookSecret() string
	GetTwilioAuthToken() string
	GetCloudTalkWebhookSecret() string
	GetCalcomWebhookSecret() string
	GetNotionWebhookSecret() string
}

// VoiceAgentConfig provides settings for the voice-agent webhook module.
type VoiceAgentConfig interface {
	GetPrecallLookupTimeout() time.Duration
	GetLeadCacheTTL() time.Duration
}

// ZohoConfig provides settings for the Zoho CRM integration.
type ZohoConfig interface {
	GetZohoAPIBase() string
	GetZohoTokenURL() string
	GetZohoClientID() string
	GetZohoClientSecret() string
	GetZohoRefreshToken() string
	GetZohoAccessToken() string
}

// PhoneConfig provides the default region for phone normalization.
type PhoneConfig interface {
	GetDefaultPhoneRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	WorkflowWebhookURL   string
	RelayTimeout         time.Duration
	PrecallLookupTimeout time.Duration
	LeadCacheTTL         time.Duration
	DefaultPhoneRegion   string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool

	ElevenLabsWebhookSecret string
	TwilioAuthToken         string
	CloudTalkWebhookSecret  string
	CalcomWebhookSecret     string
	NotionWebhookSecret     string

	ZohoAPIBase      string
	ZohoTokenURL     string
	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string
	ZohoAccessToken  string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// RelayConfig implementation
func (c *Config) GetWorkflowWebhookURL() string  { return c.WorkflowWebhookURL }
func (c *Config) GetRelayTimeout() time.Duration { return c.RelayTimeout }

// WebhookSecrets implementation
func (c *Config) GetElevenLabsWebhookSecret() string { return c.ElevenLabsWebhookSecret }
func (c *Config) GetTwilioAuthToken() string         { return c.TwilioAuthToken }
func (c *Config) GetCloudTalkWebhookSecret() string  { return c.CloudTalkWebhookSecret }
func (c *Config) GetCalcomWebhookSecret() string     { return c.CalcomWebhookSecret }
func (c *Config) GetNotionWebhookSecret() string     { return c.NotionWebhookSecret }

// VoiceAgentConfig implementation
func (c *Config) GetPrecallLookupTimeout() time.Duration { return c.PrecallLookupTimeout }
func (c *Config) GetLeadCacheTTL() time.Duration         { return c.LeadCacheTTL }

// ZohoConfig implementation
func (c *Config) GetZohoAPIBase() string      { return c.ZohoAPIBase }
func (c *Config) GetZohoTokenURL() string     { return c.ZohoTokenURL }
func (c *Config) GetZohoClientID() string     { return c.ZohoClientID }
func (c *Config) GetZohoClientSecret() string { return c.ZohoClientSecret }
func (c *Config) GetZohoRefreshToken() string { return c.ZohoRefreshToken }
func (c *Config) GetZohoAccessToken() string  { return c.ZohoAccessToken }

// PhoneConfig implementation
func (c *Config) GetDefaultPhoneRegion() string { return c.DefaultPhoneRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "relay"),
		AsynqConcurrency:     mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		WorkflowWebhookURL:   getEnv("WORKFLOW_WEBHOOK_URL", ""),
		RelayTimeout:         mustDuration(getEnv("RELAY_TIMEOUT", "10s")),
		PrecallLookupTimeout: mustDuration(getEnv("PRECALL_LOOKUP_TIMEOUT", "2s")),
		LeadCacheTTL:         mustDuration(getEnv("LEAD_CACHE_TTL", "5m")),
		DefaultPhoneRegion:   getEnv("DEFAULT_PHONE_REGION", "AE"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		ElevenLabsWebhookSecret: getEnv("ELEVENLABS_WEBHOOK_SECRET", ""),
		TwilioAuthToken:         getEnv("TWILIO_AUTH_TOKEN", ""),
		CloudTalkWebhookSecret:  getEnv("CLOUDTALK_WEBHOOK_SECRET", ""),
		CalcomWebhookSecret:     getEnv("CALCOM_WEBHOOK_SECRET", ""),
		NotionWebhookSecret:     getEnv("NOTION_WEBHOOK_SECRET", ""),

		ZohoAPIBase:      getEnv("ZOHO_API_BASE", "https://www.zohoapis.com/crm/v2"),
		ZohoTokenURL:     getEnv("ZOHO_TOKEN_URL", "https://accounts.zoho.com/oauth/v2/token"),
		ZohoClientID:     getEnv("ZOHO_CLIENT_ID", ""),
		ZohoClientSecret: getEnv("ZOHO_CLIENT_SECRET", ""),
		ZohoRefreshToken: getEnv("ZOHO_REFRESH_TOKEN", ""),
		ZohoAccessToken:  getEnv("ZOHO_ACCESS_TOKEN", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
