package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	LLM     LLMConfig
	Claim   ClaimConfig
	Archive ArchiveConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds language-backend settings.
type LLMConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxRetries    int    `mapstructure:"max_retries"`
	MaxConcurrent int    `mapstructure:"max_concurrent"`
}

// ClaimConfig holds pipeline and decision-policy settings. The decision policy
// is deliberately a declared, inspectable table rather than logic baked into
// the engine.
type ClaimConfig struct {
	Workers                int      `mapstructure:"workers"`
	RequiredDocuments      []string `mapstructure:"required_documents"`
	AutoApprovalLimit      float64  `mapstructure:"auto_approval_limit"`
	ExcludedProcedureCodes []string `mapstructure:"excluded_procedure_codes"`
	MissingDocumentAction  string   `mapstructure:"missing_document_action"`
	DiscrepancyAction      string   `mapstructure:"discrepancy_action"`
}

// ArchiveConfig holds S3 settings for archiving raw submissions. An empty
// bucket disables archiving.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads configuration from environment variables with the MEDCLAIM_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDCLAIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// LLM defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.max_concurrent", 4)

	// Claim pipeline defaults
	v.SetDefault("claim.workers", 4)
	v.SetDefault("claim.required_documents", "bill,id_card")
	v.SetDefault("claim.auto_approval_limit", 10000.0)
	v.SetDefault("claim.excluded_procedure_codes", "")
	v.SetDefault("claim.missing_document_action", "reject")
	v.SetDefault("claim.discrepancy_action", "review")

	// Archive defaults (disabled unless a bucket is set)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "MEDCLAIM_SERVER_PORT",
		"server.read_timeout":            "MEDCLAIM_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "MEDCLAIM_SERVER_WRITE_TIMEOUT",
		"server.environment":             "MEDCLAIM_SERVER_ENVIRONMENT",
		"log.level":                      "MEDCLAIM_LOG_LEVEL",
		"log.format":                     "MEDCLAIM_LOG_FORMAT",
		"cors.allowed_origins":           "MEDCLAIM_CORS_ALLOWED_ORIGINS",
		"llm.provider":                   "MEDCLAIM_LLM_PROVIDER",
		"llm.api_key":                    "MEDCLAIM_LLM_API_KEY",
		"llm.model":                      "MEDCLAIM_LLM_MODEL",
		"llm.timeout_secs":               "MEDCLAIM_LLM_TIMEOUT_SECS",
		"llm.max_retries":                "MEDCLAIM_LLM_MAX_RETRIES",
		"llm.max_concurrent":             "MEDCLAIM_LLM_MAX_CONCURRENT",
		"claim.workers":                  "MEDCLAIM_CLAIM_WORKERS",
		"claim.required_documents":       "MEDCLAIM_CLAIM_REQUIRED_DOCUMENTS",
		"claim.auto_approval_limit":      "MEDCLAIM_CLAIM_AUTO_APPROVAL_LIMIT",
		"claim.excluded_procedure_codes": "MEDCLAIM_CLAIM_EXCLUDED_PROCEDURE_CODES",
		"claim.missing_document_action":  "MEDCLAIM_CLAIM_MISSING_DOCUMENT_ACTION",
		"claim.discrepancy_action":       "MEDCLAIM_CLAIM_DISCREPANCY_ACTION",
		"archive.region":                 "MEDCLAIM_ARCHIVE_REGION",
		"archive.bucket":                 "MEDCLAIM_ARCHIVE_BUCKET",
		"archive.endpoint":               "MEDCLAIM_ARCHIVE_ENDPOINT",
		"archive.access_key":             "MEDCLAIM_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":             "MEDCLAIM_ARCHIVE_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MEDCLAIM_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDCLAIM_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.LLM = LLMConfig{
		Provider:      v.GetString("llm.provider"),
		APIKey:        v.GetString("llm.api_key"),
		Model:         v.GetString("llm.model"),
		TimeoutSecs:   v.GetInt("llm.timeout_secs"),
		MaxRetries:    v.GetInt("llm.max_retries"),
		MaxConcurrent: v.GetInt("llm.max_concurrent"),
	}
	cfg.Claim = ClaimConfig{
		Workers:                v.GetInt("claim.workers"),
		RequiredDocuments:      splitCSV(v.GetString("claim.required_documents")),
		AutoApprovalLimit:      v.GetFloat64("claim.auto_approval_limit"),
		ExcludedProcedureCodes: splitCSV(v.GetString("claim.excluded_procedure_codes")),
		MissingDocumentAction:  v.GetString("claim.missing_document_action"),
		DiscrepancyAction:      v.GetString("claim.discrepancy_action"),
	}
	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
