package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	LogLevel  string
	LogFormat string // "json" or "text"

	// Completion provider
	LLMBackend   string // "mock", "rest" or "genai"
	GeminiAPIKey string
	GeminiModel  string
	GeminiURL    string

	// Transcript store
	StorageBackend string // "memory", "firestore" or "mongo"
	GCPProjectID   string
	MongoURI       string
	MongoDatabase  string

	// Mail provider
	MailBackend      string // "smtp" or "log"
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	GmailAppPassword string
	OperatorEmail    string
	NoReplyEmail     string
	CVPath           string

	AdminToken string
	APIBaseURL string // used by the CLI
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// LoadDotEnv loads a .env file if one exists. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads all env vars and builds the config
func Load() (*Config, error) {
	var mode Mode
	switch getEnv("PORTFOLIO_MODE", "local") {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	defaultLLM, defaultStorage, defaultMail := "mock", "memory", "log"
	if mode == ModeGCP {
		defaultLLM, defaultStorage, defaultMail = "rest", "firestore", "smtp"
	}

	operator := getEnv("OPERATOR_EMAIL", "rodriguezdaniel048@gmail.com")

	cfg := &Config{
		Mode: mode,

		Port: getEnv("PORT", "8080"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		LLMBackend:   getEnv("LLM_BACKEND", defaultLLM),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		StorageBackend: getEnv("STORAGE_BACKEND", defaultStorage),
		GCPProjectID:   getEnv("GCP_PROJECT", ""),
		MongoURI:       getEnv("MONGODB_URI", ""),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "portfolio"),

		MailBackend:      getEnv("MAIL_BACKEND", defaultMail),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getIntEnv("SMTP_PORT", 587),
		SMTPUser:         getEnv("SMTP_USER", operator),
		GmailAppPassword: getEnv("GMAIL_APP_PASSWORD", ""),
		OperatorEmail:    operator,
		NoReplyEmail:     getEnv("NO_REPLY_EMAIL", "no-reply@danielrf.com"),
		CVPath:           getEnv("CV_PATH", "public/cv.pdf"),

		AdminToken: getEnv("ADMIN_TOKEN", ""),
		APIBaseURL: getEnv("PORTFOLIO_API_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every selected backend has its credentials.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLMBackend {
	case "mock":
	case "rest", "genai":
		if c.GeminiAPIKey == "" {
			errs = append(errs, fmt.Errorf("GEMINI_API_KEY must be set for LLM_BACKEND=%s", c.LLMBackend))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_BACKEND %q", c.LLMBackend))
	}

	switch c.StorageBackend {
	case "memory":
	case "firestore":
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("GCP_PROJECT must be set for firestore storage"))
		}
	case "mongo":
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI must be set for mongo storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	switch c.MailBackend {
	case "log":
	case "smtp":
		if c.GmailAppPassword == "" {
			errs = append(errs, errors.New("GMAIL_APP_PASSWORD must be set for smtp mail"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_BACKEND %q", c.MailBackend))
	}

	return errors.Join(errs...)
}
