package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration values. Everything here is supplied
// through the environment; nothing sensitive lives in source.
type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev_secret"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"PharmacyManagement"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	// AlertRecipient receives stock-out notifications when a manager has no
	// email address on record.
	AlertRecipient string `envconfig:"ALERT_RECIPIENT"`

	GenAIKey     string `envconfig:"GENAI_API_KEY"`
	GenAIModel   string `envconfig:"GENAI_MODEL" default:"gemini-pro"`
	GenAIBaseURL string `envconfig:"GENAI_BASE_URL" default:"https://generativelanguage.googleapis.com"`

	AdvisoryBaseURL  string `envconfig:"ADVISORY_BASE_URL" default:"https://api.fda.gov"`
	TranslateBaseURL string `envconfig:"TRANSLATE_BASE_URL" default:"https://translate.googleapis.com"`

	DrugCatalogPath string `envconfig:"DRUG_CATALOG_PATH" default:"assets/drugs.csv"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN builds the MySQL connection string. multiStatements is required by the
// migration runner.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
