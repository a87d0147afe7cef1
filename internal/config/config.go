package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	AutoMigrate     bool          `mapstructure:"AUTO_MIGRATE"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	AIProvider      string        `mapstructure:"AI_PROVIDER"`
	AIBaseURL       string        `mapstructure:"AI_BASE_URL"`
	AIModel         string        `mapstructure:"AI_MODEL"`
	AIAPIKey        string        `mapstructure:"AI_API_KEY"`
	ProviderTimeout time.Duration `mapstructure:"PROVIDER_TIMEOUT"`

	ReportLanguage    string `mapstructure:"REPORT_LANGUAGE"`
	DefaultPeriodDays int    `mapstructure:"DEFAULT_PERIOD_DAYS"`
	MaxPeriodDays     int    `mapstructure:"MAX_PERIOD_DAYS"`
	PDFFontPath       string `mapstructure:"PDF_FONT_PATH"`
	PDFArtifactDir    string `mapstructure:"PDF_ARTIFACT_DIR"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("AI_PROVIDER", "mock")
	v.SetDefault("AI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("AI_MODEL", "")
	v.SetDefault("AI_API_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT", "60s")
	v.SetDefault("REPORT_LANGUAGE", "English")
	v.SetDefault("DEFAULT_PERIOD_DAYS", 7)
	v.SetDefault("MAX_PERIOD_DAYS", 90)
	v.SetDefault("PDF_FONT_PATH", "")
	v.SetDefault("PDF_ARTIFACT_DIR", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("DATABASE_URL", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
