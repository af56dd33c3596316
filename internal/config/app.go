package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultProviderURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@"

type Provider struct {
	BaseURL           string  `mapstructure:"base_url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Workers           int     `mapstructure:"workers"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Report struct {
	OutputDir       string  `mapstructure:"output_dir"`
	CSVName         string  `mapstructure:"csv_name"`
	PDFName         string  `mapstructure:"pdf_name"`
	ShortWindow     int     `mapstructure:"short_window"`
	LongWindow      int     `mapstructure:"long_window"`
	TopN            int     `mapstructure:"top_n"`
	ChartSizeInches float64 `mapstructure:"chart_size_inches"`
}

type Sample struct {
	Seed uint64 `mapstructure:"seed"`
}

type Schedule struct {
	Every time.Duration `mapstructure:"every"`
}

type Logging struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type AppConfig struct {
	Provider   Provider   `mapstructure:"provider"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Cache      Cache      `mapstructure:"cache"`
	Report     Report     `mapstructure:"report"`
	Sample     Sample     `mapstructure:"sample"`
	Schedule   Schedule   `mapstructure:"schedule"`
	Logging    Logging    `mapstructure:"logging"`
}

// NewFlagSet declares the command line flags. Positional arguments
// (days, sample size, base currency) are left to the caller.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "config.yaml", "path to an optional YAML config file")
	flags.String("out-dir", ".", "directory for the CSV, PDF and chart files")
	flags.Uint64("seed", 0, "seed for currency sampling (0 picks a random seed)")
	flags.Duration("every", 0, "repeat the report on this interval until interrupted (0 runs once)")
	flags.String("provider-url", DefaultProviderURL, "rate provider URL prefix the date is appended to")
	flags.String("log-level", "info", "log level")
	return flags
}

// Init merges defaults, the optional config file, environment variables and
// flags, in increasing priority. A missing .env file or default config file
// is not an error.
func Init(flags *pflag.FlagSet) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("provider.base_url", DefaultProviderURL)
	v.SetDefault("provider.workers", 5)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("cache.max_items", 256)
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.csv_name", "currency_data.csv")
	v.SetDefault("report.pdf_name", "currency_analysis.pdf")
	v.SetDefault("report.short_window", 3)
	v.SetDefault("report.long_window", 10)
	v.SetDefault("report.top_n", 3)
	v.SetDefault("report.chart_size_inches", 8)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || flags.Changed("config") {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// provider env vars
	_ = v.BindEnv("provider.base_url", "FXREPORT_PROVIDER_URL")
	_ = v.BindEnv("provider.requests_per_second", "FXREPORT_PROVIDER_RPS")
	_ = v.BindEnv("provider.workers", "FXREPORT_PROVIDER_WORKERS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// report env vars
	_ = v.BindEnv("report.output_dir", "FXREPORT_OUTPUT_DIR")

	// logging env vars
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("logging.file", "LOG_FILE")

	_ = v.BindPFlag("report.output_dir", flags.Lookup("out-dir"))
	_ = v.BindPFlag("sample.seed", flags.Lookup("seed"))
	_ = v.BindPFlag("schedule.every", flags.Lookup("every"))
	_ = v.BindPFlag("provider.base_url", flags.Lookup("provider-url"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
