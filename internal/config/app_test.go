package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	flags := NewFlagSet("test")
	require.NoError(t, flags.Parse([]string{"--config", ""}))

	cfg, err := Init(flags)
	require.NoError(t, err)

	require.Equal(t, DefaultProviderURL, cfg.Provider.BaseURL)
	require.Equal(t, 5, cfg.Provider.Workers)
	require.Equal(t, 10, cfg.HTTPClient.TimeoutSeconds)
	require.Equal(t, int64(256), cfg.Cache.MaxItems)
	require.Equal(t, ".", cfg.Report.OutputDir)
	require.Equal(t, "currency_data.csv", cfg.Report.CSVName)
	require.Equal(t, "currency_analysis.pdf", cfg.Report.PDFName)
	require.Equal(t, 3, cfg.Report.ShortWindow)
	require.Equal(t, 10, cfg.Report.LongWindow)
	require.Equal(t, 3, cfg.Report.TopN)
	require.Equal(t, uint64(0), cfg.Sample.Seed)
	require.Equal(t, time.Duration(0), cfg.Schedule.Every)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestInit_MissingDefaultConfigFileIsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	flags := NewFlagSet("test")
	require.NoError(t, flags.Parse(nil))

	_, err := Init(flags)
	require.NoError(t, err)
}

func TestInit_MissingExplicitConfigFileFails(t *testing.T) {
	flags := NewFlagSet("test")
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := Init(flags)
	require.ErrorContains(t, err, "error reading config file")
}

func TestInit_FilesEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider:
  base_url: http://from-file/
  workers: 2
report:
  output_dir: /from/file
  top_n: 5
logging:
  level: debug
`), 0o600))
	t.Setenv("HTTP_CLIENT_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "warn")

	flags := NewFlagSet("test")
	require.NoError(t, flags.Parse([]string{"--config", path, "--out-dir", "/from/flag", "--seed", "9", "--every", "2h"}))

	cfg, err := Init(flags)
	require.NoError(t, err)

	require.Equal(t, "http://from-file/", cfg.Provider.BaseURL)
	require.Equal(t, 2, cfg.Provider.Workers)
	require.Equal(t, 3, cfg.HTTPClient.TimeoutSeconds)
	require.Equal(t, "/from/flag", cfg.Report.OutputDir)
	require.Equal(t, 5, cfg.Report.TopN)
	require.Equal(t, uint64(9), cfg.Sample.Seed)
	require.Equal(t, 2*time.Hour, cfg.Schedule.Every)
	require.Equal(t, "warn", cfg.Logging.Level)
}
