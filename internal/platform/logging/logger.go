package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"fxreport/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the standard logrus logger. When a log file is set,
// output is duplicated into it with size based rotation. The returned
// function releases the file.
func Setup(cfg config.Logging) func() {
	if parsedLvl, err := logrus.ParseLevel(cfg.Level); err != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}

	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	if cfg.File == "" {
		logrus.SetOutput(os.Stdout)
		return func() {}
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return func() {
		logrus.SetOutput(os.Stdout)
		_ = rotating.Close()
	}
}
