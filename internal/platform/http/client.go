package http

import (
	"fxreport/internal/config"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// NewClient returns the outbound client used for the rate provider.
// Non-positive timeouts fall back to 10 seconds.
func NewClient(cfg config.HTTPClient) *http.Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
