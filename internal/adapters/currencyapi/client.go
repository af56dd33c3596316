package currencyapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fxreport/internal/domain"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client reads rate tables served as {day}/v1/currencies/{base}.json,
// each a JSON object of the form {"<base>": {"<currency>": rate, ...}}.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

func (c *Client) GetRates(ctx context.Context, base domain.CurrencyCode, day string) (map[domain.CurrencyCode]float64, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
		}
	}

	u := c.tableURL(base, day)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q on %s: %w", base, day, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for %q on %s: %w", base, day, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d for %q on %s", ErrUnexpectedStatus, resp.StatusCode, base, day)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %q on %s: %w", base, day, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to decode response for %q on %s: invalid json", base, day)
	}

	table := make(map[domain.CurrencyCode]float64)
	gjson.GetBytes(body, string(base)).ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			table[domain.CurrencyCode(strings.ToLower(key.String()))] = value.Float()
		}
		return true
	})
	return table, nil
}

func (c *Client) tableURL(base domain.CurrencyCode, day string) string {
	return fmt.Sprintf("%s%s/v1/currencies/%s.json", c.baseURL, day, base)
}

// NewClient builds a provider client. baseURL is the prefix the day is
// appended to, e.g. "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@".
// A nil limiter disables throttling.
func NewClient(httpClient *http.Client, baseURL string, limiter *rate.Limiter) *Client {
	return &Client{http: httpClient, baseURL: baseURL, limiter: limiter}
}
