// Package testutil holds helpers shared by tests of several packages.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// RateProvider is an in-memory stand-in for the currency rate CDN.
// Tables are keyed by day ("latest" or YYYY-MM-DD), then base, then currency.
type RateProvider struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]float64
	requests map[string]int
}

func NewRateProvider() *RateProvider {
	return &RateProvider{
		tables:   make(map[string]map[string]map[string]float64),
		requests: make(map[string]int),
	}
}

// SetTable registers the table served for base on day.
func (p *RateProvider) SetTable(day, base string, rates map[string]float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tables[day] == nil {
		p.tables[day] = make(map[string]map[string]float64)
	}
	p.tables[day][base] = rates
}

// Requests returns how many times the table of base on day was requested.
func (p *RateProvider) Requests(day, base string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[day+"/"+base]
}

// TotalRequests counts every table request served or refused.
func (p *RateProvider) TotalRequests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.requests {
		total += n
	}
	return total
}

func (p *RateProvider) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/{day}/v1/currencies/{file}", p.serveTable)
	return router
}

// Start serves the provider until the test ends and returns the URL prefix
// the day is appended to.
func (p *RateProvider) Start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(p.Router())
	t.Cleanup(srv.Close)
	return srv.URL + "/"
}

func (p *RateProvider) serveTable(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	file := chi.URLParam(r, "file")
	if !strings.HasSuffix(file, ".json") {
		http.NotFound(w, r)
		return
	}
	base := strings.TrimSuffix(file, ".json")

	p.mu.Lock()
	p.requests[day+"/"+base]++
	rates, ok := p.tables[day][base]
	p.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"date": day,
		base:   rates,
	})
}
