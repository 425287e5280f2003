package ai

import (
	"net/http"
	"sync"
	"time"

	"github.com/codedjinn/djinn/internal/domain"
)

const clientTimeout = 60 * time.Second

type clientKey struct {
	endpoint string
	model    string
}

// ClientCache reuses HTTP clients across generator instances, keyed by
// (endpoint, model). It is constructor-injected through the dependency
// graph; there is no package-level state.
type ClientCache struct {
	mu      sync.Mutex
	clients map[clientKey]*http.Client
}

// NewClientCache builds an empty cache.
func NewClientCache() *ClientCache {
	return &ClientCache{clients: make(map[clientKey]*http.Client)}
}

// For returns the cached client for a model, creating one on first use.
func (c *ClientCache) For(model domain.ModelDefinition) *http.Client {
	key := clientKey{endpoint: model.Endpoint, model: model.ModelID}

	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[key]; ok {
		return client
	}
	client := &http.Client{Timeout: clientTimeout}
	c.clients[key] = client
	return client
}

// Clear drops all cached clients.
func (c *ClientCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients = make(map[clientKey]*http.Client)
}

// Len reports the number of cached clients (for tests and diagnostics).
func (c *ClientCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
