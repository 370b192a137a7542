package provider

import (
	"log/slog"
	"sync"

	"github.com/dmagro/evm-rpc-client/internal/config"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// ClientPool hands out one rpc.Client per configured provider so repeated
// lookups share an http.Client. Safe for concurrent use.
type ClientPool struct {
	logger  *slog.Logger
	clients map[string]*rpc.Client
	mu      sync.RWMutex
}

// NewClientPool returns an empty pool whose clients log to logger.
func NewClientPool(logger *slog.Logger) *ClientPool {
	return &ClientPool{
		logger:  logger,
		clients: make(map[string]*rpc.Client),
	}
}

// Get returns the client for p, creating it on first use.
func (cp *ClientPool) Get(p config.Provider) *rpc.Client {
	cp.mu.RLock()
	if client, ok := cp.clients[p.Name]; ok {
		cp.mu.RUnlock()
		return client
	}
	cp.mu.RUnlock()

	cp.mu.Lock()
	defer cp.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock.
	if client, ok := cp.clients[p.Name]; ok {
		return client
	}

	client := rpc.NewClient(rpc.ClientConfig{
		Name:    p.Name,
		URL:     p.URL,
		Timeout: p.Timeout,
		Logger:  cp.logger,
	})
	cp.clients[p.Name] = client
	return client
}

// Len reports how many clients have been created.
func (cp *ClientPool) Len() int {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	return len(cp.clients)
}
