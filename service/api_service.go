// Package service runs the long lived components of the multisig tooling.
package service

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/vocdoni/zk-multisig/api"
	"github.com/vocdoni/zk-multisig/config"
	"github.com/vocdoni/zk-multisig/log"
	"github.com/vocdoni/zk-multisig/storage"
)

// APIService runs the HTTP API over a storage it does not own.
type APIService struct {
	storage *storage.Storage
	conf    *config.Config

	mu     sync.Mutex
	api    *api.API
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAPI creates an API service listening on the host and port of conf and
// assembling batches with its shape.
func NewAPI(storage *storage.Storage, conf *config.Config) *APIService {
	return &APIService{
		storage: storage,
		conf:    conf,
	}
}

// Start binds the listening address and serves the API until Stop is called
// or ctx is done. It fails if the service is already running.
func (as *APIService) Start(ctx context.Context) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.api != nil {
		return fmt.Errorf("service already running")
	}
	a, err := api.New(&api.APIConfig{
		Host:    as.conf.APIHost,
		Port:    as.conf.APIPort,
		Storage: as.storage,
		Shape:   as.conf.Shape(),
	})
	if err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		if err := a.Close(); err != nil {
			log.Warnw("could not close API server", "error", err.Error())
		}
	}()
	as.api, as.cancel, as.done = a, cancel, done
	return nil
}

// Stop closes the API server and waits for it. The storage is left open.
func (as *APIService) Stop() {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.api == nil {
		return
	}
	as.cancel()
	<-as.done
	as.api, as.cancel, as.done = nil, nil, nil
}

// Addr returns the address the API listens on, or nil when stopped.
func (as *APIService) Addr() net.Addr {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.api == nil {
		return nil
	}
	return as.api.Addr()
}

// URL returns the base URL of the running API.
func (as *APIService) URL() (string, error) {
	addr := as.Addr()
	if addr == nil {
		return "", fmt.Errorf("service not running")
	}
	return "http://" + addr.String(), nil
}
