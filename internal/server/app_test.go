package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ericmlantz/backend/internal/logging"
	"github.com/ericmlantz/backend/internal/server/config"
	"github.com/ericmlantz/backend/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	*repomanager.MemoryRepositoryManager
	closed bool
}

func (c *closeRecorder) Close(context.Context) error {
	c.closed = true
	return nil
}

func stubManager(t *testing.T, rm repomanager.RepositoryManager, err error) {
	t.Helper()
	orig := newRepositoryManager
	newRepositoryManager = func(context.Context, *config.Config) (repomanager.RepositoryManager, error) {
		return rm, err
	}
	t.Cleanup(func() { newRepositoryManager = orig })
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.StorageBackend = config.BackendMemory
	c.PasswordHashCost = 4
	return c
}

func TestNewApp_StorageError(t *testing.T) {
	stubManager(t, nil, errors.New("dial tcp: refused"))

	_, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage init error")
}

func TestRun_ClosesStorageOnCancel(t *testing.T) {
	rec := &closeRecorder{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
	stubManager(t, rec, nil)

	app, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	assert.True(t, rec.closed)
}
