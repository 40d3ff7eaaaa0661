package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workingdad365/gitops-test/internal/config"
)

func TestNewServer_MissingAddress(t *testing.T) {
	cfg := config.Defaults()
	cfg.HTTP.ListenAddr = ""

	server, err := NewServer(cfg, NewRouter(cfg))
	require.Error(t, err)
	assert.Nil(t, server)
	assert.Contains(t, err.Error(), "listen address is required")
}

func TestNewServer_MissingHandler(t *testing.T) {
	server, err := NewServer(config.Defaults(), nil)
	require.Error(t, err)
	assert.Nil(t, server)
	assert.Contains(t, err.Error(), "handler is required")
}

func TestServer_StartStop(t *testing.T) {
	cfg := config.Defaults()
	// Fixed high port; Start does not surface the chosen port for :0.
	cfg.HTTP.ListenAddr = "127.0.0.1:18099"

	server, err := NewServer(cfg, NewRouter(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Start(ctx))
	defer func() {
		assert.NoError(t, server.Stop(ctx))
	}()

	resp, err := http.Get("http://" + server.Addr() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	cfg := config.Defaults()
	cfg.HTTP.ListenAddr = "127.0.0.1:18098"

	first, err := NewServer(cfg, NewRouter(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, first.Start(ctx))
	defer first.Stop(ctx) //nolint:errcheck

	second, err := NewServer(cfg, NewRouter(cfg))
	require.NoError(t, err)
	assert.Error(t, second.Start(ctx))
}
