package api_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedernacht/olymp/internal/api"
	"github.com/gildedernacht/olymp/internal/config"
	"github.com/gildedernacht/olymp/internal/factory"
	"github.com/gildedernacht/olymp/internal/testutil"
)

func TestServerConfigFrom(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"OLYMP_HOST": "127.0.0.1", "OLYMP_PORT": "9090"})
	require.NoError(t, err)

	sc := api.ServerConfigFrom(cfg)
	assert.Equal(t, "127.0.0.1", sc.Host)
	assert.Equal(t, 9090, sc.Port)
	assert.Equal(t, api.DefaultServerConfig().WriteTimeout, sc.WriteTimeout)
}

func TestServerStartAndShutdown(t *testing.T) {
	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:       testutil.NopLogger(),
		Version:      "1.2.3",
		Clock:        app.Clock,
		AuthService:  app.AuthService,
		EntryService: app.EntryService,
		MaxBodyBytes: 1_000,
	})

	sc := api.DefaultServerConfig()
	sc.Host = "127.0.0.1"
	sc.Port = 0
	server := api.NewServer(router, sc, testutil.NopLogger())
	require.NoError(t, server.Listen())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + server.Addr() + "/status")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "1.2.3")

	require.NoError(t, server.Shutdown(t.Context()))
	require.NoError(t, <-errCh)
}
