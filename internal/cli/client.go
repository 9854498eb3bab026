package cli

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/olymp"
	"github.com/gildedernacht/olymp/internal/registration"
	"github.com/gildedernacht/olymp/internal/transport"
)

var errNoRegistrationResource = errors.New("no registration resource configured (--registration-resource or OLYMP_REGISTRATION_RESOURCE)")

// clientApp holds the clients a command talks to
type clientApp struct {
	out    *Output
	olymp  *olymp.Client
	logger *slog.Logger

	catalog  catalog.Store
	resource string
}

func newClientApp(cmd *cobra.Command, c *Config) (*clientApp, error) {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var opts []transport.Option
	if c.AdminUser != "" {
		opts = append(opts, transport.WithHeader("Authorization", basicAuth(c.AdminUser, c.AdminPassword)))
	}
	tc := transport.NewClient(c.ServerURL, opts...)

	store, err := loadCatalog(c.Catalog, logger)
	if err != nil {
		return nil, err
	}

	return &clientApp{
		out:      NewOutput(c.Output, cmd.OutOrStdout()),
		olymp:    olymp.NewClient(tc, logger),
		logger:   logger,
		catalog:  store,
		resource: c.RegistrationResource,
	}, nil
}

// registration returns the registration flow for the configured resource
func (a *clientApp) registration() (*registration.Service, error) {
	if a.resource == "" {
		return nil, errNoRegistrationResource
	}
	if !model.ValidUID(a.resource) {
		return nil, errors.New("registration resource must be 64 lowercase hex characters")
	}
	return registration.NewService(a.olymp, a.catalog, a.resource, a.logger), nil
}

// loadCatalog picks the compiled-in catalog, a remote document or a local file
func loadCatalog(source string, logger *slog.Logger) (catalog.Store, error) {
	switch {
	case source == "":
		return catalog.Default(), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return catalog.NewRemote(transport.NewClient(source), "", catalog.DefaultRemoteTTL, logger), nil
	default:
		return catalog.LoadFile(source)
	}
}

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}
