package main

import (
	"github.com/gervaso-assistant/ocremote/internal/auth"
	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/config"
	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
)

// newAPIClient creates an authenticated API client from the configured server
// and stored credentials. Returns a CLIError if the server is not configured
// or no password is available.
//
// This consolidates the repeated pattern of:
//
//	cfg := config.Load()
//	server := cfg.Server()
//	source, password := auth.GetPassword(server.Key())
//	server.Password = password
//	c := client.New(server)
func newAPIClient() (auth.CredentialSource, *client.Client, error) {
	cfg := config.Load()

	server := cfg.Server()
	if server.Host == "" {
		return "", nil, clierrors.NotConfigured()
	}

	source, password := auth.GetPassword(server.Key())
	if password == "" {
		return "", nil, clierrors.NotAuthenticated()
	}

	server.Password = password

	return source, client.New(server), nil
}
