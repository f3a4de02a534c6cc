// Copyright 2026 SGNL.ai, Inc.

// Command dcapix-plugin-example demonstrates wiring a Client with the
// default HTTP adapter, loading a discoverable plugin, and issuing a
// single GET request — the Go analog of the teacher's cmd/ldap-adapter
// main.go (env-driven config, a logger, a single registered component)
// trimmed from a long-running gRPC server down to a one-shot CLI demo.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dc-api-x/dcapix/pkg/dcapix"
	"github.com/dc-api-x/dcapix/pkg/dcconfig"
	"github.com/dc-api-x/dcapix/pkg/dclog"
	"github.com/dc-api-x/dcapix/pkg/plugin"

	_ "github.com/dc-api-x/dcapix/cmd/dcapix-plugin-example/internal/exampleplugin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dcapix-plugin-example:", err)
		os.Exit(1)
	}
}

func run() error {
	logCfg, err := dclog.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load log config: %w", err)
	}

	logger := dclog.New(*logCfg)
	defer logger.Sync() //nolint:errcheck

	cfg, err := (&dcconfig.Loader{Dotenv: dcconfig.FileSource{Path: ".env"}}).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.URL == "" {
		cfg.URL = "https://httpbin.org"
	}

	if cfg.Username == "" {
		cfg.Username = "demo"
	}

	if cfg.Password.Reveal() == "" {
		cfg.Password = dcconfig.NewSecret("demo")
	}

	// Leaving Options.Adapter nil lets New build the default HTTP adapter
	// from cfg itself, with the auth provider wired through automatically.
	client, err := dcapix.New(context.Background(), cfg, dcapix.Options{
		Registry: plugin.Global(),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to construct client: %w", err)
	}
	defer client.Close(context.Background())

	resp, err := client.Get(context.Background(), "/get", map[string]string{"demo": "true"})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	encoded, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	fmt.Println(string(encoded))

	return nil
}
