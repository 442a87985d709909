package main

import (
	"fmt"
	"log/slog"

	"github.com/helixml/intervalgen"
	"github.com/helixml/intervalgen/internal/config"
)

// newClient builds a Client from the generation and cache parts of AppConfig.
func newClient(cfg config.AppConfig, logger *slog.Logger) (*intervalgen.Client, error) {
	client, err := intervalgen.New(
		intervalgen.WithAppConfig(cfg),
		intervalgen.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create intervalgen client: %w", err)
	}
	return client, nil
}

func closeClient(client *intervalgen.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close intervalgen client", slog.Any("error", err))
	}
}
