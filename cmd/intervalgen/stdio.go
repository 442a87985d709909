package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/intervalgen/internal/log"
	"github.com/helixml/intervalgen/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This allows AI assistants to generate calendar intervals through the
generate_intervals tool. Configuration is loaded from environment variables
and .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// stdout carries the protocol.
	slogger := log.NewStderrLogger(cfg).Slog()
	slogger.Info("starting MCP server", slog.String("version", version))

	client, err := newClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeClient(client, slogger)

	return mcp.NewServer(client.Schedules, version, slogger).ServeStdio()
}
