// Package main is the entry point for the legalcn MCP server.
//
// The binary speaks the Model Context Protocol over stdio: stdout carries
// the JSON-RPC stream and stderr carries logs. The startup sequence is:
//
// 1. Initialize the logging system
// 2. Load configuration (file, then environment overrides)
// 3. Build the rule store, logic engine and protocol server
// 4. Serve on stdio until the client disconnects
package main

import (
	"fmt"
	"os"

	"legalcn/internal/config"
	"legalcn/internal/logging"
	"legalcn/internal/mcp"

	"github.com/spf13/cobra"
)

const appName = "legalcn"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "中国合同法法律助手 MCP 服务器",
		Long: `Legalcn is an MCP server providing Chinese contract law assistance:
contract risk scanning, clause compliance analysis, damages calculation
and civil-code reference resources.

It communicates over stdio using JSON-RPC 2.0; connect it to any MCP
client. All logging goes to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, config.DefaultServerVersion)
		},
	})

	return cmd
}

func serve(configPath string) error {
	appLogger := logging.NewAppLogger()

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		appLogger.Error("Error loading config", "error", err)
		return err
	}

	appLogger.Info("Configuration loaded successfully.",
		"server", cfg.ServerName,
		"version", cfg.ServerVersion,
	)
	if !cfg.HasAPIKey() {
		appLogger.Info("No enterprise data API key configured, running in offline mode")
	}

	server := mcp.NewServer(cfg, appLogger)
	if err := server.Start(); err != nil {
		appLogger.Error("MCP server exited with error", "error", err)
		return err
	}
	return nil
}
