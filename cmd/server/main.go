package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/config"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/github"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/handlers"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/jira"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/logger"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/secrets"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Initialization error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(secrets.EnvProvider{})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting Jira agent bridge")

	ghClient := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token)
	jiraClient := jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.CloudID, cfg.Jira.Email, cfg.Jira.APIToken, log)

	httpHandler := handlers.New(ghClient, jiraClient, cfg.Webhook.Secret, log)

	httpServer := server.New(httpHandler, log)
	if err := httpServer.Start(cfg); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	waitForShutdown(log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during HTTP server shutdown", err)
	}

	log.Info("Application stopped")
	return nil
}

func waitForShutdown(log *logger.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")
}
