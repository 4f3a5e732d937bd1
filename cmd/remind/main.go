// Command remind runs one reminder dispatch pass across all tenants and
// exits. Intended for cron-style scheduling as an alternative to the
// in-process reminder worker.
// Usage: go run ./cmd/remind
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"coitrack/internal/config"
	"coitrack/internal/email/noop"
	"coitrack/internal/email/ses"
	"coitrack/internal/port"
	"coitrack/internal/repository/postgres"
	"coitrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to build SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	reminderSvc := service.NewReminderService(
		postgres.NewReminderLogRepo(db),
		postgres.NewReminderCandidateRepo(db),
		sender,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	sent, err := reminderSvc.DispatchDue(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	log.Printf("dispatched %d reminder(s)", sent)
	return nil
}
