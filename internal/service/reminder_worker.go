package service

import (
	"context"
	"log"
	"time"

	"coitrack/internal/config"
)

// ReminderWorker periodically runs the reminder dispatch loop.
type ReminderWorker struct {
	service ReminderService
	cfg     *config.ReminderConfig

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewReminderWorker creates a new ReminderWorker.
func NewReminderWorker(service ReminderService, cfg *config.ReminderConfig) *ReminderWorker {
	return &ReminderWorker{
		service: service,
		cfg:     cfg,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start begins the dispatch loop in a background goroutine. The first run
// happens after one full interval so startup is not penalized.
func (w *ReminderWorker) Start() {
	interval := time.Duration(w.cfg.CheckIntervalSecs) * time.Second
	log.Printf("ReminderWorker.Start: dispatching reminders every %s", interval)

	go func() {
		defer close(w.doneCh)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stopCh:
				return
			case <-ticker.C:
				w.runOnce()
			}
		}
	}()
}

// Stop signals the worker to stop and waits for the loop to exit.
func (w *ReminderWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	log.Println("ReminderWorker.Stop: worker stopped")
}

func (w *ReminderWorker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := w.service.DispatchDue(ctx, time.Now().UTC()); err != nil {
		log.Printf("ReminderWorker.runOnce: dispatch failed: %v", err)
	}
}
