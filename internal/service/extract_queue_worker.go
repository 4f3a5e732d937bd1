package service

import (
	"context"
	"log"
	"sync"
	"time"

	"coitrack/internal/config"
	"coitrack/internal/port"
)

// ExtractQueueWorker polls for rate-limit-queued extractions and re-runs them
// once their retry_after has passed. Concurrency is bounded by a semaphore so
// a burst of queued work cannot stampede the extraction providers.
type ExtractQueueWorker struct {
	extRepo     port.ExtractionRepository
	certService CertificateService
	cfg         *config.QueueConfig

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewExtractQueueWorker creates a new ExtractQueueWorker.
func NewExtractQueueWorker(extRepo port.ExtractionRepository, certService CertificateService, cfg *config.QueueConfig) *ExtractQueueWorker {
	return &ExtractQueueWorker{
		extRepo:     extRepo,
		certService: certService,
		cfg:         cfg,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the polling loop in a background goroutine.
func (w *ExtractQueueWorker) Start() {
	interval := time.Duration(w.cfg.PollIntervalSecs) * time.Second
	log.Printf("ExtractQueueWorker.Start: polling every %s (concurrency %d, max retries %d)",
		interval, w.cfg.Concurrency, w.cfg.MaxRetries)

	go func() {
		defer close(w.doneCh)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		sem := make(chan struct{}, w.cfg.Concurrency)
		var wg sync.WaitGroup

		for {
			select {
			case <-w.stopCh:
				wg.Wait()
				return
			case <-ticker.C:
				w.drainQueue(sem, &wg)
			}
		}
	}()
}

// Stop signals the worker to stop and waits for in-flight extractions.
func (w *ExtractQueueWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	log.Println("ExtractQueueWorker.Stop: worker stopped")
}

func (w *ExtractQueueWorker) drainQueue(sem chan struct{}, wg *sync.WaitGroup) {
	available := w.cfg.Concurrency - len(sem)
	if available <= 0 {
		return
	}

	claimCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	exts, err := w.extRepo.ClaimQueued(claimCtx, time.Now().UTC(), available)
	cancel()
	if err != nil {
		log.Printf("ExtractQueueWorker.drainQueue: failed to claim queued extractions: %v", err)
		return
	}
	if len(exts) == 0 {
		return
	}
	log.Printf("ExtractQueueWorker.drainQueue: claimed %d queued extraction(s)", len(exts))

	for i := range exts {
		ext := exts[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			ext.ExtractAttempts++
			if err := w.extRepo.UpdateResults(ctx, &ext); err != nil {
				log.Printf("ExtractQueueWorker: failed to bump attempts for %s: %v", ext.ID, err)
				return
			}
			w.certService.ProcessExtraction(ctx, &ext, w.cfg.MaxRetries)
		}()
	}
}
