package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"coitrack/internal/config"
	"coitrack/internal/email/noop"
	"coitrack/internal/email/ses"
	"coitrack/internal/extractor"
	claudeext "coitrack/internal/extractor/claude"
	openaiext "coitrack/internal/extractor/openai"
	"coitrack/internal/handler"
	"coitrack/internal/port"
	"coitrack/internal/repository/postgres"
	"coitrack/internal/router"
	"coitrack/internal/service"
	s3storage "coitrack/internal/storage/s3"
)

// @title COITrack API
// @version 1.0
// @description Vendor certificate-of-insurance compliance tracking API
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func registerExtractorProviders() {
	extractor.RegisterProvider("claude", func(cfg *config.ExtractorProviderConfig) (port.CertificateExtractor, error) {
		return claudeext.NewExtractor(cfg), nil
	})
	extractor.RegisterProvider("openai", func(cfg *config.ExtractorProviderConfig) (port.CertificateExtractor, error) {
		return openaiext.NewExtractor(cfg), nil
	})
}

func buildExtractor(cfg *config.ExtractorConfig) (port.CertificateExtractor, error) {
	primary, err := extractor.NewExtractor(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("building primary extractor: %w", err)
	}

	extractors := []port.CertificateExtractor{primary}
	names := []string{cfg.Primary.Provider}

	if secondaryCfg := cfg.SecondaryConfig(); secondaryCfg != nil {
		secondary, err := extractor.NewExtractor(secondaryCfg)
		if err != nil {
			return nil, fmt.Errorf("building secondary extractor: %w", err)
		}
		extractors = append(extractors, secondary)
		names = append(names, secondaryCfg.Provider)
	}

	return extractor.NewFallbackExtractor(extractors, names), nil
}

func buildEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	default:
		return noop.NewNoopSender(), nil
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

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	propertyRepo := postgres.NewPropertyRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	ruleSetRepo := postgres.NewRuleSetRepo(db)
	certRepo := postgres.NewCertificateRepo(db)
	extractionRepo := postgres.NewExtractionRepo(db)
	reminderLogRepo := postgres.NewReminderLogRepo(db)
	reminderCandidateRepo := postgres.NewReminderCandidateRepo(db)
	auditRepo := postgres.NewAuditRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extractor chain
	registerExtractorProviders()
	certExtractor, err := buildExtractor(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}

	// Initialize email sender
	emailSender, err := buildEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to build email sender: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo)
	propertySvc := service.NewPropertyService(propertyRepo)
	vendorSvc := service.NewVendorService(vendorRepo, propertyRepo)
	ruleSetSvc := service.NewRuleSetService(ruleSetRepo)
	certSvc := service.NewCertificateService(certRepo, extractionRepo, vendorRepo, ruleSetRepo, auditRepo, certExtractor, s3Client, &cfg.S3, &cfg.Extractor)
	reportSvc := service.NewReportService(reportRepo)
	reminderSvc := service.NewReminderService(reminderLogRepo, reminderCandidateRepo, emailSender)

	// Background workers
	queueWorker := service.NewExtractQueueWorker(extractionRepo, certSvc, &cfg.Queue)
	queueWorker.Start()
	defer queueWorker.Stop()

	reminderWorker := service.NewReminderWorker(reminderSvc, &cfg.Reminder)
	reminderWorker.Start()
	defer reminderWorker.Stop()

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	tenantH := handler.NewTenantHandler(tenantSvc)
	userH := handler.NewUserHandler(userSvc)
	propertyH := handler.NewPropertyHandler(propertySvc, vendorSvc)
	vendorH := handler.NewVendorHandler(vendorSvc, reminderSvc)
	ruleSetH := handler.NewRuleSetHandler(ruleSetSvc)
	certH := handler.NewCertificateHandler(certSvc)
	extractionH := handler.NewExtractionHandler(certSvc)
	reportH := handler.NewReportHandler(reportSvc, tenantSvc)
	reminderH := handler.NewReminderHandler(reminderSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, tenantH, userH, propertyH, vendorH, ruleSetH, certH, extractionH, reportH, reminderH, healthH)

	// Shut workers down cleanly on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	errCh := make(chan error, 1)

	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		errCh <- r.Run(cfg.Server.Port)
	}()

	select {
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
		return nil
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}
}
