package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"coitrack/internal/compliance"
	"coitrack/internal/config"
	"coitrack/internal/domain"
	"coitrack/internal/extractor"
	"coitrack/internal/port"
)

const defaultMaxExtractAttempts = 5

// UploadCertificateInput is the DTO for certificate upload requests.
type UploadCertificateInput struct {
	TenantID   uuid.UUID
	VendorID   uuid.UUID
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// UpdateReviewInput is the DTO for updating an extraction's review status.
type UpdateReviewInput struct {
	TenantID     uuid.UUID
	ExtractionID uuid.UUID
	ReviewerID   uuid.UUID
	Status       domain.ReviewStatus
	Notes        string
}

// CertificateService manages certificate uploads and the extraction pipeline:
// AI-vision extraction, compliance scoring, and regression detection.
type CertificateService interface {
	UploadAndExtract(ctx context.Context, input UploadCertificateInput) (*domain.Certificate, *domain.Extraction, error)
	GetCertificate(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Certificate, error)
	ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Certificate, int, error)
	GetDownloadURL(ctx context.Context, tenantID, certID uuid.UUID) (string, error)
	DeleteCertificate(ctx context.Context, tenantID, certID uuid.UUID) error
	GetExtraction(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error)
	ListExtractionsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error)
	ListReviewQueue(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error)
	UpdateReview(ctx context.Context, input UpdateReviewInput) (*domain.Extraction, error)
	RetryExtraction(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error)
	ListAuditLog(ctx context.Context, tenantID, extractionID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
	ProcessExtraction(ctx context.Context, ext *domain.Extraction, maxAttempts int)
}

type certificateService struct {
	certRepo      port.CertificateRepository
	extRepo       port.ExtractionRepository
	vendorRepo    port.VendorRepository
	ruleSetRepo   port.RuleSetRepository
	auditRepo     port.AuditRepository
	certExtractor port.CertificateExtractor
	storage       port.ObjectStorage
	s3Cfg         *config.S3Config
	extractorCfg  *config.ExtractorConfig
}

// NewCertificateService creates a new CertificateService implementation.
func NewCertificateService(
	certRepo port.CertificateRepository,
	extRepo port.ExtractionRepository,
	vendorRepo port.VendorRepository,
	ruleSetRepo port.RuleSetRepository,
	auditRepo port.AuditRepository,
	certExtractor port.CertificateExtractor,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
	extractorCfg *config.ExtractorConfig,
) CertificateService {
	return &certificateService{
		certRepo:      certRepo,
		extRepo:       extRepo,
		vendorRepo:    vendorRepo,
		ruleSetRepo:   ruleSetRepo,
		auditRepo:     auditRepo,
		certExtractor: certExtractor,
		storage:       storage,
		s3Cfg:         s3Cfg,
		extractorCfg:  extractorCfg,
	}
}

// audit records an extraction mutation. Failures are logged but never block
// business logic.
func (s *certificateService) audit(ctx context.Context, tenantID, extractionID uuid.UUID, userID *uuid.UUID, action domain.AuditAction, changes json.RawMessage) {
	if s.auditRepo == nil {
		return
	}
	if changes == nil {
		changes = json.RawMessage("{}")
	}
	entry := &domain.AuditEntry{
		TenantID:     tenantID,
		ExtractionID: extractionID,
		UserID:       userID,
		Action:       string(action),
		Changes:      changes,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("certificateService.audit: failed to write audit entry for %s/%s: %v", action, extractionID, err)
	}
}

func (s *certificateService) UploadAndExtract(ctx context.Context, input UploadCertificateInput) (*domain.Certificate, *domain.Extraction, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, input.TenantID, input.VendorID)
	if err != nil {
		return nil, nil, err
	}
	if !vendor.IsActive {
		return nil, nil, domain.ErrVendorInactive
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.s3Cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seeking file: %w", err)
	}

	certID := uuid.New()
	s3Key := fmt.Sprintf("tenants/%s/vendors/%s/certificates/%s/%s",
		input.TenantID, input.VendorID, certID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	cert := &domain.Certificate{
		TenantID:     input.TenantID,
		VendorID:     input.VendorID,
		UploadedBy:   input.UploadedBy,
		FileName:     certID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.s3Cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		Status:       domain.FileStatusPending,
	}

	log.Printf("certificateService.UploadAndExtract: uploading %s (%s, %d bytes) for vendor %s (tenant %s)",
		input.Header.Filename, contentType, input.Header.Size, input.VendorID, input.TenantID)

	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, nil, fmt.Errorf("creating certificate: %w", err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("certificateService.UploadAndExtract: S3 upload failed for certificate %s: %v", cert.ID, err)
		_ = s.certRepo.UpdateStatus(ctx, cert.TenantID, cert.ID, domain.FileStatusFailed)
		return nil, nil, domain.ErrUploadFailed
	}
	if err := s.certRepo.UpdateStatus(ctx, cert.TenantID, cert.ID, domain.FileStatusUploaded); err != nil {
		return nil, nil, fmt.Errorf("updating certificate status: %w", err)
	}
	cert.Status = domain.FileStatusUploaded

	extRecord := &domain.Extraction{
		TenantID:          input.TenantID,
		VendorID:          input.VendorID,
		CertificateID:     cert.ID,
		ExtractedFields:   json.RawMessage("{}"),
		ExtractionStatus:  domain.ExtractionStatusPending,
		ComplianceReasons: json.RawMessage("[]"),
		Regressions:       json.RawMessage("[]"),
		ReviewStatus:      domain.ReviewStatusPending,
		CreatedBy:         input.UploadedBy,
	}
	if err := s.extRepo.Create(ctx, extRecord); err != nil {
		return nil, nil, fmt.Errorf("creating extraction: %w", err)
	}

	changes, _ := json.Marshal(map[string]interface{}{
		"certificate_id": cert.ID, "vendor_id": input.VendorID,
	})
	s.audit(ctx, extRecord.TenantID, extRecord.ID, &input.UploadedBy, domain.AuditExtractionCreated, changes)

	// Copy before launching goroutine so the caller's value is independent
	// of background work.
	result := *extRecord

	go s.extractInBackground(extRecord.ID, extRecord.TenantID)

	return cert, &result, nil
}

func (s *certificateService) extractInBackground(extractionID, tenantID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("certificateService.extractInBackground: starting extraction %s", extractionID)

	ext, err := s.extRepo.GetByID(ctx, tenantID, extractionID)
	if err != nil {
		log.Printf("certificateService.extractInBackground: failed to get extraction %s: %v", extractionID, err)
		return
	}
	ext.ExtractAttempts++
	ext.ExtractionStatus = domain.ExtractionStatusProcessing
	if err := s.extRepo.UpdateResults(ctx, ext); err != nil {
		log.Printf("certificateService.extractInBackground: failed to set processing status for %s: %v", extractionID, err)
		return
	}

	s.ProcessExtraction(ctx, ext, defaultMaxExtractAttempts)
}

// ProcessExtraction performs the core pipeline: S3 download, AI extraction,
// error handling (with rate-limit queueing), compliance scoring against the
// vendor's trade rule set, and regression detection against the prior
// extraction. It is called by both extractInBackground and the queue worker.
// The extraction must already be in processing status with ExtractAttempts
// incremented.
func (s *certificateService) ProcessExtraction(ctx context.Context, ext *domain.Extraction, maxAttempts int) {
	cert, err := s.certRepo.GetByID(ctx, ext.TenantID, ext.CertificateID)
	if err != nil {
		s.failExtraction(ctx, ext, fmt.Sprintf("looking up certificate: %v", err))
		return
	}

	fileBytes, err := s.storage.Download(ctx, cert.S3Bucket, cert.S3Key)
	if err != nil {
		s.failExtraction(ctx, ext, fmt.Sprintf("downloading certificate: %v", err))
		return
	}

	output, err := s.certExtractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		ContentType: cert.ContentType,
	})
	if err != nil {
		s.handleExtractError(ctx, ext, err, maxAttempts)
		return
	}

	var fields compliance.ExtractedFields
	if err := json.Unmarshal(output.Fields, &fields); err != nil {
		s.failExtraction(ctx, ext, fmt.Sprintf("decoding extracted fields: %v", err))
		return
	}

	vendor, err := s.vendorRepo.GetByID(ctx, ext.TenantID, ext.VendorID)
	if err != nil {
		s.failExtraction(ctx, ext, fmt.Sprintf("looking up vendor: %v", err))
		return
	}
	rules, err := s.ruleSetRepo.GetByTradeType(ctx, ext.TenantID, vendor.TradeType)
	if err != nil {
		if errors.Is(err, domain.ErrRuleSetNotFound) {
			s.failExtraction(ctx, ext, fmt.Sprintf("no compliance rule set configured for trade type %q", vendor.TradeType))
			return
		}
		s.failExtraction(ctx, ext, fmt.Sprintf("looking up rule set: %v", err))
		return
	}

	score := compliance.Score(&fields, rules, time.Now().UTC())
	diff := s.diffAgainstPrevious(ctx, ext, &fields)

	now := time.Now().UTC()
	reasonsJSON, _ := json.Marshal(score.Reasons)
	regressionsJSON, _ := json.Marshal(diff.Regressions)

	ext.ExtractedFields = output.Fields
	ext.ConfidenceScore = output.ConfidenceScore
	ext.ExtractorModel = output.ModelUsed
	ext.ExtractorPrompt = output.PromptUsed
	ext.ExtractionStatus = domain.ExtractionStatusCompleted
	ext.ExtractionError = ""
	ext.ExtractedAt = &now
	ext.RetryAfter = nil
	ext.ComplianceStatus = score.Status
	ext.ComplianceReasons = reasonsJSON
	ext.NextExpiryDate = nil
	if score.NextExpiryDate != nil {
		t := score.NextExpiryDate.Time
		ext.NextExpiryDate = &t
	}
	ext.HasRegression = diff.HasRegression
	ext.Regressions = regressionsJSON

	// A regression or a shaky extraction goes to the review queue; everything
	// else stays pending until a reviewer gets to it.
	ext.ReviewStatus = domain.ReviewStatusPending
	if diff.HasRegression || output.ConfidenceScore < s.extractorCfg.ConfidenceThreshold {
		ext.ReviewStatus = domain.ReviewStatusNeedsReview
	}

	if err := s.extRepo.UpdateResults(ctx, ext); err != nil {
		log.Printf("certificateService.ProcessExtraction: failed to save results for %s: %v", ext.ID, err)
		return
	}

	completedChanges, _ := json.Marshal(map[string]interface{}{
		"extractor_model": ext.ExtractorModel, "confidence": ext.ConfidenceScore, "attempt": ext.ExtractAttempts,
	})
	s.audit(ctx, ext.TenantID, ext.ID, nil, domain.AuditExtractionCompleted, completedChanges)

	scoredChanges, _ := json.Marshal(map[string]interface{}{
		"compliance_status": string(score.Status), "reasons": score.Reasons,
	})
	s.audit(ctx, ext.TenantID, ext.ID, nil, domain.AuditExtractionScored, scoredChanges)

	if diff.HasRegression {
		regressionChanges, _ := json.Marshal(map[string]interface{}{"regressions": diff.Regressions})
		s.audit(ctx, ext.TenantID, ext.ID, nil, domain.AuditRegressionFlagged, regressionChanges)

		note := fmt.Sprintf("[%s] Coverage regression detected: %s",
			now.Format("2006-01-02"), strings.Join(diff.Regressions, "; "))
		if err := s.vendorRepo.AppendNote(ctx, ext.TenantID, ext.VendorID, note); err != nil {
			log.Printf("certificateService.ProcessExtraction: failed to append vendor note for %s: %v", ext.VendorID, err)
		}
	}

	log.Printf("certificateService.ProcessExtraction: extraction %s completed (status=%s, regression=%t)",
		ext.ID, score.Status, diff.HasRegression)
}

// diffAgainstPrevious loads the vendor's most recent completed extraction and
// compares coverage. A vendor's first certificate never regresses.
func (s *certificateService) diffAgainstPrevious(ctx context.Context, ext *domain.Extraction, current *compliance.ExtractedFields) compliance.DiffResult {
	prev, err := s.extRepo.GetLatestCompleted(ctx, ext.TenantID, ext.VendorID, ext.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("certificateService.diffAgainstPrevious: lookup failed for vendor %s: %v", ext.VendorID, err)
		}
		return compliance.Diff(current, nil)
	}

	var prevFields compliance.ExtractedFields
	if err := json.Unmarshal(prev.ExtractedFields, &prevFields); err != nil {
		log.Printf("certificateService.diffAgainstPrevious: decoding prior fields for %s: %v", prev.ID, err)
		return compliance.Diff(current, nil)
	}
	return compliance.Diff(current, &prevFields)
}

// handleExtractError checks if the error is a rate limit and queues the
// extraction for retry if under the max attempts threshold. Otherwise, marks
// extraction as permanently failed.
func (s *certificateService) handleExtractError(ctx context.Context, ext *domain.Extraction, extractErr error, maxAttempts int) {
	var rlErr *extractor.RateLimitError
	if errors.As(extractErr, &rlErr) && ext.ExtractAttempts < maxAttempts {
		retryAt := time.Now().Add(rlErr.RetryAfter)
		errMsg := fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider)
		if err := s.extRepo.MarkQueued(ctx, ext.TenantID, ext.ID, retryAt, errMsg); err != nil {
			log.Printf("certificateService.handleExtractError: failed to queue extraction %s: %v", ext.ID, err)
			return
		}
		queueChanges, _ := json.Marshal(map[string]interface{}{
			"retry_after": retryAt.Format(time.RFC3339), "attempt": ext.ExtractAttempts,
		})
		s.audit(ctx, ext.TenantID, ext.ID, nil, domain.AuditExtractionQueued, queueChanges)
		log.Printf("certificateService.handleExtractError: extraction %s queued for retry after %s", ext.ID, retryAt.Format(time.RFC3339))
		return
	}
	s.failExtraction(ctx, ext, fmt.Sprintf("extracting certificate: %v", extractErr))
}

func (s *certificateService) failExtraction(ctx context.Context, ext *domain.Extraction, errMsg string) {
	log.Printf("certificateService.failExtraction: extraction %s failed: %s", ext.ID, errMsg)
	if err := s.extRepo.MarkFailed(ctx, ext.TenantID, ext.ID, errMsg); err != nil {
		log.Printf("certificateService.failExtraction: failed to update status for %s: %v", ext.ID, err)
	}
	failChanges, _ := json.Marshal(map[string]interface{}{"error": errMsg, "attempt": ext.ExtractAttempts})
	s.audit(ctx, ext.TenantID, ext.ID, nil, domain.AuditExtractionFailed, failChanges)
}

func (s *certificateService) GetCertificate(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Certificate, error) {
	return s.certRepo.GetByID(ctx, tenantID, certID)
}

func (s *certificateService) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Certificate, int, error) {
	return s.certRepo.ListByVendor(ctx, tenantID, vendorID, offset, limit)
}

func (s *certificateService) GetDownloadURL(ctx context.Context, tenantID, certID uuid.UUID) (string, error) {
	cert, err := s.certRepo.GetByID(ctx, tenantID, certID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, cert.S3Bucket, cert.S3Key, s.s3Cfg.PresignExpiry)
}

func (s *certificateService) DeleteCertificate(ctx context.Context, tenantID, certID uuid.UUID) error {
	cert, err := s.certRepo.GetByID(ctx, tenantID, certID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, cert.S3Bucket, cert.S3Key); err != nil {
		log.Printf("certificateService.DeleteCertificate: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.certRepo.Delete(ctx, tenantID, certID)
}

func (s *certificateService) GetExtraction(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error) {
	return s.extRepo.GetByID(ctx, tenantID, extractionID)
}

func (s *certificateService) ListExtractionsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error) {
	return s.extRepo.ListByVendor(ctx, tenantID, vendorID, offset, limit)
}

func (s *certificateService) ListReviewQueue(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error) {
	return s.extRepo.ListByReviewStatus(ctx, tenantID, domain.ReviewStatusNeedsReview, offset, limit)
}

func (s *certificateService) UpdateReview(ctx context.Context, input UpdateReviewInput) (*domain.Extraction, error) {
	if !domain.ValidReviewStatuses[input.Status] {
		return nil, domain.ErrInvalidReviewStatus
	}

	ext, err := s.extRepo.GetByID(ctx, input.TenantID, input.ExtractionID)
	if err != nil {
		return nil, err
	}
	if ext.ExtractionStatus != domain.ExtractionStatusCompleted {
		return nil, domain.ErrExtractionNotCompleted
	}

	now := time.Now().UTC()
	ext.ReviewStatus = input.Status
	ext.ReviewedBy = &input.ReviewerID
	ext.ReviewedAt = &now
	ext.ReviewerNotes = input.Notes

	if err := s.extRepo.UpdateReviewStatus(ctx, ext); err != nil {
		return nil, fmt.Errorf("updating review status: %w", err)
	}

	reviewChanges, _ := json.Marshal(map[string]interface{}{"status": string(input.Status), "notes": input.Notes})
	s.audit(ctx, input.TenantID, input.ExtractionID, &input.ReviewerID, domain.AuditExtractionReviewed, reviewChanges)

	return ext, nil
}

// RetryExtraction re-runs a failed extraction in the background.
func (s *certificateService) RetryExtraction(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error) {
	ext, err := s.extRepo.GetByID(ctx, tenantID, extractionID)
	if err != nil {
		return nil, err
	}
	if ext.ExtractionStatus != domain.ExtractionStatusFailed {
		return nil, domain.ErrExtractionAlreadyExists
	}

	retryChanges, _ := json.Marshal(map[string]interface{}{"attempt": ext.ExtractAttempts + 1})
	s.audit(ctx, tenantID, extractionID, nil, domain.AuditExtractionRetried, retryChanges)

	go s.extractInBackground(extractionID, tenantID)

	return ext, nil
}

func (s *certificateService) ListAuditLog(ctx context.Context, tenantID, extractionID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	return s.auditRepo.ListByExtraction(ctx, tenantID, extractionID, offset, limit)
}
