package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"coitrack/internal/compliance"
	"coitrack/internal/domain"
	"coitrack/internal/port"
)

// expiredResendWindow is how long an expired_weekly reminder suppresses the
// next one for the same vendor.
const expiredResendWindow = 7 * 24 * time.Hour

// ReminderService stages and dispatches expiry reminder emails to vendor
// contacts. Pre-expiry stages fire once per vendor ever; the expired stage
// repeats weekly until a fresh certificate lands.
type ReminderService interface {
	// DispatchDue evaluates every eligible vendor against now, sends the
	// reminders whose stage is due and not deduplicated, and logs each
	// successful send. It returns the number of reminders sent.
	DispatchDue(ctx context.Context, now time.Time) (int, error)
	// DispatchDueForTenant is DispatchDue scoped to a single tenant.
	DispatchDueForTenant(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error)
	ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.ReminderLog, int, error)
}

type reminderService struct {
	logRepo       port.ReminderLogRepository
	candidateRepo port.ReminderCandidateRepository
	sender        port.EmailSender
}

// NewReminderService creates a new ReminderService implementation.
func NewReminderService(logRepo port.ReminderLogRepository, candidateRepo port.ReminderCandidateRepository, sender port.EmailSender) ReminderService {
	return &reminderService{
		logRepo:       logRepo,
		candidateRepo: candidateRepo,
		sender:        sender,
	}
}

func (s *reminderService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.candidateRepo.ListCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing reminder candidates: %w", err)
	}
	return s.dispatch(ctx, candidates, now)
}

func (s *reminderService) DispatchDueForTenant(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error) {
	candidates, err := s.candidateRepo.ListCandidatesByTenant(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("listing reminder candidates: %w", err)
	}
	return s.dispatch(ctx, candidates, now)
}

func (s *reminderService) dispatch(ctx context.Context, candidates []domain.ReminderCandidate, now time.Time) (int, error) {
	sent := 0
	for i := range candidates {
		ok, err := s.dispatchOne(ctx, &candidates[i], now)
		if err != nil {
			// One vendor's failure must not starve the rest of the run.
			log.Printf("reminderService.dispatch: vendor %s: %v", candidates[i].VendorID, err)
			continue
		}
		if ok {
			sent++
		}
	}
	log.Printf("reminderService.dispatch: evaluated %d candidate(s), sent %d reminder(s)", len(candidates), sent)
	return sent, nil
}

// dispatchOne evaluates a single candidate. Returns true when a reminder was
// sent and logged.
func (s *reminderService) dispatchOne(ctx context.Context, c *domain.ReminderCandidate, now time.Time) (bool, error) {
	stage, due := compliance.ComputeStage(c.ExpiryDate, now)
	if !due {
		return false, nil
	}

	suppressed, err := s.isSuppressed(ctx, c, stage, now)
	if err != nil {
		return false, err
	}
	if suppressed {
		return false, nil
	}

	var reasons []string
	if len(c.Reasons) > 0 {
		if err := json.Unmarshal(c.Reasons, &reasons); err != nil {
			log.Printf("reminderService.dispatchOne: decoding reasons for vendor %s: %v", c.VendorID, err)
			reasons = nil
		}
	}

	message := compliance.RenderMessage(c.VendorName, c.TradeType, c.ExpiryDate, now, reasons)
	subject := fmt.Sprintf("Certificate of insurance reminder: %s", c.VendorName)

	if err := s.sender.SendReminder(ctx, port.ReminderEmail{
		ToEmail:    c.ContactEmail,
		ToName:     c.ContactName,
		VendorName: c.VendorName,
		Subject:    subject,
		Body:       message,
	}); err != nil {
		return false, fmt.Errorf("sending reminder: %w", err)
	}

	// Log only after the send succeeds so a transient email failure retries
	// on the next run instead of being swallowed by dedup.
	entry := &domain.ReminderLog{
		TenantID: c.TenantID,
		VendorID: c.VendorID,
		Stage:    stage,
		SentTo:   c.ContactEmail,
		Message:  message,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return false, fmt.Errorf("logging reminder: %w", err)
	}

	log.Printf("reminderService.dispatchOne: sent %s reminder to %s for vendor %s", stage, c.ContactEmail, c.VendorID)
	return true, nil
}

// isSuppressed applies the dedup rules: expired_weekly is suppressed only
// while a send within the resend window exists; every other stage fires at
// most once per vendor, ever.
func (s *reminderService) isSuppressed(ctx context.Context, c *domain.ReminderCandidate, stage domain.ReminderStage, now time.Time) (bool, error) {
	if stage == domain.StageExpiredWeekly {
		lastSent, err := s.logRepo.LastSentAt(ctx, c.TenantID, c.VendorID, stage)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("checking last send: %w", err)
		}
		return now.Sub(lastSent) < expiredResendWindow, nil
	}

	seen, err := s.logRepo.HasStage(ctx, c.TenantID, c.VendorID, stage)
	if err != nil {
		return false, fmt.Errorf("checking stage history: %w", err)
	}
	return seen, nil
}

func (s *reminderService) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.ReminderLog, int, error) {
	return s.logRepo.ListByVendor(ctx, tenantID, vendorID, offset, limit)
}
