package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
	"coitrack/internal/port"
	"coitrack/internal/service"
	"coitrack/mocks"
)

func setupReminderService() (
	service.ReminderService,
	*mocks.MockReminderLogRepo,
	*mocks.MockReminderCandidateRepo,
	*mocks.MockEmailSender,
) {
	logRepo := new(mocks.MockReminderLogRepo)
	candidateRepo := new(mocks.MockReminderCandidateRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewReminderService(logRepo, candidateRepo, sender)
	return svc, logRepo, candidateRepo, sender
}

func reminderCandidate(expiry time.Time) domain.ReminderCandidate {
	return domain.ReminderCandidate{
		TenantID:     uuid.New(),
		VendorID:     uuid.New(),
		VendorName:   "Apex Plumbing",
		TradeType:    "plumbing",
		ContactName:  "Dana Ortiz",
		ContactEmail: "office@apexplumbing.example",
		ExpiryDate:   expiry,
	}
}

func TestReminderService_DispatchDue_SendsDueReminder(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, 5)) // 5 days out -> 7d stage

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("HasStage", mock.Anything, c.TenantID, c.VendorID, domain.Stage7Days).Return(false, nil)
	sender.On("SendReminder", mock.Anything, mock.MatchedBy(func(email port.ReminderEmail) bool {
		return email.ToEmail == c.ContactEmail &&
			email.Subject == "Certificate of insurance reminder: Apex Plumbing"
	})).Return(nil)
	logRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.ReminderLog) bool {
		return entry.VendorID == c.VendorID && entry.Stage == domain.Stage7Days && entry.SentTo == c.ContactEmail
	})).Return(nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	sender.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestReminderService_DispatchDue_NothingDueFarOut(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, 45))

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	sender.AssertNotCalled(t, "SendReminder", mock.Anything, mock.Anything)
	logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReminderService_DispatchDue_PreExpiryStageFiresOnce(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, 12)) // 14d stage

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("HasStage", mock.Anything, c.TenantID, c.VendorID, domain.Stage14Days).Return(true, nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	sender.AssertNotCalled(t, "SendReminder", mock.Anything, mock.Anything)
}

func TestReminderService_DispatchDue_ExpiredSuppressedWithinWeek(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, -20))

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("LastSentAt", mock.Anything, c.TenantID, c.VendorID, domain.StageExpiredWeekly).
		Return(now.Add(-3*24*time.Hour), nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	sender.AssertNotCalled(t, "SendReminder", mock.Anything, mock.Anything)
}

func TestReminderService_DispatchDue_ExpiredResendsAfterWeek(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, -20))

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("LastSentAt", mock.Anything, c.TenantID, c.VendorID, domain.StageExpiredWeekly).
		Return(now.Add(-8*24*time.Hour), nil)
	sender.On("SendReminder", mock.Anything, mock.MatchedBy(func(email port.ReminderEmail) bool {
		return email.ToEmail == c.ContactEmail
	})).Return(nil)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReminderLog")).Return(nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	sender.AssertExpectations(t)
}

func TestReminderService_DispatchDue_ExpiredNeverSentBefore(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, -2))

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("LastSentAt", mock.Anything, c.TenantID, c.VendorID, domain.StageExpiredWeekly).
		Return(time.Time{}, domain.ErrNotFound)
	sender.On("SendReminder", mock.Anything, mock.MatchedBy(func(email port.ReminderEmail) bool {
		return email.ToEmail == c.ContactEmail
	})).Return(nil)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReminderLog")).Return(nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	sender.AssertExpectations(t)
}

func TestReminderService_DispatchDue_SendFailureNotLogged(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, 1))

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("HasStage", mock.Anything, c.TenantID, c.VendorID, domain.Stage1Day).Return(false, nil)
	sender.On("SendReminder", mock.Anything, mock.Anything).Return(errors.New("ses throttled"))

	sent, err := svc.DispatchDue(context.Background(), now)

	// A failed send must not be deduplicated away on the next run.
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReminderService_DispatchDue_OneFailureDoesNotStopOthers(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	failing := reminderCandidate(now.AddDate(0, 0, 3))
	healthy := reminderCandidate(now.AddDate(0, 0, 20))

	candidateRepo.On("ListCandidates", mock.Anything).
		Return([]domain.ReminderCandidate{failing, healthy}, nil)
	logRepo.On("HasStage", mock.Anything, failing.TenantID, failing.VendorID, domain.Stage7Days).Return(false, nil)
	logRepo.On("HasStage", mock.Anything, healthy.TenantID, healthy.VendorID, domain.Stage30Days).Return(false, nil)
	sender.On("SendReminder", mock.Anything, mock.MatchedBy(func(email port.ReminderEmail) bool {
		return email.ToEmail == failing.ContactEmail && email.VendorName == failing.VendorName
	})).Return(errors.New("mailbox unavailable")).Once()
	sender.On("SendReminder", mock.Anything, mock.MatchedBy(func(email port.ReminderEmail) bool {
		return email.ToEmail == healthy.ContactEmail
	})).Return(nil).Once()
	logRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.ReminderLog) bool {
		return entry.VendorID == healthy.VendorID
	})).Return(nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	sender.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestReminderService_DispatchDue_MessageIncludesIssues(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := reminderCandidate(now.AddDate(0, 0, 5))
	reasons, _ := json.Marshal([]string{"Policy expires in 5 days", "Missing general liability aggregate limit (minimum $2,000,000 required)"})
	c.Reasons = reasons

	candidateRepo.On("ListCandidates", mock.Anything).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("HasStage", mock.Anything, c.TenantID, c.VendorID, domain.Stage7Days).Return(false, nil)

	var body string
	sender.On("SendReminder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body = args.Get(1).(port.ReminderEmail).Body
		}).Return(nil)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReminderLog")).Return(nil)

	sent, err := svc.DispatchDue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Contains(t, body, "Apex Plumbing's plumbing certificate of insurance expires in 5 days")
	assert.Contains(t, body, "Issues: Policy expires in 5 days; Missing general liability aggregate limit (minimum $2,000,000 required).")
}

func TestReminderService_DispatchDueForTenant_ScopesCandidates(t *testing.T) {
	svc, logRepo, candidateRepo, sender := setupReminderService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tenantID := uuid.New()
	c := reminderCandidate(now.AddDate(0, 0, 1))
	c.TenantID = tenantID

	candidateRepo.On("ListCandidatesByTenant", mock.Anything, tenantID).Return([]domain.ReminderCandidate{c}, nil)
	logRepo.On("HasStage", mock.Anything, tenantID, c.VendorID, domain.Stage1Day).Return(false, nil)
	sender.On("SendReminder", mock.Anything, mock.Anything).Return(nil)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReminderLog")).Return(nil)

	sent, err := svc.DispatchDueForTenant(context.Background(), tenantID, now)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	candidateRepo.AssertExpectations(t)
	candidateRepo.AssertNotCalled(t, "ListCandidates", mock.Anything)
}
