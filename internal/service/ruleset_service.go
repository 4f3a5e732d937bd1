package service

import (
	"context"

	"github.com/google/uuid"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

// RuleSetInput is the DTO for creating or updating a compliance rule set.
// Nil minimums mean the coverage is not required for the trade.
type RuleSetInput struct {
	TradeType                   string `json:"trade_type" binding:"required"`
	GLEachOccurrenceMin         *int64 `json:"gl_each_occurrence_min"`
	GLAggregateMin              *int64 `json:"gl_aggregate_min"`
	AutoLiabilityMin            *int64 `json:"auto_liability_min"`
	UmbrellaEachOccurrenceMin   *int64 `json:"umbrella_each_occurrence_min"`
	ProfessionalLiabilityMin    *int64 `json:"professional_liability_min"`
	CyberLiabilityMin           *int64 `json:"cyber_liability_min"`
	WorkersCompRequired         bool   `json:"workers_comp_required"`
	AdditionalInsuredRequired   bool   `json:"additional_insured_required"`
	WaiverOfSubrogationRequired bool   `json:"waiver_of_subrogation_required"`
	PropertyInsuranceRequired   bool   `json:"property_insurance_required"`
	YellowDaysBeforeExpiry      int    `json:"yellow_days_before_expiry"`
}

// RuleSetService defines the compliance rule set management contract.
type RuleSetService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input RuleSetInput) (*domain.ComplianceRuleSet, error)
	GetByID(ctx context.Context, tenantID, ruleSetID uuid.UUID) (*domain.ComplianceRuleSet, error)
	GetByTradeType(ctx context.Context, tenantID uuid.UUID, tradeType string) (*domain.ComplianceRuleSet, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.ComplianceRuleSet, error)
	Update(ctx context.Context, tenantID, ruleSetID uuid.UUID, input RuleSetInput) (*domain.ComplianceRuleSet, error)
	Delete(ctx context.Context, tenantID, ruleSetID uuid.UUID) error
}

const defaultYellowDaysBeforeExpiry = 30

type ruleSetService struct {
	repo port.RuleSetRepository
}

// NewRuleSetService creates a new RuleSetService implementation.
func NewRuleSetService(repo port.RuleSetRepository) RuleSetService {
	return &ruleSetService{repo: repo}
}

func (s *ruleSetService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input RuleSetInput) (*domain.ComplianceRuleSet, error) {
	yellowDays := input.YellowDaysBeforeExpiry
	if yellowDays <= 0 {
		yellowDays = defaultYellowDaysBeforeExpiry
	}

	rules := &domain.ComplianceRuleSet{
		TenantID:                    tenantID,
		TradeType:                   input.TradeType,
		GLEachOccurrenceMin:         input.GLEachOccurrenceMin,
		GLAggregateMin:              input.GLAggregateMin,
		AutoLiabilityMin:            input.AutoLiabilityMin,
		UmbrellaEachOccurrenceMin:   input.UmbrellaEachOccurrenceMin,
		ProfessionalLiabilityMin:    input.ProfessionalLiabilityMin,
		CyberLiabilityMin:           input.CyberLiabilityMin,
		WorkersCompRequired:         input.WorkersCompRequired,
		AdditionalInsuredRequired:   input.AdditionalInsuredRequired,
		WaiverOfSubrogationRequired: input.WaiverOfSubrogationRequired,
		PropertyInsuranceRequired:   input.PropertyInsuranceRequired,
		YellowDaysBeforeExpiry:      yellowDays,
		CreatedBy:                   createdBy,
	}
	if err := s.repo.Create(ctx, rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *ruleSetService) GetByID(ctx context.Context, tenantID, ruleSetID uuid.UUID) (*domain.ComplianceRuleSet, error) {
	return s.repo.GetByID(ctx, tenantID, ruleSetID)
}

func (s *ruleSetService) GetByTradeType(ctx context.Context, tenantID uuid.UUID, tradeType string) (*domain.ComplianceRuleSet, error) {
	return s.repo.GetByTradeType(ctx, tenantID, tradeType)
}

func (s *ruleSetService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.ComplianceRuleSet, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *ruleSetService) Update(ctx context.Context, tenantID, ruleSetID uuid.UUID, input RuleSetInput) (*domain.ComplianceRuleSet, error) {
	rules, err := s.repo.GetByID(ctx, tenantID, ruleSetID)
	if err != nil {
		return nil, err
	}

	rules.GLEachOccurrenceMin = input.GLEachOccurrenceMin
	rules.GLAggregateMin = input.GLAggregateMin
	rules.AutoLiabilityMin = input.AutoLiabilityMin
	rules.UmbrellaEachOccurrenceMin = input.UmbrellaEachOccurrenceMin
	rules.ProfessionalLiabilityMin = input.ProfessionalLiabilityMin
	rules.CyberLiabilityMin = input.CyberLiabilityMin
	rules.WorkersCompRequired = input.WorkersCompRequired
	rules.AdditionalInsuredRequired = input.AdditionalInsuredRequired
	rules.WaiverOfSubrogationRequired = input.WaiverOfSubrogationRequired
	rules.PropertyInsuranceRequired = input.PropertyInsuranceRequired
	if input.YellowDaysBeforeExpiry > 0 {
		rules.YellowDaysBeforeExpiry = input.YellowDaysBeforeExpiry
	}

	if err := s.repo.Update(ctx, rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *ruleSetService) Delete(ctx context.Context, tenantID, ruleSetID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, ruleSetID)
}
