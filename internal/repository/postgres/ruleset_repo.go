package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

type ruleSetRepo struct {
	db *sqlx.DB
}

// NewRuleSetRepo creates a new PostgreSQL-backed RuleSetRepository.
func NewRuleSetRepo(db *sqlx.DB) port.RuleSetRepository {
	return &ruleSetRepo{db: db}
}

func (r *ruleSetRepo) Create(ctx context.Context, rules *domain.ComplianceRuleSet) error {
	rules.ID = uuid.New()
	now := time.Now().UTC()
	rules.CreatedAt = now
	rules.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO compliance_rule_sets (id, tenant_id, trade_type,
			gl_each_occurrence_min, gl_aggregate_min, auto_liability_min,
			umbrella_each_occurrence_min, professional_liability_min, cyber_liability_min,
			workers_comp_required, additional_insured_required, waiver_of_subrogation_required,
			property_insurance_required, yellow_days_before_expiry,
			created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		rules.ID, rules.TenantID, rules.TradeType,
		rules.GLEachOccurrenceMin, rules.GLAggregateMin, rules.AutoLiabilityMin,
		rules.UmbrellaEachOccurrenceMin, rules.ProfessionalLiabilityMin, rules.CyberLiabilityMin,
		rules.WorkersCompRequired, rules.AdditionalInsuredRequired, rules.WaiverOfSubrogationRequired,
		rules.PropertyInsuranceRequired, rules.YellowDaysBeforeExpiry,
		rules.CreatedBy, rules.CreatedAt, rules.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRuleSet
		}
		return fmt.Errorf("ruleSetRepo.Create: %w", err)
	}
	return nil
}

func (r *ruleSetRepo) GetByID(ctx context.Context, tenantID, ruleSetID uuid.UUID) (*domain.ComplianceRuleSet, error) {
	var rules domain.ComplianceRuleSet
	err := r.db.GetContext(ctx, &rules,
		"SELECT * FROM compliance_rule_sets WHERE id = $1 AND tenant_id = $2", ruleSetID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRuleSetNotFound
		}
		return nil, fmt.Errorf("ruleSetRepo.GetByID: %w", err)
	}
	return &rules, nil
}

func (r *ruleSetRepo) GetByTradeType(ctx context.Context, tenantID uuid.UUID, tradeType string) (*domain.ComplianceRuleSet, error) {
	var rules domain.ComplianceRuleSet
	err := r.db.GetContext(ctx, &rules,
		"SELECT * FROM compliance_rule_sets WHERE tenant_id = $1 AND trade_type = $2",
		tenantID, tradeType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRuleSetNotFound
		}
		return nil, fmt.Errorf("ruleSetRepo.GetByTradeType: %w", err)
	}
	return &rules, nil
}

func (r *ruleSetRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ComplianceRuleSet, error) {
	var ruleSets []domain.ComplianceRuleSet
	err := r.db.SelectContext(ctx, &ruleSets,
		"SELECT * FROM compliance_rule_sets WHERE tenant_id = $1 ORDER BY trade_type", tenantID)
	if err != nil {
		return nil, fmt.Errorf("ruleSetRepo.ListByTenant: %w", err)
	}
	return ruleSets, nil
}

func (r *ruleSetRepo) Update(ctx context.Context, rules *domain.ComplianceRuleSet) error {
	rules.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE compliance_rule_sets SET
			gl_each_occurrence_min = $1, gl_aggregate_min = $2, auto_liability_min = $3,
			umbrella_each_occurrence_min = $4, professional_liability_min = $5,
			cyber_liability_min = $6, workers_comp_required = $7,
			additional_insured_required = $8, waiver_of_subrogation_required = $9,
			property_insurance_required = $10, yellow_days_before_expiry = $11, updated_at = $12
		 WHERE id = $13 AND tenant_id = $14`,
		rules.GLEachOccurrenceMin, rules.GLAggregateMin, rules.AutoLiabilityMin,
		rules.UmbrellaEachOccurrenceMin, rules.ProfessionalLiabilityMin,
		rules.CyberLiabilityMin, rules.WorkersCompRequired,
		rules.AdditionalInsuredRequired, rules.WaiverOfSubrogationRequired,
		rules.PropertyInsuranceRequired, rules.YellowDaysBeforeExpiry, rules.UpdatedAt,
		rules.ID, rules.TenantID)
	if err != nil {
		return fmt.Errorf("ruleSetRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRuleSetNotFound
	}
	return nil
}

func (r *ruleSetRepo) Delete(ctx context.Context, tenantID, ruleSetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM compliance_rule_sets WHERE id = $1 AND tenant_id = $2", ruleSetID, tenantID)
	if err != nil {
		return fmt.Errorf("ruleSetRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRuleSetNotFound
	}
	return nil
}
