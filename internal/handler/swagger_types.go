package handler

import (
	"time"

	"github.com/google/uuid"

	"coitrack/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"summit-properties"`
	Email      string `json:"email" binding:"required" example:"admin@summitprops.com"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateVendorRequest represents the create vendor request body.
type CreateVendorRequest struct {
	PropertyID   *uuid.UUID `json:"property_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Name         string     `json:"name" binding:"required" example:"Apex Plumbing LLC"`
	TradeType    string     `json:"trade_type" binding:"required" example:"plumbing"`
	ContactName  string     `json:"contact_name" example:"Maria Lopez"`
	ContactEmail string     `json:"contact_email" example:"maria@apexplumbing.com"`
	Notes        string     `json:"notes" example:"Preferred vendor for towers A and B"`
}

// ReviewExtractionRequest represents the review extraction request body.
type ReviewExtractionRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
	Notes  string `json:"notes" example:"Verified against source PDF. All limits correct."`
}

// CreateRuleSetRequest represents the create rule set request body.
type CreateRuleSetRequest struct {
	TradeType                   string `json:"trade_type" binding:"required" example:"plumbing"`
	GLEachOccurrenceMin         *int64 `json:"gl_each_occurrence_min" example:"1000000"`
	GLAggregateMin              *int64 `json:"gl_aggregate_min" example:"2000000"`
	WorkersCompRequired         bool   `json:"workers_comp_required" example:"true"`
	AdditionalInsuredRequired   bool   `json:"additional_insured_required" example:"true"`
	WaiverOfSubrogationRequired bool   `json:"waiver_of_subrogation_required" example:"false"`
	YellowDaysBeforeExpiry      int    `json:"yellow_days_before_expiry" example:"30"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// CertificateWithDownloadURL represents a certificate with its download URL.
type CertificateWithDownloadURL struct {
	Certificate domain.Certificate `json:"certificate"`
	DownloadURL string             `json:"download_url" example:"https://s3.amazonaws.com/coitrack-certificates/...?X-Amz-Signature=..."`
}

// UploadResult represents the certificate upload response.
type UploadResult struct {
	Certificate domain.Certificate `json:"certificate"`
	Extraction  domain.Extraction  `json:"extraction"`
}

// DispatchResult represents the manual reminder dispatch response.
type DispatchResult struct {
	RemindersSent int `json:"reminders_sent" example:"3"`
}

// --- Extracted Certificate Schema (for documentation) ---

// COIFields represents the fields extracted from an ACORD 25 certificate.
// Limit and date values are null when not found on the certificate.
type COIFields struct {
	PolicyExpirationDate                *string `json:"policy_expiration_date" example:"2026-09-30"`
	PolicyEffectiveDate                 *string `json:"policy_effective_date" example:"2025-09-30"`
	GLEachOccurrence                    *int64  `json:"gl_each_occurrence" example:"1000000"`
	GLAggregate                         *int64  `json:"gl_aggregate" example:"2000000"`
	WorkersCompPresent                  bool    `json:"workers_comp_present" example:"true"`
	AdditionalInsuredPresent            bool    `json:"additional_insured_present" example:"true"`
	WaiverOfSubrogationPresent          bool    `json:"waiver_of_subrogation_present" example:"false"`
	AutoLiabilityCombinedSingleLimit    *int64  `json:"auto_liability_combined_single_limit" example:"1000000"`
	UmbrellaEachOccurrence              *int64  `json:"umbrella_each_occurrence" example:"5000000"`
	UmbrellaAggregate                   *int64  `json:"umbrella_aggregate" example:"5000000"`
	ProfessionalLiabilityEachOccurrence *int64  `json:"professional_liability_each_occurrence" example:"2000000"`
	CyberLiabilityEachOccurrence        *int64  `json:"cyber_liability_each_occurrence" example:"1000000"`
	PropertyInsurancePresent            bool    `json:"property_insurance_present" example:"false"`
	ConfidenceScore                     float64 `json:"confidence_score" example:"0.93"`
}
