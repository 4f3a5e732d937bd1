package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated property-management company.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Property represents a managed property within a tenant.
type Property struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Vendor represents a service vendor whose insurance is tracked.
type Vendor struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	PropertyID   *uuid.UUID `db:"property_id" json:"property_id"`
	Name         string     `db:"name" json:"name"`
	TradeType    string     `db:"trade_type" json:"trade_type"`
	ContactName  string     `db:"contact_name" json:"contact_name"`
	ContactEmail string     `db:"contact_email" json:"contact_email"`
	Notes        string     `db:"notes" json:"notes"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedBy    uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ComplianceRuleSet holds the coverage requirements for one trade type within
// a tenant. Nil minimums mean the coverage is not required.
type ComplianceRuleSet struct {
	ID                          uuid.UUID `db:"id" json:"id"`
	TenantID                    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	TradeType                   string    `db:"trade_type" json:"trade_type"`
	GLEachOccurrenceMin         *int64    `db:"gl_each_occurrence_min" json:"gl_each_occurrence_min"`
	GLAggregateMin              *int64    `db:"gl_aggregate_min" json:"gl_aggregate_min"`
	AutoLiabilityMin            *int64    `db:"auto_liability_min" json:"auto_liability_min"`
	UmbrellaEachOccurrenceMin   *int64    `db:"umbrella_each_occurrence_min" json:"umbrella_each_occurrence_min"`
	ProfessionalLiabilityMin    *int64    `db:"professional_liability_min" json:"professional_liability_min"`
	CyberLiabilityMin           *int64    `db:"cyber_liability_min" json:"cyber_liability_min"`
	WorkersCompRequired         bool      `db:"workers_comp_required" json:"workers_comp_required"`
	AdditionalInsuredRequired   bool      `db:"additional_insured_required" json:"additional_insured_required"`
	WaiverOfSubrogationRequired bool      `db:"waiver_of_subrogation_required" json:"waiver_of_subrogation_required"`
	PropertyInsuranceRequired   bool      `db:"property_insurance_required" json:"property_insurance_required"`
	YellowDaysBeforeExpiry      int       `db:"yellow_days_before_expiry" json:"yellow_days_before_expiry"`
	CreatedBy                   uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt                   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at" json:"updated_at"`
}

// Certificate stores metadata about an uploaded COI document.
type Certificate struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	VendorID     uuid.UUID  `db:"vendor_id" json:"vendor_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Extraction represents one AI-vision read of a certificate, together with
// the compliance verdict computed from it. The extracted fields are immutable
// once completed; scoring results are recomputed on every new upload.
type Extraction struct {
	ID                uuid.UUID        `db:"id" json:"id"`
	TenantID          uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	VendorID          uuid.UUID        `db:"vendor_id" json:"vendor_id"`
	CertificateID     uuid.UUID        `db:"certificate_id" json:"certificate_id"`
	ExtractorModel    string           `db:"extractor_model" json:"extractor_model"`
	ExtractorPrompt   string           `db:"extractor_prompt" json:"extractor_prompt"`
	ExtractedFields   json.RawMessage  `db:"extracted_fields" json:"extracted_fields"`
	ConfidenceScore   float64          `db:"confidence_score" json:"confidence_score"`
	ExtractionStatus  ExtractionStatus `db:"extraction_status" json:"extraction_status"`
	ExtractionError   string           `db:"extraction_error" json:"extraction_error"`
	ExtractAttempts   int              `db:"extract_attempts" json:"extract_attempts"`
	RetryAfter        *time.Time       `db:"retry_after" json:"retry_after"`
	ExtractedAt       *time.Time       `db:"extracted_at" json:"extracted_at"`
	ComplianceStatus  ComplianceStatus `db:"compliance_status" json:"compliance_status"`
	ComplianceReasons json.RawMessage  `db:"compliance_reasons" json:"compliance_reasons"`
	NextExpiryDate    *time.Time       `db:"next_expiry_date" json:"next_expiry_date"`
	HasRegression     bool             `db:"has_regression" json:"has_regression"`
	Regressions       json.RawMessage  `db:"regressions" json:"regressions"`
	ReviewStatus      ReviewStatus     `db:"review_status" json:"review_status"`
	ReviewedBy        *uuid.UUID       `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt        *time.Time       `db:"reviewed_at" json:"reviewed_at"`
	ReviewerNotes     string           `db:"reviewer_notes" json:"reviewer_notes"`
	CreatedBy         uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}

// ReminderLog records a reminder email sent for a vendor at a given stage.
// Dedup is scoped by vendor+stage only; renewal cycles do not reset it.
type ReminderLog struct {
	ID       uuid.UUID     `db:"id" json:"id"`
	TenantID uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	VendorID uuid.UUID     `db:"vendor_id" json:"vendor_id"`
	Stage    ReminderStage `db:"stage" json:"stage"`
	SentTo   string        `db:"sent_to" json:"sent_to"`
	Message  string        `db:"message" json:"message"`
	SentAt   time.Time     `db:"sent_at" json:"sent_at"`
}

// AuditEntry records a mutation on an extraction for traceability.
type AuditEntry struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	TenantID     uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	ExtractionID uuid.UUID       `db:"extraction_id" json:"extraction_id"`
	UserID       *uuid.UUID      `db:"user_id" json:"user_id"`
	Action       string          `db:"action" json:"action"`
	Changes      json.RawMessage `db:"changes" json:"changes"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// ComplianceOverviewRow is one vendor's line in the tenant compliance report.
type ComplianceOverviewRow struct {
	VendorID          uuid.UUID        `db:"vendor_id" json:"vendor_id"`
	VendorName        string           `db:"vendor_name" json:"vendor_name"`
	TradeType         string           `db:"trade_type" json:"trade_type"`
	PropertyName      *string          `db:"property_name" json:"property_name"`
	ContactEmail      string           `db:"contact_email" json:"contact_email"`
	ComplianceStatus  ComplianceStatus `db:"compliance_status" json:"compliance_status"`
	ComplianceReasons json.RawMessage  `db:"compliance_reasons" json:"compliance_reasons"`
	NextExpiryDate    *time.Time       `db:"next_expiry_date" json:"next_expiry_date"`
	ReviewStatus      ReviewStatus     `db:"review_status" json:"review_status"`
	LastUploadAt      *time.Time       `db:"last_upload_at" json:"last_upload_at"`
}

// ComplianceStats holds aggregate status counts for a tenant dashboard.
type ComplianceStats struct {
	TotalVendors  int `db:"total_vendors" json:"total_vendors"`
	Green         int `db:"green" json:"green"`
	Yellow        int `db:"yellow" json:"yellow"`
	Red           int `db:"red" json:"red"`
	Unscored      int `db:"unscored" json:"unscored"`
	NeedsReview   int `db:"needs_review" json:"needs_review"`
	ExpiringIn30d int `db:"expiring_in_30d" json:"expiring_in_30d"`
}

// ReminderCandidate is a vendor eligible for reminder staging: an active
// vendor whose latest completed extraction carries an expiry date.
type ReminderCandidate struct {
	TenantID     uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	VendorID     uuid.UUID       `db:"vendor_id" json:"vendor_id"`
	VendorName   string          `db:"vendor_name" json:"vendor_name"`
	TradeType    string          `db:"trade_type" json:"trade_type"`
	ContactName  string          `db:"contact_name" json:"contact_name"`
	ContactEmail string          `db:"contact_email" json:"contact_email"`
	ExpiryDate   time.Time       `db:"expiry_date" json:"expiry_date"`
	Reasons      json.RawMessage `db:"reasons" json:"reasons"`
}
