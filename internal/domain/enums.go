package domain

// FileType represents the allowed certificate file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles enumerates the assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// FileStatus represents the lifecycle of an uploaded certificate file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// ExtractionStatus represents the lifecycle of an AI extraction.
type ExtractionStatus string

const (
	ExtractionStatusPending    ExtractionStatus = "pending"
	ExtractionStatusProcessing ExtractionStatus = "processing"
	ExtractionStatusQueued     ExtractionStatus = "queued"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// ReviewStatus represents the manual review state of an extraction.
type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "pending"
	ReviewStatusNeedsReview ReviewStatus = "needs_review"
	ReviewStatusApproved    ReviewStatus = "approved"
	ReviewStatusRejected    ReviewStatus = "rejected"
)

// ValidReviewStatuses enumerates the review states a reviewer may set.
var ValidReviewStatuses = map[ReviewStatus]bool{
	ReviewStatusApproved: true,
	ReviewStatusRejected: true,
}

// ComplianceStatus is the traffic-light verdict of the scorer.
type ComplianceStatus string

const (
	ComplianceGreen  ComplianceStatus = "green"
	ComplianceYellow ComplianceStatus = "yellow"
	ComplianceRed    ComplianceStatus = "red"
)

// ReminderStage identifies which expiry-reminder window a vendor is in.
type ReminderStage string

const (
	Stage30Days        ReminderStage = "30d"
	Stage14Days        ReminderStage = "14d"
	Stage7Days         ReminderStage = "7d"
	Stage1Day          ReminderStage = "1d"
	StageExpiredWeekly ReminderStage = "expired_weekly"
)

// AuditAction identifies an auditable extraction event.
type AuditAction string

const (
	AuditExtractionCreated   AuditAction = "extraction.created"
	AuditExtractionCompleted AuditAction = "extraction.completed"
	AuditExtractionQueued    AuditAction = "extraction.queued"
	AuditExtractionFailed    AuditAction = "extraction.failed"
	AuditExtractionRetried   AuditAction = "extraction.retried"
	AuditExtractionScored    AuditAction = "extraction.scored"
	AuditRegressionFlagged   AuditAction = "extraction.regression_flagged"
	AuditExtractionReviewed  AuditAction = "extraction.reviewed"
)
