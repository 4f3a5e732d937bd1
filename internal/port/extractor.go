package port

import (
	"context"
	"encoding/json"
)

// ExtractInput carries the document data for certificate extraction.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
}

// ExtractOutput contains the structured result from an AI-vision extractor.
type ExtractOutput struct {
	Fields          json.RawMessage
	ConfidenceScore float64
	ModelUsed       string
	PromptUsed      string
}

// CertificateExtractor abstracts AI-vision extraction of COI documents.
type CertificateExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
