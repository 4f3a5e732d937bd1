package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coitrack/internal/port"
)

// MockCertificateExtractor is a mock implementation of port.CertificateExtractor.
type MockCertificateExtractor struct {
	mock.Mock
}

func (m *MockCertificateExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ExtractOutput), args.Error(1)
}
