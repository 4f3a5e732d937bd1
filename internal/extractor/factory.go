package extractor

import (
	"fmt"

	"coitrack/internal/config"
	"coitrack/internal/port"
)

// ProviderFactory is a function that creates a CertificateExtractor from a provider config.
type ProviderFactory func(cfg *config.ExtractorProviderConfig) (port.CertificateExtractor, error)

// registry of extractor provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a CertificateExtractor from a provider config using the
// registered factory.
func NewExtractor(cfg *config.ExtractorProviderConfig) (port.CertificateExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
