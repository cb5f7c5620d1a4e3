package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/maxerler/invoice-generator/internal/config"
)

// LoadInvoiceConfig reads and validates the invoice layout
// configuration. Beyond the structural checks in
// InvoiceConfig.Validate, the referenced image files must exist: the
// document core assumes all image paths are readable.
func LoadInvoiceConfig(path string) (*config.InvoiceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice configuration: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var cfg config.InvoiceConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse invoice configuration %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invoice configuration %s: %w", path, err)
	}

	for _, image := range []struct {
		name string
		path string
	}{
		{"logoPath", cfg.LogoPath},
		{"letteringPath", cfg.LetteringPath},
		{"signaturePath", cfg.SignaturePath},
	} {
		if _, err := os.Stat(image.path); err != nil {
			return nil, fmt.Errorf("invalid invoice configuration %s: %s: %w", path, image.name, err)
		}
	}

	return &cfg, nil
}
