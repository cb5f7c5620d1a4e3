// Package loader reads the four JSON data files and turns them into
// validated, strongly typed records. The document core never sees raw
// JSON: everything it consumes has passed through this package.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/maxerler/invoice-generator/internal/models"
)

// LoadCompany reads and validates the company profile.
func LoadCompany(path string) (models.Company, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Company{}, fmt.Errorf("failed to read company file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var company models.Company
	if err := dec.Decode(&company); err != nil {
		return models.Company{}, fmt.Errorf("failed to parse company file %s: %w", path, err)
	}

	if err := validateCompany(company); err != nil {
		return models.Company{}, fmt.Errorf("invalid company file %s: %w", path, err)
	}
	return company, nil
}

func validateCompany(c models.Company) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Declaration == "" {
		return fmt.Errorf("declaration is required")
	}
	if c.TaxNumber == "" {
		return fmt.Errorf("taxNumber is required")
	}
	if err := validateAddress(c.Address); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	// the invoice layout prints the first two shareholders
	if len(c.Shareholders) < 2 {
		return fmt.Errorf("at least two shareholders are required, got %d", len(c.Shareholders))
	}
	for i, s := range c.Shareholders {
		if s.FirstName == "" || s.LastName == "" {
			return fmt.Errorf("shareholder %d: first and last name are required", i)
		}
	}
	if c.BankAccount.IBAN == "" || c.BankAccount.BIC == "" || c.BankAccount.BankName == "" {
		return fmt.Errorf("bankAccount: iban, bic and bankName are required")
	}
	return nil
}

func validateAddress(a models.Address) error {
	if a.Street == "" || a.StreetNumber == "" || a.ZipCode == "" || a.Location == "" || a.Country == "" {
		return fmt.Errorf("all address fields are required")
	}
	return nil
}
