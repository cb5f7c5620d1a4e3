package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCompanyJSON = `{
  "label": "Beispiel GbR",
  "name": "Beispiel Getränkehandel GbR",
  "declaration": "Max Mustermann & Erika Musterfrau GbR",
  "address": {
    "street": "Musterstraße",
    "streetNumber": "12",
    "zipCode": "54321",
    "location": "Musterstadt",
    "country": "Deutschland"
  },
  "shareholders": [
    {
      "firstName": "Max",
      "lastName": "Mustermann",
      "address": {
        "street": "Musterstraße",
        "streetNumber": "12",
        "zipCode": "54321",
        "location": "Musterstadt",
        "country": "Deutschland"
      },
      "contact": {"email": "max@example.com", "phone": "+49 170 1234567"}
    },
    {
      "firstName": "Erika",
      "lastName": "Musterfrau",
      "address": {
        "street": "Beispielweg",
        "streetNumber": "3",
        "zipCode": "54321",
        "location": "Musterstadt",
        "country": "Deutschland"
      },
      "contact": {"email": "erika@example.com", "phone": "+49 171 7654321"}
    }
  ],
  "bankAccount": {
    "iban": "DE02120300000000202051",
    "bic": "BYLADEM1001",
    "bankName": "Musterbank"
  },
  "taxNumber": "12/345/67890"
}`

func writeDataFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCompany(t *testing.T) {
	path := writeDataFile(t, "company.json", validCompanyJSON)

	company, err := LoadCompany(path)
	require.NoError(t, err)

	assert.Equal(t, "Beispiel Getränkehandel GbR", company.Name)
	assert.Equal(t, "Musterstadt", company.Address.Location)
	require.Len(t, company.Shareholders, 2)
	assert.Equal(t, "Max Mustermann", company.Shareholders[0].FullName())
	assert.Equal(t, "erika@example.com", company.Shareholders[1].Contact.Email)
	assert.Equal(t, "DE02120300000000202051", company.BankAccount.IBAN)
}

func TestLoadCompany_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown field",
			content: `{"name": "x", "unexpected": true}`,
		},
		{
			name:    "malformed json",
			content: `{"name": `,
		},
		{
			name:    "missing name",
			content: `{"declaration": "x"}`,
		},
		{
			name: "single shareholder",
			content: `{
  "name": "Beispiel GbR",
  "declaration": "Max Mustermann GbR",
  "taxNumber": "12/345/67890",
  "address": {"street": "Musterstraße", "streetNumber": "12", "zipCode": "54321", "location": "Musterstadt", "country": "Deutschland"},
  "shareholders": [{"firstName": "Max", "lastName": "Mustermann"}],
  "bankAccount": {"iban": "DE02", "bic": "BYLADEM1001", "bankName": "Musterbank"}
}`,
		},
		{
			name: "incomplete bank account",
			content: `{
  "name": "Beispiel GbR",
  "declaration": "Max Mustermann & Erika Musterfrau GbR",
  "taxNumber": "12/345/67890",
  "address": {"street": "Musterstraße", "streetNumber": "12", "zipCode": "54321", "location": "Musterstadt", "country": "Deutschland"},
  "shareholders": [
    {"firstName": "Max", "lastName": "Mustermann"},
    {"firstName": "Erika", "lastName": "Musterfrau"}
  ],
  "bankAccount": {"iban": "DE02"}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDataFile(t, "company.json", tt.content)
			_, err := LoadCompany(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadCompany_MissingFile(t *testing.T) {
	_, err := LoadCompany(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
