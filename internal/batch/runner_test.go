package batch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxerler/invoice-generator/internal/config"
	"github.com/maxerler/invoice-generator/internal/document"
	"github.com/maxerler/invoice-generator/internal/models"
)

type mockRenderer struct {
	renderFunc func(doc *document.Document, w io.Writer) error
}

func (m *mockRenderer) Render(doc *document.Document, w io.Writer) error {
	if m.renderFunc != nil {
		return m.renderFunc(doc, w)
	}
	_, err := w.Write([]byte("%PDF-stub"))
	return err
}

type sentMail struct {
	to             string
	lastName       string
	invoiceID      string
	attachmentPath string
}

type mockSender struct {
	sendFunc func(ctx context.Context, to, lastName, invoiceID, attachmentPath string) error

	mu   sync.Mutex
	sent []sentMail
}

func (m *mockSender) Send(ctx context.Context, to, lastName, invoiceID, attachmentPath string) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentMail{to, lastName, invoiceID, attachmentPath})
	m.mu.Unlock()
	if m.sendFunc != nil {
		return m.sendFunc(ctx, to, lastName, invoiceID, attachmentPath)
	}
	return nil
}

func runnerInvoiceConfig(t *testing.T) *config.InvoiceConfig {
	t.Helper()
	return &config.InvoiceConfig{
		OutputPath:    filepath.Join(t.TempDir(), "invoices") + string(os.PathSeparator),
		LogoPath:      "assets/logo.png",
		LetteringPath: "assets/lettering.png",
		SignaturePath: "assets/signature.png",

		LogoScalePercent:      20,
		LetteringScalePercent: 40,
		SignatureScalePercent: 25,

		DateFormatReadable: "dd.MM.yyyy",
		DateFormat:         "yyyyMMdd",
		CurrencyFormat:     "#.##0,00 €",
		QuantityFormat:     "#.##0",

		HeaderFontSize:    10,
		HeadingFontSize:   14,
		ParagraphFontSize: 11,
		FooterFontSize:    8,

		ContentWidth:   85,
		DefaultSpacing: 20,

		HeaderTableProportions:    []int{2, 1},
		DataTableProportions:      []int{1, 1},
		InnerDataTableProportions: []int{3, 2},

		Header:  "Beispiel GbR",
		Heading: "Rechnung",
	}
}

func runnerCompany() models.Company {
	address := models.Address{
		Street:       "Musterstraße",
		StreetNumber: "12",
		ZipCode:      "54321",
		Location:     "Musterstadt",
		Country:      "Deutschland",
	}
	return models.Company{
		Name:        "Beispiel Getränkehandel GbR",
		Declaration: "Max Mustermann & Erika Musterfrau GbR",
		Address:     address,
		Shareholders: []models.Party{
			{FirstName: "Max", LastName: "Mustermann", Address: address,
				Contact: models.Contact{Email: "max@example.com", Phone: "+49 170 1234567"}},
			{FirstName: "Erika", LastName: "Musterfrau", Address: address,
				Contact: models.Contact{Email: "erika@example.com", Phone: "+49 171 7654321"}},
		},
		BankAccount: models.BankAccount{IBAN: "DE02", BIC: "BYLADEM1001", BankName: "Musterbank"},
		TaxNumber:   "12/345/67890",
	}
}

func runnerOrder(number, email, lastName string, day int) models.Order {
	return models.Order{
		Number: number,
		Customer: models.Customer{
			Party: models.Party{
				FirstName: "Hans",
				LastName:  lastName,
				Address: models.Address{
					Street: "Hauptstraße", StreetNumber: "7",
					ZipCode: "12345", Location: "Beispielstadt", Country: "Deutschland",
				},
				Contact: models.Contact{Email: email},
			},
			ID: 4711,
		},
		Products: []models.Product{
			{Name: "Versand", Price: decimal.RequireFromString("4.50"), Quantity: 1},
		},
		Date: time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC),
	}
}

func TestRunner_Run(t *testing.T) {
	cfg := runnerInvoiceConfig(t)
	sender := &mockSender{}
	runner := NewRunner(cfg, runnerCompany(), &mockRenderer{}, sender, 2, zap.NewNop())

	orders := []models.Order{
		runnerOrder("1007", "hans@example.com", "Beispiel", 2),
		runnerOrder("1008", "petra@example.com", "Muster", 3),
	}
	performanceDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	failures := runner.Run(context.Background(), orders, performanceDate)
	assert.Empty(t, failures)
	require.Len(t, sender.sent, 2)

	ids := map[string]sentMail{}
	for _, mail := range sender.sent {
		ids[mail.invoiceID] = mail
	}
	require.Contains(t, ids, "20240302-1007")
	require.Contains(t, ids, "20240303-1008")
	assert.Equal(t, "hans@example.com", ids["20240302-1007"].to)
	assert.Equal(t, "Beispiel", ids["20240302-1007"].lastName)
	assert.Equal(t, cfg.OutputPath+"20240302-1007.pdf", ids["20240302-1007"].attachmentPath)

	for _, mail := range sender.sent {
		_, err := os.Stat(mail.attachmentPath)
		assert.NoError(t, err)
	}
}

func TestRunner_ContinuesAfterFailure(t *testing.T) {
	cfg := runnerInvoiceConfig(t)
	renderFailed := errors.New("render failed")
	renderer := &mockRenderer{renderFunc: func(doc *document.Document, w io.Writer) error {
		// order 1007 carries the heading "Rechnung 20240302-1007"
		for _, block := range doc.Blocks {
			if text, ok := block.(*document.Text); ok && text.Content == "Rechnung 20240302-1007" {
				return renderFailed
			}
		}
		_, err := w.Write([]byte("%PDF-stub"))
		return err
	}}

	sender := &mockSender{}
	runner := NewRunner(cfg, runnerCompany(), renderer, sender, 1, zap.NewNop())

	orders := []models.Order{
		runnerOrder("1007", "hans@example.com", "Beispiel", 2),
		runnerOrder("1008", "petra@example.com", "Muster", 3),
	}
	performanceDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	failures := runner.Run(context.Background(), orders, performanceDate)
	require.Len(t, failures, 1)
	assert.Equal(t, "1007", failures[0].OrderNumber)
	assert.ErrorIs(t, failures[0].Err, renderFailed)

	// the second order still went out
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "20240303-1008", sender.sent[0].invoiceID)
}

func TestRunner_RecordsSendFailures(t *testing.T) {
	cfg := runnerInvoiceConfig(t)
	sendFailed := errors.New("send failed")
	sender := &mockSender{sendFunc: func(ctx context.Context, to, lastName, invoiceID, attachmentPath string) error {
		return sendFailed
	}}

	runner := NewRunner(cfg, runnerCompany(), &mockRenderer{}, sender, 1, zap.NewNop())
	orders := []models.Order{runnerOrder("1007", "hans@example.com", "Beispiel", 2)}
	performanceDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	failures := runner.Run(context.Background(), orders, performanceDate)
	require.Len(t, failures, 1)
	assert.Equal(t, "1007", failures[0].OrderNumber)
	assert.Equal(t, cfg.OutputPath+"20240302-1007.pdf", failures[0].FilePath)
	assert.ErrorIs(t, failures[0].Err, sendFailed)

	// the invoice itself was generated before dispatch failed
	_, err := os.Stat(failures[0].FilePath)
	assert.NoError(t, err)
}

func TestRunner_InvalidConfigurationFailsEveryOrder(t *testing.T) {
	cfg := runnerInvoiceConfig(t)
	cfg.CurrencyFormat = "€€"

	sender := &mockSender{}
	runner := NewRunner(cfg, runnerCompany(), &mockRenderer{}, sender, 2, zap.NewNop())

	orders := []models.Order{
		runnerOrder("1007", "hans@example.com", "Beispiel", 2),
		runnerOrder("1008", "petra@example.com", "Muster", 3),
	}
	performanceDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	failures := runner.Run(context.Background(), orders, performanceDate)
	assert.Len(t, failures, 2)
	assert.Empty(t, sender.sent)
}
