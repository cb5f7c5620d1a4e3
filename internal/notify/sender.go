// Package notify dispatches generated invoices to customers by email.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/maxerler/invoice-generator/internal/config"
)

const (
	lineBreak       = "<br/>"
	doubleLineBreak = "<br/><br/>"
	contentType     = "text/html"
)

// Sender delivers one generated invoice to its recipient. The batch
// driver supplies exactly the four values the notification needs.
type Sender interface {
	Send(ctx context.Context, to, lastName, invoiceID, attachmentPath string) error
}

// SMTPSender sends invoice mails over SMTP with the PDF attached.
type SMTPSender struct {
	cfg    *config.NotificationConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(cfg *config.NotificationConfig, logger *zap.Logger) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Address, cfg.Password)
	if cfg.TLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return &SMTPSender{
		cfg:    cfg,
		dialer: dialer,
		logger: logger,
	}
}

// Send mails the invoice to the customer. The subject is the
// configured prefix followed by the invoice identifier; the body is
// built from the configured salutation, message, greetings and
// signature.
func (s *SMTPSender) Send(ctx context.Context, to, lastName, invoiceID, attachmentPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("Sending invoice email",
		zap.String("invoice_id", invoiceID),
		zap.String("recipient", to))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Address, s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", s.cfg.Subject+invoiceID)
	m.SetBody(contentType, s.buildBody(lastName))
	m.Attach(attachmentPath)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send invoice email",
			zap.String("invoice_id", invoiceID),
			zap.String("recipient", to),
			zap.Error(err))
		return fmt.Errorf("failed to send email for invoice %s: %w", invoiceID, err)
	}

	s.logger.Info("Invoice email sent",
		zap.String("invoice_id", invoiceID),
		zap.String("recipient", to))
	return nil
}

// buildBody assembles the HTML mail body
func (s *SMTPSender) buildBody(lastName string) string {
	return s.cfg.Salutation + lastName + "," + doubleLineBreak +
		s.cfg.Message + doubleLineBreak +
		s.cfg.Greetings + lineBreak +
		s.cfg.Signature
}

// NopSender logs what would have been sent without sending anything.
// Used by dry runs.
type NopSender struct {
	logger *zap.Logger
}

// NewNopSender creates a sender that drops every message.
func NewNopSender(logger *zap.Logger) *NopSender {
	return &NopSender{logger: logger}
}

// Send logs the dispatch and returns nil.
func (s *NopSender) Send(ctx context.Context, to, lastName, invoiceID, attachmentPath string) error {
	s.logger.Info("Dry run, skipping invoice email",
		zap.String("invoice_id", invoiceID),
		zap.String("recipient", to),
		zap.String("attachment", attachmentPath))
	return nil
}
