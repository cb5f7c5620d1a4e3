package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/maxerler/invoice-generator/internal/config"
)

func testNotificationConfig() *config.NotificationConfig {
	return &config.NotificationConfig{
		Address:    "rechnung@example.com",
		Password:   "secret",
		Host:       "smtp.example.com",
		Port:       587,
		TLS:        true,
		From:       "Beispiel GbR",
		Subject:    "Ihre Rechnung ",
		Salutation: "Sehr geehrte/r Frau/Herr ",
		Message:    "anbei erhalten Sie Ihre Rechnung.",
		Greetings:  "Mit freundlichen Grüßen",
		Signature:  "Beispiel GbR",
	}
}

func TestSMTPSender_BuildBody(t *testing.T) {
	sender := NewSMTPSender(testNotificationConfig(), zap.NewNop())

	expected := "Sehr geehrte/r Frau/Herr Beispiel,<br/><br/>" +
		"anbei erhalten Sie Ihre Rechnung.<br/><br/>" +
		"Mit freundlichen Grüßen<br/>" +
		"Beispiel GbR"
	assert.Equal(t, expected, sender.buildBody("Beispiel"))
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	sender := NewSMTPSender(testNotificationConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, "hans@example.com", "Beispiel", "20240302-1007", "out/20240302-1007.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNopSender_Send(t *testing.T) {
	sender := NewNopSender(zap.NewNop())
	err := sender.Send(context.Background(), "hans@example.com", "Beispiel", "20240302-1007", "out/20240302-1007.pdf")
	assert.NoError(t, err)
}
