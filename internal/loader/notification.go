package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maxerler/invoice-generator/internal/config"
)

// smtpPasswordEnv overrides the password from the notification file,
// so credentials can stay out of the data directory.
const smtpPasswordEnv = "SMTP_PASSWORD"

// notificationFile mirrors the notification data file, which nests
// everything under an "email" object. The port is historically a
// string in these files; both spellings are accepted.
type notificationFile struct {
	Email struct {
		Address    string          `json:"address"`
		Password   string          `json:"password"`
		Host       string          `json:"host"`
		Port       json.RawMessage `json:"port"`
		TLS        bool            `json:"tls"`
		From       string          `json:"from"`
		Subject    string          `json:"subject"`
		Salutation string          `json:"salutation"`
		Message    string          `json:"message"`
		Greetings  string          `json:"greetings"`
		Signature  string          `json:"signature"`
	} `json:"email"`
}

// LoadNotificationConfig reads and validates the notification
// settings. SMTP_PASSWORD in the environment takes precedence over a
// password in the file.
func LoadNotificationConfig(path string) (*config.NotificationConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notification configuration: %w", err)
	}

	var file notificationFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse notification configuration %s: %w", path, err)
	}

	portText := strings.Trim(strings.TrimSpace(string(file.Email.Port)), `"`)
	port, err := strconv.Atoi(portText)
	if err != nil {
		return nil, fmt.Errorf("invalid notification configuration %s: port: %w", path, err)
	}

	cfg := &config.NotificationConfig{
		Address:    file.Email.Address,
		Password:   file.Email.Password,
		Host:       file.Email.Host,
		Port:       port,
		TLS:        file.Email.TLS,
		From:       file.Email.From,
		Subject:    file.Email.Subject,
		Salutation: file.Email.Salutation,
		Message:    file.Email.Message,
		Greetings:  file.Email.Greetings,
		Signature:  file.Email.Signature,
	}

	if password := os.Getenv(smtpPasswordEnv); password != "" {
		cfg.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid notification configuration %s: %w", path, err)
	}
	return cfg, nil
}
