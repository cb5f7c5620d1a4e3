package config

import "fmt"

// NotificationConfig holds SMTP transport settings and the text
// building blocks of the notification mail. Subject and salutation are
// prefixes: the invoice identifier and the customer's last name are
// appended per message.
type NotificationConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	TLS      bool   `json:"tls"`

	From       string `json:"from"`
	Subject    string `json:"subject"`
	Salutation string `json:"salutation"`
	Message    string `json:"message"`
	Greetings  string `json:"greetings"`
	Signature  string `json:"signature"`
}

// Validate validates the notification configuration
func (c *NotificationConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("email.host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("email.port must be a valid port number")
	}
	if c.Address == "" {
		return fmt.Errorf("email.address is required")
	}
	return nil
}
