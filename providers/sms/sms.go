package sms

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"jeewifi-backend/config"
	"jeewifi-backend/logger"
)

// Sender delivers a text message. Delivery is fire-and-forget: the caller
// never waits on carrier confirmation.
type Sender interface {
	Send(phone, message string) error
}

const defaultEndpoint = "https://api.africastalking.com/version1/messaging"

// AfricasTalkingSender posts messages to the Africa's Talking bulk SMS API.
type AfricasTalkingSender struct {
	username string
	apiKey   string
	senderID string
	endpoint string
	client   *http.Client
}

func NewAfricasTalkingSender(cfg *config.Config) *AfricasTalkingSender {
	endpoint := cfg.SMSEndpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &AfricasTalkingSender{
		username: cfg.SMSUsername,
		apiKey:   cfg.SMSAPIKey,
		senderID: cfg.SMSSenderID,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *AfricasTalkingSender) Send(phone, message string) error {
	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", phone)
	form.Set("message", message)
	if s.senderID != "" {
		form.Set("from", s.senderID)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.Logger.Warnf("SMS gateway returned status %d for %s", resp.StatusCode, phone)
	}
	return nil
}

// LogSender writes the message to the application log instead of a carrier.
// Used in development and whenever no gateway is configured.
type LogSender struct{}

func (LogSender) Send(phone, message string) error {
	logger.Logger.Infof("SMS to %s: %s", phone, message)
	return nil
}

// FromConfig picks the real gateway when credentials are present.
func FromConfig(cfg *config.Config) Sender {
	if cfg.SMSUsername != "" && cfg.SMSAPIKey != "" {
		return NewAfricasTalkingSender(cfg)
	}
	return LogSender{}
}
