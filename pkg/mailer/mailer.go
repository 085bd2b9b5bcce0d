package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mfalgas/christmas-planner-backend/config"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer sends transactional email through the Resend HTTP API. When the
// feature is disabled it swallows sends, so callers never branch on config.
type Mailer struct {
	cfg        config.EmailConfig
	httpClient *http.Client
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func New(cfg config.EmailConfig) *Mailer {
	return &Mailer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers one HTML email. Callers treat errors as log-and-continue;
// email is never part of a request's success contract.
func (m *Mailer) Send(to, subject, html string) error {
	if !m.cfg.Enabled {
		logger.Debug("Email disabled, skipping send", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	body := sendRequest{
		From:    m.cfg.FromAddress,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}

	logger.Debug("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}

// NewWishEmail renders the email sent to the family when a member adds a
// wish to their list.
func NewWishEmail(creatorName, wishTitle, link string) (subject, html string) {
	subject = fmt.Sprintf("%s ha añadido un regalo a su lista", creatorName)
	html = fmt.Sprintf(
		`<p>%s ha añadido <strong>%s</strong> a su lista de deseos.</p>`+
			`<p><a href="%s">Ver su lista</a></p>`,
		creatorName, wishTitle, link,
	)
	return subject, html
}
