// Package mail sends transactional email over SMTP, with an HTTP API fallback
// for environments without an SMTP relay.
package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/smtp"
	"strings"
	"time"
)

// Config holds mail transport settings.
type Config struct {
	Enable    bool   `yaml:"enable"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Pass      string `yaml:"pass"`
	From      string `yaml:"from"`
	ReplyTo   string `yaml:"reply_to"`
	UseResend bool   `yaml:"use_resend"`
	ResendKey string `yaml:"resend_key"`
}

// Message is a single outgoing mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages using the configured transport.
type Sender struct {
	cfg  Config
	http *http.Client
}

// NewSender builds a Sender from config.
func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether mail delivery is configured.
func (s *Sender) Enabled() bool { return s.cfg.Enable }

// Send delivers a message. Returns nil without sending when mail is disabled.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.Enable {
		return nil
	}
	if s.cfg.UseResend {
		return s.sendResend(msg)
	}
	return s.sendSMTP(msg)
}

func (s *Sender) sendSMTP(msg Message) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if s.cfg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", s.cfg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *Sender) sendResend(msg Message) error {
	payload, err := json.Marshal(map[string]interface{}{
		"from":    s.cfg.From,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend api: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// RegistrationPendingData feeds the registration confirmation mail.
type RegistrationPendingData struct {
	FirstName string
	Role      string
}

// AdminRegistrationData feeds the new-registration notice sent to the admin.
type AdminRegistrationData struct {
	Name       string
	Email      string
	Role       string
	Profession string
}

const registrationPendingTpl = `<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #16a34a; padding: 24px; text-align: center;">
      <h1 style="color: #ffffff; margin: 0; font-size: 22px;">Association Al Wasl</h1>
    </div>
    <div style="padding: 24px;">
      <p>Bonjour {{.FirstName}},</p>
      <p>Votre demande d'inscription en tant que <strong>{{.Role}}</strong> a bien été reçue.</p>
      <p>Un administrateur va examiner votre demande. Vous recevrez un email dès que votre compte sera activé.</p>
      <p style="margin-top: 24px;">Cordialement,<br>L'équipe Al Wasl</p>
    </div>
  </div>
</body>
</html>`

const adminRegistrationTpl = `<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #16a34a; padding: 24px; text-align: center;">
      <h1 style="color: #ffffff; margin: 0; font-size: 22px;">Nouvelle inscription</h1>
    </div>
    <div style="padding: 24px;">
      <p>Une nouvelle demande d'inscription est en attente de validation :</p>
      <ul>
        <li><strong>Nom :</strong> {{.Name}}</li>
        <li><strong>Email :</strong> {{.Email}}</li>
        <li><strong>Rôle :</strong> {{.Role}}</li>
        {{if .Profession}}<li><strong>Profession :</strong> {{.Profession}}</li>{{end}}
      </ul>
      <p>Connectez-vous à l'espace d'administration pour l'activer.</p>
    </div>
  </div>
</body>
</html>`

var (
	registrationPending = template.Must(template.New("registration-pending").Parse(registrationPendingTpl))
	adminRegistration   = template.Must(template.New("admin-registration").Parse(adminRegistrationTpl))
)

// SendRegistrationPending mails the applicant that their account awaits review.
func (s *Sender) SendRegistrationPending(to string, data RegistrationPendingData) error {
	var body bytes.Buffer
	if err := registrationPending.Execute(&body, data); err != nil {
		return err
	}
	return s.Send(Message{
		To:      to,
		Subject: "Votre inscription est en cours de validation",
		HTML:    body.String(),
	})
}

// SendAdminRegistrationNotice mails the association admin about a new signup.
func (s *Sender) SendAdminRegistrationNotice(to string, data AdminRegistrationData) error {
	var body bytes.Buffer
	if err := adminRegistration.Execute(&body, data); err != nil {
		return err
	}
	return s.Send(Message{
		To:      to,
		Subject: "Nouvelle demande d'inscription",
		HTML:    body.String(),
	})
}
