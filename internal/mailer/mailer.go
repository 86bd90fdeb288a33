// Package mailer sends account lifecycle notifications over SMTP. The mailer
// is optional: when unconfigured, callers get a nil *Mailer and every send is
// a logged no-op. Send failures are the caller's problem only to log, never
// to surface; the mutation that triggered the mail has already committed.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/shiomura/team-task-api/internal/config"
	"github.com/shiomura/team-task-api/internal/models"
)

type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	appURL   string
}

// New creates a Mailer from config, or nil when SMTP is not configured.
func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		appURL:   cfg.AppURL,
	}
}

var approvalTmpl = template.Must(template.New("approval").Parse(`
<p>Hi {{.Name}},</p>
<p>Your account has been approved by {{.Approver}}. You can now sign in as a <strong>{{.Role}}</strong>.</p>
<p><a href="{{.AppURL}}/login">Sign in</a></p>
`))

var rejectionTmpl = template.Must(template.New("rejection").Parse(`
<p>Hi {{.Name}},</p>
<p>Your registration was not approved.{{if .Reason}} Reason: {{.Reason}}{{end}}</p>
<p>If you believe this is a mistake, contact {{.AdminContact}}.</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>A password reset was requested for your account. This link expires in one hour.</p>
<p><a href="{{.AppURL}}/reset-password?token={{.Token}}">Reset your password</a></p>
<p>If you did not request this, you can ignore this email.</p>
`))

// SendApprovalEmail notifies a user their account was approved.
func (m *Mailer) SendApprovalEmail(user *models.User, role models.Role, approver *models.User) error {
	return m.send(user.Email, "Your account has been approved", approvalTmpl, map[string]interface{}{
		"Name":     user.Name,
		"Role":     role,
		"Approver": approver.Name,
		"AppURL":   m.appURL,
	})
}

// SendRejectionEmail notifies a user their registration was rejected.
func (m *Mailer) SendRejectionEmail(user *models.User, reason, adminContact string) error {
	return m.send(user.Email, "Your registration was rejected", rejectionTmpl, map[string]interface{}{
		"Name":         user.Name,
		"Reason":       reason,
		"AdminContact": adminContact,
	})
}

// SendPasswordResetEmail sends a reset link with the given token.
func (m *Mailer) SendPasswordResetEmail(user *models.User, token string) error {
	return m.send(user.Email, "Password reset", resetTmpl, map[string]interface{}{
		"Name":   user.Name,
		"Token":  token,
		"AppURL": m.appURL,
	})
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data interface{}) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body.String())

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
