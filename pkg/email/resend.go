package email

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/url"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/crowdfunding-backend/internal/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

type EmailService struct {
	client      *resend.Client
	from        string
	fromName    string
	frontendURL string
	templates   *template.Template
	logger      *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) (*EmailService, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &EmailService{
		from:        cfg.Email.FromAddress,
		fromName:    cfg.Email.FromName,
		frontendURL: cfg.FrontendURL,
		templates:   tmpl,
		logger:      logger.Named("email"),
	}
	if cfg.Email.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.Email.ResendAPIKey)
	} else {
		s.logger.Info("RESEND_API_KEY not set, emails are only logged")
	}
	return s, nil
}

// SendPledgeSignInNotice asks the owner of an existing account to sign in and
// submit the pledge again.
func (s *EmailService) SendPledgeSignInNotice(ctx context.Context, email, firstName string) error {
	templateData := map[string]interface{}{
		"FirstName":  firstName,
		"Email":      email,
		"SignInLink": s.frontendURL + "/signin?email=" + url.QueryEscape(email),
		"Year":       time.Now().Year(),
	}

	html, err := s.render("pledge-sign-in.html", templateData)
	if err != nil {
		s.logger.Error("render sign-in notice", zap.String("email", email), zap.Error(err))
		return err
	}

	return s.send(ctx, email, "Bitte melden Sie sich an", html)
}

func (s *EmailService) send(ctx context.Context, to, subject, html string) error {
	if s.client == nil {
		s.logger.Info("email skipped", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("send email", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
