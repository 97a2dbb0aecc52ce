package services

import (
	"fmt"
	"html"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	sender emailSender
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService(apiKey, from string) {
	if apiKey == "" {
		log.Warn().Msg("RESEND_API_KEY not set, email service will not be available")
		return
	}

	emailService = &EmailService{
		sender: resend.NewClient(apiKey).Emails,
		from:   from,
	}

	log.Info().Msg("email service initialized with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

const emailLayout = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Georgia, 'Times New Roman', serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #7a5c3e;
        }
        .header h1 {
            color: #7a5c3e;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .quote {
            background-color: #f7f3ee;
            border-left: 4px solid #7a5c3e;
            padding: 15px;
            margin: 20px 0;
        }
        .code {
            font-size: 28px;
            letter-spacing: 6px;
            font-weight: bold;
            color: #7a5c3e;
            text-align: center;
            margin: 20px 0;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Grace Harbor Church</h1>
    </div>

    <div class="content">
%s
    </div>

    <div class="footer">
        <p>You are receiving this message because you contacted or subscribed to Grace Harbor Church.</p>
    </div>
</body>
</html>
`

func (s *EmailService) send(to, subject, htmlBody, textBody string) error {
	if s == nil || s.sender == nil {
		return fmt.Errorf("email service not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    fmt.Sprintf(emailLayout, htmlBody),
		Text:    textBody,
	}

	sent, err := s.sender.Send(params)
	if err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("email_id", sent.Id).Msg("email sent")
	return nil
}

// SendContactResponse mails a staff response back to whoever filled in the contact form.
func (s *EmailService) SendContactResponse(toEmail, name, subject, response string) error {
	htmlBody := fmt.Sprintf(`
        <p>Hi %s,</p>
        <p>Thank you for reaching out about "%s". Here is our reply:</p>
        <div class="quote">%s</div>
        <p>Blessings,<br>The Grace Harbor Team</p>`,
		html.EscapeString(name), html.EscapeString(subject), html.EscapeString(response))

	textBody := fmt.Sprintf(`Hi %s,

Thank you for reaching out about "%s". Here is our reply:

%s

Blessings,
The Grace Harbor Team
`, name, subject, response)

	return s.send(toEmail, "Re: "+subject, htmlBody, textBody)
}

// SendNewsletterWelcome greets a new newsletter subscriber.
func (s *EmailService) SendNewsletterWelcome(toEmail string) error {
	htmlBody := `
        <h2>Welcome to our newsletter</h2>
        <p>You will now hear about upcoming events, sermons and ways to serve.</p>
        <p>Blessings,<br>The Grace Harbor Team</p>`

	textBody := `Welcome to our newsletter

You will now hear about upcoming events, sermons and ways to serve.

Blessings,
The Grace Harbor Team
`

	return s.send(toEmail, "Welcome to the Grace Harbor newsletter", htmlBody, textBody)
}

// SendPasswordResetCode mails a staff member the code that unlocks a password reset.
func (s *EmailService) SendPasswordResetCode(toEmail, name, code string, validFor time.Duration) error {
	minutes := int(validFor.Minutes())
	htmlBody := fmt.Sprintf(`
        <p>Hi %s,</p>
        <p>Use this code to reset your dashboard password:</p>
        <div class="code">%s</div>
        <p>The code expires in %d minutes. If you did not ask for a reset you can ignore this email.</p>`,
		html.EscapeString(name), html.EscapeString(code), minutes)

	textBody := fmt.Sprintf(`Hi %s,

Use this code to reset your dashboard password: %s

The code expires in %d minutes. If you did not ask for a reset you can ignore this email.
`, name, code, minutes)

	return s.send(toEmail, "Your Grace Harbor password reset code", htmlBody, textBody)
}
