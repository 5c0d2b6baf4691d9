package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends email notifications via Resend API
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
}

// NewResendNotifier returns nil when no API key is configured.
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
	}
}

// IsConfigured returns true if the notifier has server-side config
func (r *ResendNotifier) IsConfigured() bool {
	return r != nil && r.client != nil && r.fromAddress != ""
}

func (r *ResendNotifier) Send(ctx context.Context, e *Escalation, recipient string) error {
	if recipient == "" {
		return fmt.Errorf("no recipient specified")
	}

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{recipient},
		Subject: Subject(e),
		Html:    formatEmailHTML(e),
	}

	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

func (r *ResendNotifier) Name() string {
	return "resend"
}

// Subject is the alert e-mail subject line.
func Subject(e *Escalation) string {
	who := e.SenderName
	if who == "" {
		who = e.Sender
	}
	return "Guest needs attention: " + who
}

func formatEmailHTML(e *Escalation) string {
	badge, color := "Escalated", "#ffc107"
	if e.Error != "" {
		badge, color = "Auto-reply failed", "#dc3545"
	}

	errorHTML := ""
	if e.Error != "" {
		errorHTML = fmt.Sprintf(`<p style="margin: 8px 0; color: #dc3545;"><strong>Error:</strong> %s</p>`, html.EscapeString(e.Error))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px;">
    <span style="background-color: %s; color: white; padding: 4px 12px; border-radius: 4px; font-size: 12px; font-weight: 600;">%s</span>
    <h2 style="margin: 16px 0; color: #333;">%s</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; border-left: 4px solid #007bff;">
      <p style="margin: 8px 0;"><strong>Guest wrote:</strong> %s</p>
      <p style="margin: 8px 0;"><strong>We replied:</strong> %s</p>
      <p style="margin: 8px 0;"><strong>Decision:</strong> %s (%s)</p>
      %s
    </div>

    <p style="color: #999; font-size: 12px; margin-top: 24px;">Sent at %s</p>
  </div>
</body>
</html>`,
		color,
		badge,
		html.EscapeString(Subject(e)),
		html.EscapeString(e.Question),
		html.EscapeString(e.Reply),
		html.EscapeString(e.Kind),
		html.EscapeString(e.Reason),
		errorHTML,
		e.At.Format("Jan 2, 2006 3:04 PM"),
	)
}
