package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>Nouveau message depuis le site CAJJ</h3>
  <p><strong>Nom:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))

func buildContactNotificationHTML(msg ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendContactNotification forwards a contact form submission to inbox, with
// the visitor as reply-to.
func (c *BrevoClient) SendContactNotification(ctx context.Context, inbox string, msg ContactMessage) (string, error) {
	if c == nil {
		return "", errors.New("brevo client is nil")
	}
	if strings.TrimSpace(inbox) == "" {
		return "", errors.New("missing contact inbox")
	}
	htmlBody, err := buildContactNotificationHTML(msg)
	if err != nil {
		return "", err
	}
	return c.send(ctx, mail{
		to:      brevoRecipient{Email: inbox, Name: "CAJJ ASBL"},
		replyTo: msg.Email,
		subject: fmt.Sprintf("Message de contact - %s", msg.Name),
		html:    htmlBody,
	})
}
