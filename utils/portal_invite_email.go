package utils

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
	"strings"
)

// SendPortalInviteEmail mails a guest their portal access link. When SMTP is not
// configured the mail is logged instead so local development keeps working.
func SendPortalInviteEmail(recipientEmail, portalLink, guestName, propertyName string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		slog.Info("mock portal invite email", "to", recipientEmail, "link", portalLink)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	propertyName = safe(propertyName)
	portalLink = safe(portalLink)

	if !(strings.HasPrefix(portalLink, "http://") || strings.HasPrefix(portalLink, "https://")) {
		portalLink = "https://" + strings.TrimLeft(portalLink, "/")
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Your guest portal access - %s", propertyName)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your guest portal for %s is ready. Use the link below to view your\n"+
			"booking, request maintenance, or chat with reception:\n%s\n\n"+
			"This link is personal; please do not share it.\n",
		guestName, propertyName, portalLink,
	)

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + recipientEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, smtpUser, to, []byte(msg))
}
