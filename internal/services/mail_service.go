package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService(host, port, user, pass, from string) *MailService {
	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP configuration")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Grove <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

var resetTemplate = template.Must(template.New("reset").Parse(`
<p>Someone requested a password reset for your Grove account.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>The link is valid for 3 days. If you did not ask for this, ignore this email.</p>
`))

// SendPasswordResetEmail mails the reset link embedding the one-time
// token. Delivery is fire-and-forget; the mutation does not wait on SMTP.
func (s *MailService) SendPasswordResetEmail(email, link string) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, map[string]string{"Link": link}); err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "Reset your Grove password", buf.String())
}
