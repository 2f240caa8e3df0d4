package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"
)

// MailerConfig carries the SMTP credentials. An empty password means the
// channel reports itself unavailable instead of erroring.
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer is the primary channel: a direct transactional email send over
// SMTP. On success it additionally sends the submitter confirmation,
// best-effort.
type Mailer struct {
	cfg        MailerConfig
	recipients []string
	fromName   string
}

func NewMailer(cfg MailerConfig, recipients []string, fromName string) *Mailer {
	return &Mailer{
		cfg:        cfg,
		recipients: recipients,
		fromName:   fromName,
	}
}

func (m *Mailer) Name() string { return "smtp" }

func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if m.cfg.Password == "" {
		return ErrNotConfigured
	}
	if len(m.recipients) == 0 {
		return ErrNotConfigured
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client setup failed: %w", err)
	}

	adminMsg, err := m.compose(msg.Subject, msg.Text, msg.HTML, m.recipients[0], m.recipients[1:], msg.SenderEmail)
	if err != nil {
		return fmt.Errorf("compose admin mail failed: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, adminMsg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	if msg.Confirm != nil {
		confirmMsg, errCompose := m.compose(msg.Confirm.Subject, "", msg.Confirm.HTML, msg.Confirm.To, nil, "")
		if errCompose != nil {
			log.Printf("[notify] compose confirmation failed: %v", errCompose)
			return nil
		}
		if errSend := client.DialAndSendWithContext(ctx, confirmMsg); errSend != nil {
			// Confirmation is best-effort; the notification itself went out.
			log.Printf("[notify] confirmation send failed: %v", errSend)
		}
	}

	return nil
}

func (m *Mailer) compose(subject, text, html, to string, cc []string, replyTo string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.cfg.Username); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	if len(cc) > 0 {
		if err := msg.Cc(cc...); err != nil {
			return nil, err
		}
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return nil, err
		}
	}
	msg.Subject(subject)
	if text != "" {
		msg.SetBodyString(mail.TypeTextPlain, text)
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	} else {
		msg.SetBodyString(mail.TypeTextHTML, html)
	}
	return msg, nil
}
