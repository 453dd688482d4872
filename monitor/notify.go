package monitor

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

type MailSender interface {
	Send(subject string, body string) error
}

type SMTPConfig struct {
	Addr    string
	From    string
	To      []string
	Timeout time.Duration
}

// SMTPClient delivers plain-text mail over an unauthenticated relay.
type SMTPClient struct {
	cfg SMTPConfig
}

func NewSMTPClient(cfg SMTPConfig) *SMTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPClient{cfg: cfg}
}

func (c *SMTPClient) Send(subject string, body string) error {
	conn, err := net.DialTimeout("tcp", c.cfg.Addr, c.cfg.Timeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.cfg.Timeout))

	host, _, err := net.SplitHostPort(c.cfg.Addr)
	if err != nil {
		host = c.cfg.Addr
	}
	cl, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer cl.Close()

	if err := cl.Mail(c.cfg.From); err != nil {
		return err
	}
	for _, rcpt := range c.cfg.To {
		if err := cl.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := cl.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		c.cfg.From, strings.Join(c.cfg.To, ", "), subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return cl.Quit()
}

// Notifier sends exactly one mail per cycle: an alert listing the breaching
// turbines, or the all-normal notice.
type Notifier struct {
	sender MailSender
	log    *zap.Logger
}

func NewNotifier(sender MailSender, log *zap.Logger) *Notifier {
	return &Notifier{sender: sender, log: log}
}

func (n *Notifier) Notify(d Decision) error {
	var subject, body string
	switch d.Path {
	case AlertPath:
		subject = "Turbine Alert"
		body = fmt.Sprintf("Turbines above the temperature threshold: %s", d.Payload())
	default:
		subject = "Turbine Advise"
		body = "All turbine temperatures normal."
	}
	if err := n.sender.Send(subject, body); err != nil {
		notificationsTotal.WithLabelValues(d.Path.String(), "error").Inc()
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}
	notificationsTotal.WithLabelValues(d.Path.String(), "ok").Inc()
	n.log.Debug("notification sent", zap.String("path", d.Path.String()), zap.String("turbines", d.Payload()))
	return nil
}
