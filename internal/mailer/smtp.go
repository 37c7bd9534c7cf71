package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dialTimeout = 15 * time.Second
	sendTimeout = 30 * time.Second
)

// SMTPTransport talks to the relay over net/smtp. Certificate checks are
// relaxed because the relay is typically an internal host addressed by IP.
type SMTPTransport struct{}

var _ Transport = (*SMTPTransport)(nil)

func (t *SMTPTransport) Verify(ctx context.Context, relay Relay) error {
	client, err := t.connect(ctx, relay)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Noop(); err != nil {
		return fmt.Errorf("relay rejected session: %w", err)
	}
	return client.Quit()
}

func (t *SMTPTransport) Send(ctx context.Context, relay Relay, msg Message) (string, error) {
	client, err := t.connect(ctx, relay)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.Mail(msg.From); err != nil {
		return "", fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range recipients(msg) {
		if err := client.Rcpt(rcpt); err != nil {
			return "", fmt.Errorf("RCPT TO %s rejected: %w", rcpt, err)
		}
	}

	messageID := newMessageID(msg.From, relay.Host)
	w, err := client.Data()
	if err != nil {
		return "", err
	}
	if _, err := w.Write(encode(msg, messageID)); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	if err := client.Quit(); err != nil {
		return "", err
	}
	return messageID, nil
}

func (t *SMTPTransport) connect(ctx context.Context, relay Relay) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: dialTimeout}
	var (
		conn net.Conn
		err  error
	)
	if relay.Secure {
		td := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{InsecureSkipVerify: true}}
		conn, err = td.DialContext(ctx, "tcp", relay.Addr())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", relay.Addr())
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", relay.Addr(), err)
	}
	conn.SetDeadline(time.Now().Add(sendTimeout))

	client, err := smtp.NewClient(conn, relay.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if !relay.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: relay.Host, InsecureSkipVerify: true}); err != nil {
				client.Close()
				return nil, fmt.Errorf("starttls: %w", err)
			}
		}
	}
	return client, nil
}

func recipients(msg Message) []string {
	out := make([]string, 0, 1+len(msg.CC)+len(msg.BCC))
	out = append(out, msg.To)
	out = append(out, msg.CC...)
	out = append(out, msg.BCC...)
	return out
}

// newMessageID builds an RFC 5322 style message id; the relay does not issue
// one, so the gateway mints it before handing the message over.
func newMessageID(from, fallbackDomain string) string {
	domain := fallbackDomain
	if addr, err := mail.ParseAddress(from); err == nil {
		if i := strings.LastIndex(addr.Address, "@"); i >= 0 {
			domain = addr.Address[i+1:]
		}
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// encode renders the MIME message. BCC recipients are intentionally absent
// from the headers.
func encode(msg Message, messageID string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if len(msg.CC) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(msg.CC, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}
