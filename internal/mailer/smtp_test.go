package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageIDUsesSenderDomain(t *testing.T) {
	id := newMessageID("Events <events@example.org>", "relay.internal")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@example.org>"))
}

func TestNewMessageIDFallbackDomain(t *testing.T) {
	id := newMessageID("not an address", "relay.internal")
	assert.True(t, strings.HasSuffix(id, "@relay.internal>"))
}

func TestNewMessageIDUnique(t *testing.T) {
	assert.NotEqual(t,
		newMessageID("a@example.org", "x"),
		newMessageID("a@example.org", "x"))
}

func TestEncodeHeaders(t *testing.T) {
	msg := Message{
		From:    "events@example.org",
		To:      "may@example.org",
		CC:      []string{"cc1@example.org", "cc2@example.org"},
		BCC:     []string{"hidden@example.org"},
		Subject: "Invitation",
		HTML:    "<p>Hello</p>",
	}
	raw := string(encode(msg, "<id@example.org>"))
	head, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)

	assert.Contains(t, head, "From: events@example.org\r\n")
	assert.Contains(t, head, "To: may@example.org\r\n")
	assert.Contains(t, head, "Cc: cc1@example.org, cc2@example.org\r\n")
	assert.Contains(t, head, "Subject: Invitation\r\n")
	assert.Contains(t, head, "Message-ID: <id@example.org>\r\n")
	assert.Contains(t, head, "Content-Type: text/html; charset=utf-8")
	// BCC goes on the envelope only, never into the headers.
	assert.NotContains(t, head, "hidden@example.org")
	assert.Equal(t, "<p>Hello</p>\r\n", body)
}

func TestEncodeOmitsEmptyCc(t *testing.T) {
	raw := string(encode(Message{From: "a@x.org", To: "b@x.org", Subject: "S"}, "<id@x.org>"))
	assert.NotContains(t, raw, "Cc:")
}

func TestRecipients(t *testing.T) {
	msg := Message{
		To:  "to@x.org",
		CC:  []string{"cc@x.org"},
		BCC: []string{"bcc@x.org"},
	}
	assert.Equal(t, []string{"to@x.org", "cc@x.org", "bcc@x.org"}, recipients(msg))
}

func TestRelayAddr(t *testing.T) {
	assert.Equal(t, "smtp.example.org:587", Relay{Host: "smtp.example.org", Port: 587}.Addr())
}
