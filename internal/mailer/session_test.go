package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-gateway/internal/logger"
)

// fakeTransport records every call; failVerify/failSend inject errors.
type fakeTransport struct {
	verified   []Relay
	sent       []Message
	sentRelays []Relay
	failVerify error
	failSend   map[string]error // keyed by To address
	nextID     int
}

func (f *fakeTransport) Verify(_ context.Context, relay Relay) error {
	f.verified = append(f.verified, relay)
	return f.failVerify
}

func (f *fakeTransport) Send(_ context.Context, relay Relay, msg Message) (string, error) {
	f.sent = append(f.sent, msg)
	f.sentRelays = append(f.sentRelays, relay)
	if err := f.failSend[msg.To]; err != nil {
		return "", err
	}
	f.nextID++
	return "<" + msg.To + ">", nil
}

var testRelay = Relay{Host: "smtp.example.org", Port: 587}

func TestSessionStartsUnconfigured(t *testing.T) {
	s := NewSession(&fakeTransport{}, logger.Nop())
	assert.Equal(t, StateUnconfigured, s.State())

	_, err := s.Send(context.Background(), Message{To: "x@example.org"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfigureSuccess(t *testing.T) {
	tr := &fakeTransport{}
	s := NewSession(tr, logger.Nop())

	require.NoError(t, s.Configure(context.Background(), testRelay))
	assert.Equal(t, StateConnected, s.State())
	require.Len(t, tr.verified, 1)
	assert.Equal(t, testRelay, tr.verified[0])

	id, err := s.Send(context.Background(), Message{From: "a@example.org", To: "b@example.org"})
	require.NoError(t, err)
	assert.Equal(t, "<b@example.org>", id)
	require.Len(t, tr.sentRelays, 1)
	assert.Equal(t, testRelay, tr.sentRelays[0])
}

func TestConfigureFailureClearsRelay(t *testing.T) {
	tr := &fakeTransport{failVerify: errors.New("connection refused")}
	s := NewSession(tr, logger.Nop())

	err := s.Configure(context.Background(), testRelay)
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())

	_, err = s.Send(context.Background(), Message{To: "x@example.org"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestReconfigureReplacesSession(t *testing.T) {
	tr := &fakeTransport{}
	s := NewSession(tr, logger.Nop())
	require.NoError(t, s.Configure(context.Background(), testRelay))

	// A failed reconfigure must not leave the old session usable.
	tr.failVerify = errors.New("auth rejected")
	require.Error(t, s.Configure(context.Background(), Relay{Host: "other.example.org", Port: 465, Secure: true}))
	assert.Equal(t, StateFailed, s.State())
	_, err := s.Send(context.Background(), Message{To: "x@example.org"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	// Recovering with a good relay works.
	tr.failVerify = nil
	require.NoError(t, s.Configure(context.Background(), testRelay))
	assert.Equal(t, StateConnected, s.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unconfigured", StateUnconfigured.String())
	assert.Equal(t, "verifying", StateVerifying.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "failed", StateFailed.String())
}
