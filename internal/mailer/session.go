package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned by Send and Dispatch when no verified relay
// session exists. It is the only whole-operation failure in the send path;
// everything else is recorded per recipient.
var ErrNotConfigured = errors.New("SMTP not configured")

// State is the delivery session lifecycle:
// Unconfigured -> Verifying -> Connected, or Verifying -> Failed (recoverable
// by reconfiguring). Reconfiguring while Connected discards the old session.
type State int

const (
	StateUnconfigured State = iota
	StateVerifying
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unconfigured"
	}
}

// Relay identifies one mail relay endpoint.
type Relay struct {
	Host   string
	Port   int
	Secure bool
}

func (r Relay) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	CC      []string
	BCC     []string
	Subject string
	HTML    string
}

// Transport performs the actual relay protocol. Verify probes the relay the
// way a configure request requires; Send delivers one message and returns the
// generated message id.
type Transport interface {
	Verify(ctx context.Context, relay Relay) error
	Send(ctx context.Context, relay Relay, msg Message) (string, error)
}

// Session is the single process-wide relay connection state. All sending goes
// through it, and it refuses to send unless the last verification succeeded.
// Handlers run concurrently, so transitions are guarded by a mutex.
type Session struct {
	mu        sync.Mutex
	state     State
	relay     Relay
	transport Transport
	log       zerolog.Logger
}

func NewSession(transport Transport, log zerolog.Logger) *Session {
	return &Session{transport: transport, log: log}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Configure replaces the session settings wholesale and re-verifies. On
// verification failure the session ends up Failed with no usable relay.
func (s *Session) Configure(ctx context.Context, relay Relay) error {
	s.mu.Lock()
	s.state = StateVerifying
	s.relay = relay
	s.mu.Unlock()

	s.log.Info().Str("host", relay.Host).Int("port", relay.Port).Bool("secure", relay.Secure).
		Msg("verifying SMTP relay")

	err := s.transport.Verify(ctx, relay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.relay = Relay{}
		s.log.Error().Err(err).Msg("SMTP verification failed")
		return err
	}
	s.state = StateConnected
	s.log.Info().Str("addr", relay.Addr()).Msg("SMTP relay connected")
	return nil
}

// Send delivers one message through the verified relay.
func (s *Session) Send(ctx context.Context, msg Message) (string, error) {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return "", ErrNotConfigured
	}
	relay := s.relay
	s.mu.Unlock()

	return s.transport.Send(ctx, relay, msg)
}
