package mailer

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"
)

// Outgoing is one batch entry: a recipient and its already-rendered body.
type Outgoing struct {
	To   string `json:"to"`
	HTML string `json:"html"`
}

// Batch is a sequential send across multiple recipients sharing envelope
// metadata. Delay is inserted after every attempt except the last.
type Batch struct {
	Emails  []Outgoing
	From    string
	Subject string
	CC      []string
	BCC     []string
	Delay   time.Duration
}

// Result is the per-recipient outcome of a dispatch attempt.
type Result struct {
	To        string `json:"to"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Dispatcher runs batches through the delivery session, one recipient at a
// time. A failed recipient never stops the rest of the batch.
type Dispatcher struct {
	session *Session
	sleep   func(time.Duration)
	log     zerolog.Logger
}

func NewDispatcher(session *Session, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{session: session, sleep: time.Sleep, log: log}
}

// Dispatch sends every entry in input order and returns one result per entry,
// in the same order. It fails fast with ErrNotConfigured before any attempt
// when the session is not connected; after that point errors are data.
func (d *Dispatcher) Dispatch(ctx context.Context, batch Batch) ([]Result, error) {
	if d.session.State() != StateConnected {
		return nil, ErrNotConfigured
	}

	d.log.Info().Int("count", len(batch.Emails)).Str("from", batch.From).
		Dur("delay", batch.Delay).Msg("dispatching batch")

	results := make([]Result, 0, len(batch.Emails))
	for i, email := range batch.Emails {
		msg := Message{
			From:    batch.From,
			To:      email.To,
			CC:      batch.CC,
			BCC:     batch.BCC,
			Subject: batch.Subject,
			HTML:    email.HTML,
		}

		messageID, err := d.session.Send(ctx, msg)
		if err != nil {
			d.log.Error().Err(err).Str("to", email.To).Int("index", i+1).Msg("send failed")
			results = append(results, Result{To: email.To, Error: err.Error()})
		} else {
			d.log.Info().Str("to", email.To).Str("message_id", messageID).
				Int("index", i+1).Int("total", len(batch.Emails)).Msg("sent")
			results = append(results, Result{To: email.To, Success: true, MessageID: messageID})
		}

		if i < len(batch.Emails)-1 && batch.Delay > 0 {
			d.sleep(batch.Delay)
		}
	}
	return results, nil
}

// SendOne is the degenerate single-recipient batch: no pacing delay, same
// gating and result shape.
func (d *Dispatcher) SendOne(ctx context.Context, msg Message) (Result, error) {
	results, err := d.Dispatch(ctx, Batch{
		Emails:  []Outgoing{{To: msg.To, HTML: msg.HTML}},
		From:    msg.From,
		Subject: msg.Subject,
		CC:      msg.CC,
		BCC:     msg.BCC,
	})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

var addressListSep = regexp.MustCompile(`[;,]\s*`)

// SplitAddressList splits a "a@b; c@d, e@f" style header value.
func SplitAddressList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range addressListSep.Split(s, -1) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
