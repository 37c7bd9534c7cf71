package intro

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"outreach-gateway/internal/campaign"
	"outreach-gateway/internal/contacts"
)

// TextClient produces one personalized opening paragraph per recipient.
// gemini.Client implements it.
type TextClient interface {
	GenerateIntro(ctx context.Context, kind campaign.Kind, name, jobTitle string) (string, error)
}

// Progress is the (processed, total) counter of the current or last run.
type Progress struct {
	Done  int `json:"current"`
	Total int `json:"total"`
}

// Generator fills the personalized-intro cache, one external call at a time.
// Entries are write-once per contact id; re-running over a superset of
// contacts only requests the ids still missing. A failed call leaves no cache
// entry, so the contact falls back to the rule-based paragraph and will be
// retried by the next run.
type Generator struct {
	pace  time.Duration
	sleep func(time.Duration)
	log   zerolog.Logger

	runMu sync.Mutex // serializes Generate: one outstanding call chain at a time

	mu       sync.RWMutex
	intros   map[int]string
	progress Progress
}

func NewGenerator(pace time.Duration, log zerolog.Logger) *Generator {
	return &Generator{
		pace:   pace,
		sleep:  time.Sleep,
		log:    log,
		intros: make(map[int]string),
	}
}

// Generate attempts an intro for every listed contact, strictly in order.
// Cached contacts are skipped; between successive new requests it waits the
// pacing interval (never after the last). Per-contact failures are logged and
// skipped, never aborting the batch. On return the progress counter reads
// (len(list), len(list)).
func (g *Generator) Generate(ctx context.Context, client TextClient, kind campaign.Kind, list []contacts.Contact) {
	g.runMu.Lock()
	defer g.runMu.Unlock()

	g.setProgress(0, len(list))

	requested := false
	for i, c := range list {
		if _, ok := g.Intro(c.ID); ok {
			g.setProgress(i+1, len(list))
			continue
		}

		if requested {
			g.sleep(g.pace)
		}
		requested = true

		text, err := client.GenerateIntro(ctx, kind, c.FullName, c.JobTitle)
		if err != nil {
			g.log.Error().Err(err).Str("contact", c.FullName).Int("id", c.ID).
				Msg("intro generation failed, keeping rule-based paragraph")
		} else {
			g.store(c.ID, text)
		}
		g.setProgress(i+1, len(list))
	}
}

// Intro returns the cached paragraph for a contact, if one was generated.
func (g *Generator) Intro(id int) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	text, ok := g.intros[id]
	return text, ok
}

// Count reports how many intros are cached.
func (g *Generator) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.intros)
}

func (g *Generator) Progress() Progress {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.progress
}

// Reset drops the cache and progress, for when a new contact list is loaded.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intros = make(map[int]string)
	g.progress = Progress{}
}

func (g *Generator) store(id int, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.intros[id]; !ok {
		g.intros[id] = text
	}
}

func (g *Generator) setProgress(done, total int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.progress = Progress{Done: done, Total: total}
}
