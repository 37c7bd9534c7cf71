package contacts

import (
	"fmt"
	"sync"

	"outreach-gateway/internal/mailer"
)

// Contact is one outreach recipient. Only Title may change after ingestion
// (the operator can correct the guessed honorific before dispatch).
type Contact struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone_number"`
	Country  string `json:"country"`
	JobTitle string `json:"job_title"`
}

// Honorifics accepted for Contact.Title.
var validTitles = map[string]bool{"Mr.": true, "Ms.": true, "Dr.": true, "Prof.": true}

// Store owns the in-memory ordered contact list for the current campaign,
// the selection set (which contacts join the next batch) and the display
// result per address. It is the single writer for all three; handlers only
// go through its methods.
type Store struct {
	mu       sync.RWMutex
	contacts []Contact
	selected map[int]bool
	results  map[string]mailer.Result
	byID     map[int]int
}

func NewStore() *Store {
	return &Store{
		selected: make(map[int]bool),
		results:  make(map[string]mailer.Result),
		byID:     make(map[int]int),
	}
}

// Load replaces the contact list. Everything derived from the previous load
// (selection, results) is discarded and all new contacts start selected.
func (s *Store) Load(list []Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = make([]Contact, len(list))
	copy(s.contacts, list)
	s.selected = make(map[int]bool, len(list))
	s.results = make(map[string]mailer.Result)
	s.byID = make(map[int]int, len(list))
	for i, c := range list {
		s.selected[c.ID] = true
		s.byID[c.ID] = i
	}
}

// All returns the contacts in load order.
func (s *Store) All() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *Store) Get(id int) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Contact{}, false
	}
	return s.contacts[i], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// SetTitle updates the honorific used in the greeting.
func (s *Store) SetTitle(id int, title string) error {
	if !validTitles[title] {
		return fmt.Errorf("invalid title %q", title)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown contact id %d", id)
	}
	s.contacts[i].Title = title
	return nil
}

// Toggle flips one contact's membership in the selection set.
func (s *Store) Toggle(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("unknown contact id %d", id)
	}
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
	return nil
}

// ToggleAll selects every contact, or clears the selection when every contact
// is already selected.
func (s *Store) ToggleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected) == len(s.contacts) {
		s.selected = make(map[int]bool)
		return
	}
	for _, c := range s.contacts {
		s.selected[c.ID] = true
	}
}

func (s *Store) IsSelected(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[id]
}

// Selected returns the selected contacts in load order.
func (s *Store) Selected() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Contact
	for _, c := range s.contacts {
		if s.selected[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// RecordResults merges dispatch results into the display state, keyed by
// address. A later result for the same address supersedes the earlier one, so
// a retried contact shows only its latest outcome.
func (s *Store) RecordResults(results []mailer.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		s.results[r.To] = r
	}
}

// ResultFor returns the latest outcome recorded for an address.
func (s *Store) ResultFor(email string) (mailer.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[email]
	return r, ok
}

// Results returns the display results in contact load order; addresses
// without an attempt are skipped.
func (s *Store) Results() []mailer.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []mailer.Result
	for _, c := range s.contacts {
		if r, ok := s.results[c.Email]; ok {
			out = append(out, r)
		}
	}
	return out
}
