package contacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"
)

// Rejection explains why an ingested row was not turned into a contact.
type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

var (
	nameSanitizer  = regexp.MustCompile(`[^\w\s.'-]`)
	emailSanitizer = regexp.MustCompile(`[^\w@.+\-]`)
)

// ParseCSV reads a contact sheet with a header row. Recognized columns:
// full_name, email, phone_number, country, job_title. Rows without a usable
// email are rejected with a reason instead of being silently dropped; ids are
// assigned in row order and are stable for the session.
func ParseCSV(r io.Reader) ([]Contact, []Rejection, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["email"]; !ok {
		return nil, nil, fmt.Errorf("missing required column %q", "email")
	}

	var (
		contacts   []Contact
		rejections []Rejection
		line       = 1
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rejections = append(rejections, Rejection{Line: line, Reason: err.Error()})
			continue
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		contact, err := normalizeRow(len(contacts), field)
		if err != nil {
			rejections = append(rejections, Rejection{Line: line, Reason: err.Error()})
			continue
		}
		contacts = append(contacts, contact)
	}
	return contacts, rejections, nil
}

// normalizeRow sanitizes one row into a valid contact or a rejection reason.
func normalizeRow(id int, field func(string) string) (Contact, error) {
	email := strings.TrimSpace(emailSanitizer.ReplaceAllString(field("email"), ""))
	if email == "" {
		return Contact{}, fmt.Errorf("missing email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Contact{}, fmt.Errorf("invalid email %q", email)
	}

	fullName := strings.TrimSpace(nameSanitizer.ReplaceAllString(field("full_name"), ""))
	return Contact{
		ID:       id,
		FullName: fullName,
		Title:    GuessTitle(fullName),
		Email:    email,
		Phone:    strings.TrimSpace(field("phone_number")),
		Country:  strings.TrimSpace(field("country")),
		JobTitle: strings.TrimSpace(field("job_title")),
	}, nil
}

// First names the campaign operators have seen on past lists, used to guess
// an honorific; the guess can be corrected per contact before dispatch.
var femaleNames = map[string]bool{
	"may": true, "maya": true, "yara": true, "paula": true, "dana": true, "manal": true,
	"beatrice": true, "amal": true, "hanan": true, "zainab": true, "barbara": true,
	"salma": true, "talar": true, "rafa": true, "diana": true, "dina": true, "mabelle": true,
	"eliane": true, "faten": true, "fadia": true, "mariane": true, "nicole": true,
	"fida": true, "donna": true, "yvonne": true, "dayana": true, "maria": true,
	"razane": true, "reina": true, "zaynab": true, "warde": true, "razan": true,
	"slaiby": true, "frida": true, "donna-maria": true, "jacky": true, "sara": true,
	"lina": true, "nour": true, "rima": true, "nadine": true, "carmen": true,
	"joelle": true, "celine": true, "marie": true, "mirna": true, "rita": true,
	"rania": true, "sylvie": true, "alaa": true, "zaynabt": true, "nathalie": true,
	"layal": true,
}

var maleNames = map[string]bool{
	"georges": true, "joe": true, "kamel": true, "rodolph": true, "hasan": true,
	"michel": true, "rabih": true, "imad": true, "pierre": true, "elie": true,
	"tony": true, "antoine": true, "charbel": true, "sami": true, "walid": true,
	"omar": true, "hassan": true, "ali": true, "ahmad": true, "khalil": true,
	"fadi": true, "rami": true, "samir": true, "nabil": true,
}

// GuessTitle picks an honorific from the first name, defaulting to "Ms.".
func GuessTitle(fullName string) string {
	fields := strings.Fields(strings.TrimSpace(fullName))
	if len(fields) == 0 {
		return "Ms."
	}
	first := strings.ToLower(fields[0])
	if maleNames[first] {
		return "Mr."
	}
	if femaleNames[first] {
		return "Ms."
	}
	return "Ms."
}
