package campaign

import "fmt"

// Kind selects which certificate program an invitation belongs to. It drives
// the paragraph rule table, the HTML body layout and the fixed delivery
// metadata (subject, cc, bcc).
type Kind string

const (
	Education Kind = "education"
	Business  Kind = "business"
)

// Info carries the fixed per-program metadata, used verbatim in delivery.
type Info struct {
	Label       string `json:"label"`
	Subject     string `json:"subject"`
	CC          string `json:"cc"`
	BCC         string `json:"bcc"`
	HeaderColor string `json:"header_color"`
}

var programs = map[Kind]Info{
	Education: {
		Label:       "AI in Education",
		Subject:     "Invitation to AI in Education Certificate Program - University of Balamand",
		CC:          "rabih.kahaleh@balamand.edu.lb; Guenia.Zgheib@balamand.edu.lb; Jacky.Nicolas@balamand.edu.lb; izakhem@balamand.edu.lb",
		BCC:         "rabih.kahaleh@balamand.edu.lb",
		HeaderColor: "#1a5276",
	},
	Business: {
		Label:       "AI in Business Automation",
		Subject:     "Invitation to AI in Action: Business Automation & Decision-Making - University of Balamand",
		CC:          "rabih.kahaleh@balamand.edu.lb",
		BCC:         "rabih.kahaleh@balamand.edu.lb",
		HeaderColor: "#1a5276",
	},
}

// ParseKind validates a request-supplied program name. An empty value
// defaults to Education.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Education, Business:
		return Kind(s), nil
	case "":
		return Education, nil
	}
	return "", fmt.Errorf("unknown campaign kind %q", s)
}

// Meta returns the fixed metadata for a program kind.
func Meta(kind Kind) Info {
	if info, ok := programs[kind]; ok {
		return info
	}
	return programs[Education]
}
