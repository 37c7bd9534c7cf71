package campaign

import (
	"fmt"
	"strings"
)

// A rule pairs an ordered set of case-insensitive substring predicates with a
// paragraph builder. Rules are scanned top to bottom and the first match wins;
// the tables are deliberately not mutually exclusive (e.g. "Senior Marketing
// Manager" must classify as management, not sales), so the order of each
// table is part of the contract.
type rule struct {
	keywords []string
	build    func(jobTitle string) string
}

func (r rule) matches(normalized string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// SelectParagraph maps a free-text job title to the personalized paragraph
// for the given program. It is pure and total: unrecognized or empty titles
// fall through to a generic paragraph. The raw job title is substituted
// verbatim; only the matching is done on the trimmed, lowercased form.
func SelectParagraph(kind Kind, jobTitle string) string {
	normalized := strings.ToLower(strings.TrimSpace(jobTitle))

	table := educationRules
	fallback := educationDefault
	if kind == Business {
		table = businessRules
		fallback = businessDefault
	}

	for _, r := range table {
		if r.matches(normalized) {
			return r.build(jobTitle)
		}
	}
	return fallback(jobTitle)
}

// --- AI in Education table ---

var educationRules = []rule{
	{
		keywords: []string{"student"},
		build: func(string) string {
			return `As a university student, developing strong AI literacy and practical integration skills can significantly enhance your academic performance and future career opportunities. ` + educationInvite("participants", "applicable in both academic and professional contexts")
		},
	},
	{
		keywords: []string{"director", "general manager", "manager", "head", "principal", "coordinator"},
		build: func(jobTitle string) string {
			return fmt.Sprintf(`As a leader in <strong>%s</strong>, integrating AI into your organization's strategy can drive innovation, improve decision-making, and prepare your teams for the future of education. `, jobTitle) +
				educationInvite("leaders and professionals", "applicable across academic and institutional contexts")
		},
	},
	{
		keywords: []string{"instructor", "lecturer", "professor", "faculty"},
		build: func(jobTitle string) string {
			return fmt.Sprintf(`As a higher education professional serving as <strong>%s</strong>, incorporating AI into your teaching practice can transform how you design courses, engage students, and assess learning outcomes. `, jobTitle) +
				educationInvite("educators", "directly applicable to academic instruction")
		},
	},
	{
		keywords: []string{"teacher", "enseignant", "homeroom", "teaching"},
		build: func(jobTitle string) string {
			var opening string
			if subject := subjectArea(jobTitle); subject != "" {
				opening = fmt.Sprintf(`As a dedicated <strong>%s</strong>, leveraging AI tools can help you create more engaging %s lessons, personalize learning for your students, and streamline your assessment workflows. `, jobTitle, subject)
			} else {
				opening = fmt.Sprintf(`As a dedicated <strong>%s</strong>, leveraging AI tools can help you create more engaging lessons, personalize learning for your students, and streamline your assessment workflows. `, jobTitle)
			}
			return opening + educationInvite("educators", "applicable in classroom settings")
		},
	},
	{
		keywords: []string{"psycholog", "therapist", "counsel"},
		build: func(jobTitle string) string {
			return fmt.Sprintf(`As a professional in <strong>%s</strong>, understanding how AI is shaping education and student support can enhance your practice and help you better serve your clients and institutions. `, jobTitle) +
				educationInvite("professionals", "applicable across educational and clinical contexts")
		},
	},
	{
		keywords: []string{"translat", "freelance", "writer"},
		build: func(jobTitle string) string {
			return fmt.Sprintf(`As a professional working as <strong>%s</strong>, AI tools are rapidly transforming how content is created, translated, and adapted across languages and contexts. `, jobTitle) +
				educationInvite("professionals", "that can enhance your workflow and career prospects")
		},
	},
	{
		keywords: []string{"assessment", "evaluation", "quality"},
		build: func(jobTitle string) string {
			return fmt.Sprintf(`As a professional in <strong>%s</strong>, AI is transforming how assessments are designed, administered, and analyzed in educational settings. `, jobTitle) +
				educationInvite("professionals", "directly applicable to assessment and quality assurance in education")
		},
	},
}

func educationDefault(jobTitle string) string {
	field := jobTitle
	if field == "" {
		field = "your field"
	}
	return fmt.Sprintf(`As a dedicated professional in <strong>%s</strong>, developing strong AI literacy and practical integration skills can significantly enhance your performance and open new opportunities. `, field) +
		educationInvite("participants", "applicable in academic and professional contexts")
}

// educationInvite is the shared closing of every education paragraph; only the
// audience noun and the applicability clause vary per category.
func educationInvite(audience, scope string) string {
	return fmt.Sprintf(`I would be pleased to personally invite you to join the <strong>AI in Education Certificate Program</strong>, a live and practical training offered by the <strong>University of Balamand</strong>. The program is designed to equip %s with structured, responsible, and effective AI integration skills %s.`, audience, scope)
}

// subjectArea derives a teaching subject from the job title, scanned in a
// fixed order so that e.g. "Science and Biology Teacher" reports biology.
func subjectArea(jobTitle string) string {
	jt := strings.ToLower(strings.TrimSpace(jobTitle))
	subjects := []struct {
		keyword string
		label   string
	}{
		{"math", "mathematics"},
		{"english", "English language"},
		{"biology", "biology"},
		{"chemistry", "chemistry"},
		{"physics", "physics"},
		{"science", "science"},
		{"german", "German language"},
	}
	for _, s := range subjects {
		if strings.Contains(jt, s.keyword) {
			return s.label
		}
	}
	return ""
}

// --- AI in Business Automation table ---

var businessRules = []rule{
	{
		keywords: []string{"intern"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `help you build practical AI skills that strengthen your career profile early, learn how AI supports real business workflows without coding, improve productivity in reporting, communication, and task management, and gain hands-on experience with tools used in modern workplaces.`
		},
	},
	{
		keywords: []string{"creative", "design", "art director", "graphic"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `enhance creative and communication workflows in practical ways—such as accelerating content production, improving campaign planning, supporting creative ideation, streamlining client communication, and optimizing internal team collaboration through AI-assisted automation.`
		},
	},
	{
		keywords: []string{"director", "general manager", "ceo", "cfo", "coo", "vp", "vice president"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `support strategic decision-making, enhance business intelligence, streamline operations, and empower leadership teams to drive AI adoption with confidence and clarity.`
		},
	},
	{
		keywords: []string{"manager", "head", "supervisor", "coordinator", "lead"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `help automate repetitive tasks, streamline team workflows, support data-driven reporting and performance tracking, and enable faster, more informed decision-making.`
		},
	},
	{
		keywords: []string{"accountant", "finance", "auditor", "banking"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `automate financial reporting and data analysis, identify patterns and trends in financial data, streamline compliance and audit workflows, and enhance decision support with AI-generated insights.`
		},
	},
	{
		keywords: []string{"sales", "marketing", "business develop"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `automate customer outreach and follow-ups, support market analysis and lead qualification, generate compelling content and proposals, and optimize sales pipelines and marketing campaigns.`
		},
	},
	{
		keywords: []string{"hr", "human resource", "recruit", "talent"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `streamline recruitment and candidate screening, automate HR communications and onboarding, support workforce analytics, and enhance employee engagement through data-driven strategies.`
		},
	},
	{
		keywords: []string{"engineer", "developer", "technical", "it", "software"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `be applied to automate workflows beyond traditional coding, support intelligent reporting and system monitoring, enhance productivity with AI-powered tools, and bridge technical and business AI applications.`
		},
	},
	{
		keywords: []string{"admin", "assistant", "secretary", "office"},
		build: func(jobTitle string) string {
			return businessLead(jobTitle) + `automate routine administrative tasks and communications, organize and summarize information efficiently, improve productivity in scheduling, reporting, and coordination.`
		},
	},
}

func businessDefault(jobTitle string) string {
	role := jobTitle
	if role == "" {
		role = "a professional"
	}
	return businessLead(role) + `help you automate workflows, boost daily productivity, support real business decisions without coding, and improve reporting, communication, and task management.`
}

func businessLead(jobTitle string) string {
	return fmt.Sprintf(`Given your role as <strong>%s</strong>, I believe you may find this certificate especially relevant because it focuses on how AI can `, jobTitle)
}
