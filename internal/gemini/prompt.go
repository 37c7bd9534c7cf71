package gemini

import "fmt"

func educationPrompt(name, jobTitle string) string {
	return fmt.Sprintf(`You are writing a professional email invitation on behalf of Rabih Kahaleh from the University of Balamand, inviting someone to join the "AI in Education Certificate Program".

Write ONLY a single personalized introductory paragraph (2-3 sentences max) for the following person:
- Name: %s
- Job Title/Role: %s

The paragraph should:
- Acknowledge their specific role/profession naturally
- Explain why AI literacy is relevant to their specific field
- Transition into inviting them to the AI in Education Certificate Program by the University of Balamand
- Be warm, professional, and concise
- NOT include any greeting (no "Dear..."), NOT include any sign-off
- NOT mention the information session details, dates, or registration links

Return ONLY the paragraph text, nothing else.`, name, jobTitle)
}

func businessPrompt(name, jobTitle string) string {
	return fmt.Sprintf(`You are writing a professional email invitation on behalf of Rabih Kahaleh from the University of Balamand, inviting someone to join the "AI in Action: Business Automation & Decision-Making Certificate Program".

Write ONLY a single personalized introductory paragraph (2-3 sentences max) for the following person:
- Name: %s
- Job Title/Role: %s

The paragraph should:
- Acknowledge their specific role/profession naturally
- Explain how AI-driven automation and decision support are relevant to their specific line of work
- Transition into inviting them to the AI in Action: Business Automation & Decision-Making Certificate Program by the University of Balamand
- Be warm, professional, and concise
- NOT include any greeting (no "Dear..."), NOT include any sign-off
- NOT mention program fees, dates, or registration links

Return ONLY the paragraph text, nothing else.`, name, jobTitle)
}
