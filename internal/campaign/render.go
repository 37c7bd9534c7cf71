package campaign

import (
	"fmt"
	"strings"
)

// RenderEmail composes the full HTML invitation body for one recipient.
// aiIntro, when non-empty, replaces the rule-based paragraph for the
// education program; the business layout always uses the rule-based role
// paragraph.
func RenderEmail(kind Kind, fullName, jobTitle, aiIntro, title string) string {
	greeting := greeting(fullName, title)
	if kind == Business {
		return fmt.Sprintf(businessBody, greeting, SelectParagraph(Business, jobTitle))
	}
	intro := aiIntro
	if intro == "" {
		intro = SelectParagraph(Education, jobTitle)
	}
	return fmt.Sprintf(educationBody, greeting, intro)
}

func greeting(fullName, title string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "Participant"
	}
	if title == "" {
		return name
	}
	return title + " " + name
}

const educationBody = `
<div style="font-family: Calibri, Arial, sans-serif; font-size: 14px; color: #333; line-height: 1.6;">
  <p>Dear %s,</p>
  <p>I hope this message finds you well.</p>
  <p>%s</p>
  <h3 style="color: #1a5276;">Information Session</h3>
  <p>
    &#x1F4C5; <strong>Friday, February 27, 2026</strong><br/>
    &#x1F554; <strong>5:30 PM</strong> (Online via Microsoft Teams)<br/>
    &#x1F517; <strong>Information Session Link:</strong><br/>
    <a href="https://events.teams.microsoft.com/event/96f7a06c-df3d-4fe4-9a21-02f6b8b0f17e@8a122edf-f8bc-4af9-abca-7a7977b9e7cf" style="color: #2980b9;">Join the Information Session</a>
  </p>
  <p>During this session, we will present the full course structure, learning outcomes, practical applications, and answer any questions you may have before registration.</p>
  <h3 style="color: #1a5276;">&#x1F4D8; Program Summary</h3>
  <ul style="list-style: none; padding-left: 0;">
    <li><strong>Program Start Date:</strong> March 6, 2026</li>
    <li><strong>Total Duration:</strong> 24 hours (8 sessions, 3 hours each, scheduled from 5:00 PM to 8:00 PM)</li>
    <li><strong>Format:</strong> Live, 100%% online</li>
    <li><strong>Program Fee:</strong> $250</li>
    <li><strong>Facilitator:</strong> Rabih Kahaleh, M.A., Ph.D. Researcher in Generative AI in Education</li>
  </ul>
  <h3 style="color: #1a5276;">&#x1F393; Certification</h3>
  <p>Participants who successfully complete the program and meet the certificate requirements will receive an official <strong>Certificate of Completion</strong> issued by the <strong>University of Balamand</strong>.</p>
  <h3 style="color: #1a5276;">&#x1F3AF; What You'll Gain</h3>
  <p>By the end of the program, you will be able to:</p>
  <ul>
    <li>Understand key AI applications in education</li>
    <li>Differentiate between generative and traditional AI models</li>
    <li>Critically evaluate AI tools for instructional use</li>
    <li>Design AI-enhanced learning activities</li>
    <li>Apply responsible and ethical AI practices</li>
    <li>Develop a practical final project aligned with your teaching context</li>
  </ul>
  <h3 style="color: #1a5276;">&#x1F4CC; Registration (Required First Step)</h3>
  <p>Please complete your registration first using the link below:<br/>
    <a href="https://sisweb.balamand.edu.lb/pls/apex/f?p=100:101:::::P101_MAJOR:3426" style="color: #2980b9;">Register Here</a>
  </p>
  <p><strong>Important:</strong> Registration must be completed before proceeding with payment. Otherwise, your payment will not be linked to your registration record in the system.</p>
  <h3 style="color: #1a5276;">&#x1F4CC; Payment (After Registration)</h3>
  <p>After registering, you may complete your payment through:<br/>
    <a href="https://forms.balamand.edu.lb/Certificates/" style="color: #2980b9;">Payment Portal</a><br/>
    (Select <strong>"AI in Education"</strong> from the Certificate Name dropdown menu.)
  </p>
  <p>For assistance with registration or payment, you may contact:<br/>
    <strong>Mrs. Jacky Nicolas</strong> - <a href="mailto:jacky.nicolas@balamand.edu.lb">jacky.nicolas@balamand.edu.lb</a><br/>
    <strong>Dr. Imad Zakhem</strong> - <a href="mailto:izakhem@balamand.edu.lb">izakhem@balamand.edu.lb</a>
  </p>
  <p>For any academic or course-related questions, please feel free to contact me directly. I look forward to welcoming you to the information session and to the program.</p>
  <p style="margin-top: 20px;">
    Warm regards,<br/>
    <strong>Rabih Kahaleh</strong><br/>
    M.A., Ph.D. Researcher in Generative AI in Education<br/>
    University of Balamand<br/>
    <a href="mailto:rabih.kahaleh@balamand.edu.lb">rabih.kahaleh@balamand.edu.lb</a>
  </p>
</div>`

const businessBody = `
<div style="font-family: Calibri, Arial, sans-serif; font-size: 14px; color: #333; line-height: 1.6;">
  <p>Dear %s,</p>
  <p>I hope this message finds you well.</p>
  <p>I am writing to invite you to the <strong>AI in Action: Business Automation &amp; Decision-Making Certificate Program</strong>, a live and fully online program offered by the <strong>University of Balamand</strong>. This practical and hands-on program equips professionals with the skills to apply AI in real business workflows—particularly in decision support, reporting, process automation, and productivity—without requiring any programming background.</p>
  <p>%s</p>
  <p>This program was designed with one main idea in mind: AI is not only for big companies or technical teams—it is for professionals who want to work smarter, faster, and more strategically. Across its interactive sessions and hands-on activities, the course demonstrates how AI can be applied to real business challenges in a structured and practical way.</p>
  <h3 style="color: #1a5276;">&#x1F3AF; What You'll Gain</h3>
  <ul>
    <li>A clear understanding of how AI is applied in modern business operations</li>
    <li>Practical skills in prompt engineering and workflow automation</li>
    <li>Experience using AI to automate communication and follow-ups</li>
    <li>The ability to generate business reports and insights from spreadsheets</li>
    <li>Confidence applying AI to finance, operations, and business strategy</li>
    <li>Ethical and strategic insight into responsible AI use and decision-making</li>
  </ul>
  <h3 style="color: #1a5276;">&#x1F464; Is This for You?</h3>
  <p>Yes—this program is built for professionals like you. You don't need a technical background—just curiosity, initiative, and real workplace challenges you want to solve more efficiently.</p>
  <h3 style="color: #1a5276;">&#x1F4D8; Program Summary</h3>
  <ul style="list-style: none; padding-left: 0;">
    <li><strong>Format:</strong> Live, 100%% online, highly interactive</li>
    <li><strong>Duration:</strong> 18 hours (6 sessions &#xd7; 3 hours)</li>
    <li><strong>Program Fee:</strong> $500</li>
    <li><strong>Hands-On Tools:</strong> Google Sheets, Gemini API, ChatGPT, Claude, Microsoft Copilot</li>
    <li><strong>Facilitator:</strong> Rabih Kahaleh, M.A., Ph.D. Researcher in Generative AI in Education</li>
    <li><strong>Modules:</strong>
      <ul style="margin-top: 4px;">
        <li>Module 1: AI Foundations &amp; Workflow Automation</li>
        <li>Module 2: Data Intelligence &amp; Decision Support</li>
        <li>Module 3: AI for Customer Engagement &amp; Ethical Deployment</li>
      </ul>
    </li>
  </ul>
  <p><strong>Program Details:</strong><br/>
    <a href="https://www.balamand.edu.lb/faculties/FOBM/AICertificate/Pages/default.aspx" style="color: #2980b9;">https://www.balamand.edu.lb/faculties/FOBM/AICertificate/Pages/default.aspx</a>
  </p>
  <h3 style="color: #1a5276;">&#x1F4CC; Registration (Online)</h3>
  <p>To apply online, please use the link below:<br/>
    <a href="https://sisweb.balamand.edu.lb/pls/apex/f?p=100:101:::::P101_MAJOR:3476" style="color: #2980b9;">https://sisweb.balamand.edu.lb/pls/apex/f?p=100:101:::::P101_MAJOR:3476</a>
  </p>
  <p>If you need any assistance with the registration process, you may also contact:<br/>
    <strong>Mrs. Nathalie Ashkar</strong> – <a href="mailto:nathalie.ashkar@balamand.edu.lb">nathalie.ashkar@balamand.edu.lb</a>, +961 70 647 286<br/>
    <strong>Dr. Layal Omran</strong> – <a href="mailto:layal.n.omran@fty.balamand.edu.lb">layal.n.omran@fty.balamand.edu.lb</a>, +961 70 791 792
  </p>
  <p>For any academic or content-related questions, please feel free to contact me directly.</p>
  <p style="margin-top: 20px;">
    <strong>Rabih Kahaleh</strong><br/>
    Ph.D. Researcher in AI in Education<br/>
    Software &amp; Web Development Manager<br/>
    Information Technology<br/>
    T: +961 6 930 250 | EXT: 3566<br/>
    <a href="http://www.balamand.edu.lb/" style="color: #2980b9;">http://www.balamand.edu.lb/</a>
  </p>
</div>`
