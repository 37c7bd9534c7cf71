package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-gateway/internal/config"
	"outreach-gateway/internal/contacts"
	"outreach-gateway/internal/intro"
	"outreach-gateway/internal/logger"
	"outreach-gateway/internal/mailer"
)

// stubTransport lets handler tests drive the session without a real relay.
type stubTransport struct {
	failVerify error
	failSend   map[string]error
	sent       []mailer.Message
}

func (s *stubTransport) Verify(_ context.Context, _ mailer.Relay) error {
	return s.failVerify
}

func (s *stubTransport) Send(_ context.Context, _ mailer.Relay, msg mailer.Message) (string, error) {
	s.sent = append(s.sent, msg)
	if err := s.failSend[msg.To]; err != nil {
		return "", err
	}
	return fmt.Sprintf("<%s>", msg.To), nil
}

type gateway struct {
	router    *gin.Engine
	transport *stubTransport
	session   *mailer.Session
	store     *contacts.Store
	gen       *intro.Generator
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	transport := &stubTransport{}
	session := mailer.NewSession(transport, log)
	dispatcher := mailer.NewDispatcher(session, log)
	store := contacts.NewStore()
	gen := intro.NewGenerator(0, log)
	cfg := &config.Config{
		FromEmail:    "events@example.org",
		BatchDelayMs: 0,
		GeminiModel:  "gemini-2.5-flash",
	}

	relayHandler := NewRelayHandler(session)
	mailHandler := NewMailHandler(dispatcher)
	generateHandler := NewGenerateHandler(cfg.GeminiModel)
	contactHandler := NewContactHandler(store, gen, nil)
	campaignHandler := NewCampaignHandler(store, gen, dispatcher, cfg)

	r := gin.New()
	apiGroup := r.Group("/api")
	apiGroup.POST("/configure", relayHandler.Configure)
	apiGroup.POST("/send", mailHandler.Send)
	apiGroup.POST("/send-batch", mailHandler.SendBatch)
	apiGroup.POST("/generate-intro", generateHandler.GenerateIntro)
	apiGroup.POST("/contacts/import", contactHandler.Import)
	apiGroup.GET("/contacts", contactHandler.List)
	apiGroup.PUT("/contacts/:id/title", contactHandler.UpdateTitle)
	apiGroup.POST("/contacts/:id/toggle", contactHandler.Toggle)
	apiGroup.POST("/contacts/toggle-all", contactHandler.ToggleAll)
	apiGroup.GET("/contacts/:id/preview", contactHandler.Preview)
	apiGroup.POST("/campaign/generate", campaignHandler.Generate)
	apiGroup.GET("/campaign/progress", campaignHandler.Progress)
	apiGroup.POST("/campaign/dispatch", campaignHandler.Dispatch)
	apiGroup.POST("/campaign/dispatch/:id", campaignHandler.DispatchOne)
	apiGroup.GET("/campaign/results", campaignHandler.Results)

	return &gateway{router: r, transport: transport, session: session, store: store, gen: gen}
}

func (g *gateway) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)

	var parsed map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func (g *gateway) configure(t *testing.T) {
	t.Helper()
	w, resp := g.do(t, http.MethodPost, "/api/configure",
		gin.H{"host": "smtp.example.org", "port": 587, "secure": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])
}

func (g *gateway) loadContacts(n int) {
	list := make([]contacts.Contact, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, contacts.Contact{
			ID:       i,
			FullName: fmt.Sprintf("Person %d", i),
			Title:    "Ms.",
			Email:    fmt.Sprintf("p%d@example.org", i),
			JobTitle: "Teacher",
		})
	}
	g.store.Load(list)
}

func TestConfigureAcceptsStringPort(t *testing.T) {
	g := newGateway(t)
	w, resp := g.do(t, http.MethodPost, "/api/configure",
		gin.H{"host": "smtp.example.org", "port": "587", "secure": "false"})
	// secure sent as a string is a bind error, reported via the flag.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["success"])

	w, resp = g.do(t, http.MethodPost, "/api/configure",
		gin.H{"host": "smtp.example.org", "port": "587", "secure": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, mailer.StateConnected, g.session.State())
}

func TestConfigureVerifyFailure(t *testing.T) {
	g := newGateway(t)
	g.transport.failVerify = errors.New("connection refused")

	w, resp := g.do(t, http.MethodPost, "/api/configure",
		gin.H{"host": "smtp.example.org", "port": 25})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "connection refused", resp["error"])
	assert.Equal(t, mailer.StateFailed, g.session.State())
}

func TestSendRequiresConfiguredRelay(t *testing.T) {
	g := newGateway(t)
	w, resp := g.do(t, http.MethodPost, "/api/send", gin.H{
		"from": "a@example.org", "to": "b@example.org",
		"subject": "Hi", "html": "<p>hi</p>",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "SMTP not configured", resp["error"])
	assert.Empty(t, g.transport.sent)
}

func TestSendSingleMessage(t *testing.T) {
	g := newGateway(t)
	g.configure(t)

	w, resp := g.do(t, http.MethodPost, "/api/send", gin.H{
		"from": "a@example.org", "to": "b@example.org",
		"subject": "Hi", "html": "<p>hi</p>",
		"cc": "x@example.org; y@example.org",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "<b@example.org>", resp["messageId"])

	require.Len(t, g.transport.sent, 1)
	assert.Equal(t, []string{"x@example.org", "y@example.org"}, g.transport.sent[0].CC)
}

func TestSendBatchReportsPerRecipient(t *testing.T) {
	g := newGateway(t)
	g.configure(t)
	g.transport.failSend = map[string]error{"b@example.org": errors.New("mailbox full")}

	delay := 0
	w, resp := g.do(t, http.MethodPost, "/api/send-batch", SendBatchRequest{
		Emails: []mailer.Outgoing{
			{To: "a@example.org", HTML: "<p>1</p>"},
			{To: "b@example.org", HTML: "<p>2</p>"},
			{To: "c@example.org", HTML: "<p>3</p>"},
		},
		From:    "sender@example.org",
		Subject: "Hello",
		DelayMs: &delay,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	results := resp["results"].([]any)
	require.Len(t, results, 3)
	second := results[1].(map[string]any)
	assert.Equal(t, "b@example.org", second["to"])
	assert.Equal(t, false, second["success"])
	assert.Equal(t, "mailbox full", second["error"])
}

func TestContactsImportAndList(t *testing.T) {
	g := newGateway(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "contacts.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("full_name,email,job_title\nMay Haddad,may@example.org,Teacher\nBad Row,,Clerk\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["loaded"])
	require.Len(t, resp["rejected"].([]any), 1)

	lw, _ := g.do(t, http.MethodGet, "/api/contacts", nil)
	require.Equal(t, http.StatusOK, lw.Code)
	var views []ContactView
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "May Haddad", views[0].FullName)
	assert.True(t, views[0].Selected)
	assert.Equal(t, "pending", views[0].Status)
}

func TestContactTitleAndToggles(t *testing.T) {
	g := newGateway(t)
	g.loadContacts(2)

	w, _ := g.do(t, http.MethodPut, "/api/contacts/0/title", gin.H{"title": "Dr."})
	assert.Equal(t, http.StatusOK, w.Code)
	contact, ok := g.store.Get(0)
	require.True(t, ok)
	assert.Equal(t, "Dr.", contact.Title)

	w, _ = g.do(t, http.MethodPut, "/api/contacts/0/title", gin.H{"title": "Sir"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, resp := g.do(t, http.MethodPost, "/api/contacts/1/toggle", nil)
	assert.Equal(t, float64(1), resp["selected"])

	// All are not selected anymore, so toggle-all selects everyone.
	_, resp = g.do(t, http.MethodPost, "/api/contacts/toggle-all", nil)
	assert.Equal(t, float64(2), resp["selected"])
	_, resp = g.do(t, http.MethodPost, "/api/contacts/toggle-all", nil)
	assert.Equal(t, float64(0), resp["selected"])
}

func TestContactPreview(t *testing.T) {
	g := newGateway(t)
	g.loadContacts(1)

	w, resp := g.do(t, http.MethodGet, "/api/contacts/0/preview?kind=education", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p0@example.org", resp["to"])
	assert.Equal(t, false, resp["ai_personalized"])
	html := resp["html"].(string)
	assert.Contains(t, html, "Dear Ms. Person 0,")

	w, _ = g.do(t, http.MethodGet, "/api/contacts/9/preview?kind=education", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCampaignGenerateValidation(t *testing.T) {
	g := newGateway(t)
	g.loadContacts(1)

	// No key in the request and none configured.
	_, resp := g.do(t, http.MethodPost, "/api/campaign/generate", gin.H{"kind": "education"})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Gemini API key is required", resp["error"])

	_, resp = g.do(t, http.MethodPost, "/api/campaign/generate",
		gin.H{"kind": "weddings", "apiKey": "k"})
	assert.Equal(t, false, resp["success"])
}

func TestGenerateIntroRequiresKey(t *testing.T) {
	g := newGateway(t)
	_, resp := g.do(t, http.MethodPost, "/api/generate-intro",
		gin.H{"name": "May Haddad", "jobTitle": "Teacher"})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Gemini API key is required", resp["error"])
}

func TestCampaignProgressEmpty(t *testing.T) {
	g := newGateway(t)
	_, resp := g.do(t, http.MethodGet, "/api/campaign/progress", nil)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(0), resp["ready"])
}

func TestCampaignDispatch(t *testing.T) {
	g := newGateway(t)
	g.configure(t)
	g.loadContacts(3)
	g.transport.failSend = map[string]error{"p1@example.org": errors.New("rejected")}

	delay := 0
	w, resp := g.do(t, http.MethodPost, "/api/campaign/dispatch",
		DispatchRequest{Kind: "education", DelayMs: &delay})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["sent"])

	// The from address and subject fall back to campaign defaults.
	require.Len(t, g.transport.sent, 3)
	assert.Equal(t, "events@example.org", g.transport.sent[0].From)
	assert.NotEmpty(t, g.transport.sent[0].Subject)

	// Outcomes are visible on the contact list.
	lw, _ := g.do(t, http.MethodGet, "/api/contacts", nil)
	var views []ContactView
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &views))
	assert.Equal(t, "sent", views[0].Status)
	assert.Equal(t, "failed", views[1].Status)
	assert.Equal(t, "rejected", views[1].Error)

	_, resp = g.do(t, http.MethodGet, "/api/campaign/results", nil)
	require.Len(t, resp["results"].([]any), 3)
}

func TestCampaignDispatchRequiresRelay(t *testing.T) {
	g := newGateway(t)
	g.loadContacts(1)

	delay := 0
	_, resp := g.do(t, http.MethodPost, "/api/campaign/dispatch",
		DispatchRequest{Kind: "education", DelayMs: &delay})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "SMTP not configured", resp["error"])
}

func TestCampaignDispatchOne(t *testing.T) {
	g := newGateway(t)
	g.configure(t)
	g.loadContacts(2)

	w, resp := g.do(t, http.MethodPost, "/api/campaign/dispatch/1",
		DispatchRequest{Kind: "business"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "<p1@example.org>", resp["messageId"])

	w, _ = g.do(t, http.MethodPost, "/api/campaign/dispatch/42",
		DispatchRequest{Kind: "business"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCampaignDispatchNoSelection(t *testing.T) {
	g := newGateway(t)
	g.configure(t)
	g.loadContacts(1)
	g.store.Toggle(0)

	delay := 0
	_, resp := g.do(t, http.MethodPost, "/api/campaign/dispatch",
		DispatchRequest{Kind: "education", DelayMs: &delay})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "no contacts selected", resp["error"])
}
