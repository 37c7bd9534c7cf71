package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"outreach-gateway/internal/campaign"
	"outreach-gateway/internal/config"
	"outreach-gateway/internal/contacts"
	"outreach-gateway/internal/gemini"
	"outreach-gateway/internal/intro"
	"outreach-gateway/internal/mailer"
)

// CampaignHandler drives a campaign over the selected contacts: generating
// personalized intros and dispatching the rendered invitations.
type CampaignHandler struct {
	Store      *contacts.Store
	Gen        *intro.Generator
	Dispatcher *mailer.Dispatcher
	Config     *config.Config
}

func NewCampaignHandler(store *contacts.Store, gen *intro.Generator, dispatcher *mailer.Dispatcher, cfg *config.Config) *CampaignHandler {
	return &CampaignHandler{Store: store, Gen: gen, Dispatcher: dispatcher, Config: cfg}
}

type GenerateCampaignRequest struct {
	Kind   string `json:"kind"`
	APIKey string `json:"apiKey"`
}

// Generate starts filling the intro cache for the selected contacts in the
// background; progress is polled via Progress. Contacts already cached are
// not re-requested.
func (h *CampaignHandler) Generate(c *gin.Context) {
	var req GenerateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	kind, err := campaign.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = h.Config.GeminiAPIKey
	}
	if apiKey == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": gemini.ErrMissingKey.Error()})
		return
	}

	selected := h.Store.Selected()
	if len(selected) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "no contacts selected"})
		return
	}

	client := gemini.NewClient(apiKey, h.Config.GeminiModel)
	go h.Gen.Generate(context.Background(), client, kind, selected)

	c.JSON(http.StatusOK, gin.H{"success": true, "total": len(selected)})
}

func (h *CampaignHandler) Progress(c *gin.Context) {
	progress := h.Gen.Progress()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"progress": progress,
		"ready":    h.Gen.Count(),
	})
}

type DispatchRequest struct {
	Kind    string `json:"kind"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	DelayMs *int   `json:"delayMs"`
}

// Dispatch sends the invitation to every selected contact, in load order.
// Bodies come from the intro cache when present, otherwise from the rule
// tables; results are merged into the display state by address.
func (h *CampaignHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	kind, err := campaign.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	selected := h.Store.Selected()
	if len(selected) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "no contacts selected"})
		return
	}

	delayMs := h.Config.BatchDelayMs
	if req.DelayMs != nil {
		delayMs = *req.DelayMs
	}

	batch := h.buildBatch(kind, selected, req.From, req.Subject)
	batch.Delay = time.Duration(delayMs) * time.Millisecond

	results, err := h.Dispatcher.Dispatch(c.Request.Context(), batch)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.Store.RecordResults(results)

	sent := 0
	for _, r := range results {
		if r.Success {
			sent++
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sent": sent, "results": results})
}

// DispatchOne re-sends to a single contact; its result replaces whatever the
// display state held for that address.
func (h *CampaignHandler) DispatchOne(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid contact id"})
		return
	}
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	kind, err := campaign.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	contact, ok := h.Store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "contact not found"})
		return
	}

	batch := h.buildBatch(kind, []contacts.Contact{contact}, req.From, req.Subject)
	result, err := h.Dispatcher.SendOne(c.Request.Context(), mailer.Message{
		From:    batch.From,
		To:      batch.Emails[0].To,
		CC:      batch.CC,
		BCC:     batch.BCC,
		Subject: batch.Subject,
		HTML:    batch.Emails[0].HTML,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.Store.RecordResults([]mailer.Result{result})

	if !result.Success {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": result.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": result.MessageID})
}

func (h *CampaignHandler) Results(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "results": h.Store.Results()})
}

func (h *CampaignHandler) buildBatch(kind campaign.Kind, list []contacts.Contact, from, subject string) mailer.Batch {
	meta := campaign.Meta(kind)
	if subject == "" {
		subject = meta.Subject
	}
	if from == "" {
		from = h.Config.FromEmail
	}

	emails := make([]mailer.Outgoing, 0, len(list))
	for _, contact := range list {
		aiIntro := ""
		if kind == campaign.Education {
			aiIntro, _ = h.Gen.Intro(contact.ID)
		}
		emails = append(emails, mailer.Outgoing{
			To:   contact.Email,
			HTML: campaign.RenderEmail(kind, contact.FullName, contact.JobTitle, aiIntro, contact.Title),
		})
	}

	return mailer.Batch{
		Emails:  emails,
		From:    from,
		Subject: subject,
		CC:      mailer.SplitAddressList(meta.CC),
		BCC:     mailer.SplitAddressList(meta.BCC),
	}
}
