package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach-gateway/internal/campaign"
	"outreach-gateway/internal/gemini"
)

// GenerateHandler exposes the single-contact generative override calls. The
// caller is responsible for pacing across repeated calls; the gateway only
// proxies one generation at a time.
type GenerateHandler struct {
	Model string
}

func NewGenerateHandler(model string) *GenerateHandler {
	return &GenerateHandler{Model: model}
}

type GenerateIntroRequest struct {
	APIKey   string `json:"apiKey"`
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
}

func (h *GenerateHandler) GenerateIntro(c *gin.Context) {
	h.generate(c, campaign.Education)
}

func (h *GenerateHandler) GenerateBusinessIntro(c *gin.Context) {
	h.generate(c, campaign.Business)
}

func (h *GenerateHandler) generate(c *gin.Context, kind campaign.Kind) {
	var req GenerateIntroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	client := gemini.NewClient(req.APIKey, h.Model)
	intro, err := client.GenerateIntro(c.Request.Context(), kind, req.Name, req.JobTitle)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "intro": intro})
}
