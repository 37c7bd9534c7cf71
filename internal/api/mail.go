package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"outreach-gateway/internal/mailer"
)

// MailHandler exposes the raw send endpoints: the caller supplies the
// rendered HTML and the full envelope, the gateway only delivers.
type MailHandler struct {
	Dispatcher *mailer.Dispatcher
}

func NewMailHandler(dispatcher *mailer.Dispatcher) *MailHandler {
	return &MailHandler{Dispatcher: dispatcher}
}

type SendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	CC      string `json:"cc"`
	BCC     string `json:"bcc"`
}

func (h *MailHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.Dispatcher.SendOne(c.Request.Context(), mailer.Message{
		From:    req.From,
		To:      req.To,
		CC:      mailer.SplitAddressList(req.CC),
		BCC:     mailer.SplitAddressList(req.BCC),
		Subject: req.Subject,
		HTML:    req.HTML,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": result.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": result.MessageID})
}

type SendBatchRequest struct {
	Emails  []mailer.Outgoing `json:"emails"`
	From    string            `json:"from"`
	Subject string            `json:"subject"`
	CC      string            `json:"cc"`
	BCC     string            `json:"bcc"`
	DelayMs *int              `json:"delayMs"`
}

func (h *MailHandler) SendBatch(c *gin.Context) {
	var req SendBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	delayMs := 2000
	if req.DelayMs != nil {
		delayMs = *req.DelayMs
	}

	results, err := h.Dispatcher.Dispatch(c.Request.Context(), mailer.Batch{
		Emails:  req.Emails,
		From:    req.From,
		Subject: req.Subject,
		CC:      mailer.SplitAddressList(req.CC),
		BCC:     mailer.SplitAddressList(req.BCC),
		Delay:   time.Duration(delayMs) * time.Millisecond,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": mailer.ErrNotConfigured.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
