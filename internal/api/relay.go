package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"outreach-gateway/internal/mailer"
)

// RelayHandler owns the configure endpoint for the delivery session.
type RelayHandler struct {
	Session *mailer.Session
}

func NewRelayHandler(session *mailer.Session) *RelayHandler {
	return &RelayHandler{Session: session}
}

// flexInt accepts both 25 and "25"; the browser client historically sent the
// port as a string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type ConfigureRequest struct {
	Host   string  `json:"host"`
	Port   flexInt `json:"port"`
	Secure bool    `json:"secure"`
}

// Configure verifies the relay and swaps the session to it. Failures are
// reported through the success flag, not the HTTP status.
func (h *RelayHandler) Configure(c *gin.Context) {
	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	relay := mailer.Relay{Host: req.Host, Port: int(req.Port), Secure: req.Secure}
	if err := h.Session.Configure(c.Request.Context(), relay); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
