package api

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"outreach-gateway/internal/campaign"
	"outreach-gateway/internal/contacts"
	"outreach-gateway/internal/intro"
	"outreach-gateway/internal/models"
)

// ContactHandler manages the contact store: CSV import/export, selection
// toggles and honorific corrections. DB may be nil, in which case the contact
// book is session-only.
type ContactHandler struct {
	Store *contacts.Store
	Gen   *intro.Generator
	DB    *gorm.DB
}

func NewContactHandler(store *contacts.Store, gen *intro.Generator, db *gorm.DB) *ContactHandler {
	return &ContactHandler{Store: store, Gen: gen, DB: db}
}

// Import replaces the contact list from an uploaded CSV. Any previously
// generated intros and results belong to the old list and are discarded.
func (h *ContactHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing CSV file upload"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	list, rejected, err := contacts.ParseCSV(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.Store.Load(list)
	h.Gen.Reset()
	h.persist(list)

	c.JSON(http.StatusOK, gin.H{"loaded": len(list), "rejected": rejected})
}

func (h *ContactHandler) persist(list []contacts.Contact) {
	if h.DB == nil {
		return
	}
	for _, contact := range list {
		record := models.ContactRecord{
			FullName: contact.FullName,
			Title:    contact.Title,
			Email:    contact.Email,
			Phone:    contact.Phone,
			Country:  contact.Country,
			JobTitle: contact.JobTitle,
		}
		err := h.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).Create(&record).Error
		if err != nil {
			// The live campaign keeps working from memory either way.
			continue
		}
	}
}

// ContactView is a contact plus its live campaign state.
type ContactView struct {
	contacts.Contact
	Selected   bool   `json:"selected"`
	IntroReady bool   `json:"intro_ready"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

func (h *ContactHandler) List(c *gin.Context) {
	list := h.Store.All()
	views := make([]ContactView, 0, len(list))
	for _, contact := range list {
		view := ContactView{
			Contact:  contact,
			Selected: h.Store.IsSelected(contact.ID),
			Status:   "pending",
		}
		_, view.IntroReady = h.Gen.Intro(contact.ID)
		if result, ok := h.Store.ResultFor(contact.Email); ok {
			if result.Success {
				view.Status = "sent"
			} else {
				view.Status = "failed"
				view.Error = result.Error
			}
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, views)
}

func (h *ContactHandler) Export(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=contacts.csv")

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"full_name", "title", "email", "phone_number", "country", "job_title"})
	for _, contact := range h.Store.All() {
		w.Write([]string{contact.FullName, contact.Title, contact.Email, contact.Phone, contact.Country, contact.JobTitle})
	}
	w.Flush()
}

type UpdateTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *ContactHandler) UpdateTitle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	var req UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.SetTitle(id, req.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Title updated"})
}

func (h *ContactHandler) Toggle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	if err := h.Store.Toggle(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": h.Store.SelectedCount()})
}

func (h *ContactHandler) ToggleAll(c *gin.Context) {
	h.Store.ToggleAll()
	c.JSON(http.StatusOK, gin.H{"selected": h.Store.SelectedCount()})
}

// Preview renders the full invitation for one contact without sending it.
func (h *ContactHandler) Preview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	contact, ok := h.Store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	kind, err := campaign.ParseKind(strings.TrimSpace(c.Query("kind")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aiIntro, personalized := h.Gen.Intro(contact.ID)
	if kind != campaign.Education {
		aiIntro, personalized = "", false
	}
	meta := campaign.Meta(kind)
	c.JSON(http.StatusOK, gin.H{
		"to":              contact.Email,
		"cc":              meta.CC,
		"subject":         meta.Subject,
		"ai_personalized": personalized,
		"html":            campaign.RenderEmail(kind, contact.FullName, contact.JobTitle, aiIntro, contact.Title),
	})
}
