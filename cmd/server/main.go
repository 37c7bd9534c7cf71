package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"outreach-gateway/internal/api"
	"outreach-gateway/internal/config"
	"outreach-gateway/internal/contacts"
	"outreach-gateway/internal/database"
	"outreach-gateway/internal/intro"
	"outreach-gateway/internal/logger"
	"outreach-gateway/internal/mailer"
	"outreach-gateway/internal/models"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.AppEnv)

	database.InitGorm(cfg)

	store := contacts.NewStore()
	loadContactBook(store, &log)

	session := mailer.NewSession(&mailer.SMTPTransport{}, log)
	dispatcher := mailer.NewDispatcher(session, log)
	generator := intro.NewGenerator(time.Duration(cfg.GenerateDelayMs)*time.Millisecond, log)

	// Pre-verify the relay from env so the UI starts connected when possible.
	if cfg.SMTPHost != "" {
		go func() {
			relay := mailer.Relay{Host: cfg.SMTPHost, Port: cfg.SMTPPort, Secure: cfg.SMTPSecure}
			if err := session.Configure(context.Background(), relay); err != nil {
				log.Warn().Err(err).Msg("relay from env not reachable, waiting for /api/configure")
			}
		}()
	}

	relayHandler := api.NewRelayHandler(session)
	mailHandler := api.NewMailHandler(dispatcher)
	generateHandler := api.NewGenerateHandler(cfg.GeminiModel)
	contactHandler := api.NewContactHandler(store, generator, database.GormDB)
	campaignHandler := api.NewCampaignHandler(store, generator, dispatcher, cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/configure", relayHandler.Configure)
		apiGroup.POST("/send", mailHandler.Send)
		apiGroup.POST("/send-batch", mailHandler.SendBatch)
		apiGroup.POST("/generate-intro", generateHandler.GenerateIntro)
		apiGroup.POST("/generate-business-intro", generateHandler.GenerateBusinessIntro)

		apiGroup.POST("/contacts/import", contactHandler.Import)
		apiGroup.GET("/contacts", contactHandler.List)
		apiGroup.GET("/contacts/export", contactHandler.Export)
		apiGroup.PUT("/contacts/:id/title", contactHandler.UpdateTitle)
		apiGroup.POST("/contacts/:id/toggle", contactHandler.Toggle)
		apiGroup.POST("/contacts/toggle-all", contactHandler.ToggleAll)
		apiGroup.GET("/contacts/:id/preview", contactHandler.Preview)

		campaignGroup := apiGroup.Group("/campaign")
		{
			campaignGroup.POST("/generate", campaignHandler.Generate)
			campaignGroup.GET("/progress", campaignHandler.Progress)
			campaignGroup.POST("/dispatch", campaignHandler.Dispatch)
			campaignGroup.POST("/dispatch/:id", campaignHandler.DispatchOne)
			campaignGroup.GET("/results", campaignHandler.Results)
		}
	}

	log.Info().Str("port", cfg.Port).Msg("outreach gateway starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}

// loadContactBook seeds the in-memory store from the persisted contact book.
func loadContactBook(store *contacts.Store, log *zerolog.Logger) {
	var records []models.ContactRecord
	if err := database.GormDB.Order("id").Find(&records).Error; err != nil {
		log.Warn().Err(err).Msg("could not load contact book")
		return
	}
	list := make([]contacts.Contact, 0, len(records))
	for i, rec := range records {
		list = append(list, contacts.Contact{
			ID:       i,
			FullName: rec.FullName,
			Title:    rec.Title,
			Email:    rec.Email,
			Phone:    rec.Phone,
			Country:  rec.Country,
			JobTitle: rec.JobTitle,
		})
	}
	if len(list) > 0 {
		store.Load(list)
		log.Info().Int("contacts", len(list)).Msg("contact book loaded")
	}
}
