package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Gchahm/retell-ai-agent-builder/internal/config"
	"github.com/Gchahm/retell-ai-agent-builder/internal/db"
	"github.com/Gchahm/retell-ai-agent-builder/internal/http/handlers"
	"github.com/Gchahm/retell-ai-agent-builder/internal/http/middleware"
	"github.com/Gchahm/retell-ai-agent-builder/internal/retell"
	"github.com/Gchahm/retell-ai-agent-builder/internal/service"

	_ "github.com/Gchahm/retell-ai-agent-builder/docs"
)

func Router(cfg config.Config, store *db.Store, client retell.Client, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:  store,
		Retell: client,
		Processor: &service.WebhookProcessor{
			Store:  store,
			Logger: logger,
		},
		Validator:  validator.New(),
		Logger:     logger,
		WebhookKey: cfg.RetellAPIKey,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		// Authenticated by signature, not admin key.
		api.POST("/webhooks/retell", h.RetellWebhook)
		api.POST("/web-calls", h.WebCallCreate)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/agent-configs/initial-prompt", h.InitialPrompt)
		admin.POST("/agent-configs", h.AgentCreate)
		admin.GET("/agent-configs", h.AgentList)
		admin.GET("/agent-configs/:agent_id", h.AgentGet)
		admin.PATCH("/agent-configs/:agent_id", h.AgentUpdate)

		admin.POST("/calls/webcall", h.CallCreate)
		admin.GET("/calls", h.CallsList)
		admin.GET("/calls/:id", h.CallGet)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
