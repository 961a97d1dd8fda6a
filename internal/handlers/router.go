package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-catalog/internal/config"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, logger *zap.Logger, h *PostingHandler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	RegisterValidators()

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), Recovery(logger))

	corsConfig := cors.DefaultConfig()
	if cfg.AllowsAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigin
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(corsConfig))

	r.GET("/health", HealthCheck)

	api := r.Group("/api", RequestTimeout(cfg.RequestTimeout))
	{
		api.GET("", APIIndex)
		api.GET("/statistics", h.Statistics)

		postings := api.Group("/postings")
		postings.GET("", h.ListPostings)
		postings.POST("", h.CreatePosting)
		postings.POST("/extract", h.ExtractPosting)
		postings.GET("/search/:field/:value", h.SearchByField)
		postings.GET("/skill/:skill", h.SearchBySkill)
		postings.GET("/:id", h.GetPosting)
		postings.PUT("/:id", h.ReplacePosting)
		postings.DELETE("/:id", h.DeletePosting)
		postings.POST("/:id/duplicate", h.DuplicatePosting)
	}

	return r
}
