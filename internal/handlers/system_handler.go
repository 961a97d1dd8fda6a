package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "job-catalog"
	apiVersion  = "2.0.0"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// APIIndex lists the routes served under /api.
func APIIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Job posting catalog API",
		"version": apiVersion,
		"endpoints": gin.H{
			"postings": gin.H{
				"list":      "GET /api/postings",
				"get":       "GET /api/postings/:id",
				"create":    "POST /api/postings",
				"replace":   "PUT /api/postings/:id",
				"delete":    "DELETE /api/postings/:id",
				"duplicate": "POST /api/postings/:id/duplicate",
				"extract":   "POST /api/postings/extract",
			},
			"search": gin.H{
				"byField": "GET /api/postings/search/:field/:value",
				"bySkill": "GET /api/postings/skill/:skill",
			},
			"statistics": "GET /api/statistics",
			"health":     "GET /health",
		},
	})
}
