package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB          *gorm.DB
	Environment string
	Version     string
	startedAt   time.Time
}

func NewHealthController(db *gorm.DB, environment, version string) *HealthController {
	return &HealthController{DB: db, Environment: environment, Version: version, startedAt: time.Now()}
}

// GET /health
func (ctl *HealthController) Check(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)

	sqlDB, err := ctl.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": now,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   now,
		"uptime":      time.Since(ctl.startedAt).Seconds(),
		"environment": ctl.Environment,
		"version":     ctl.Version,
	})
}
