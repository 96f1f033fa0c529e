package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Rdb: rdb}
}

// Check reports liveness of the service and its backing stores. Redis is
// optional, so a down cache degrades the report without failing it.
func (ctl *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	dbState := "ok"
	if sqlDB, err := ctl.DB.DB(); err != nil {
		dbState = "error"
		status = http.StatusServiceUnavailable
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbState = "error"
		status = http.StatusServiceUnavailable
	}

	redisState := "disabled"
	if ctl.Rdb != nil {
		redisState = "ok"
		if err := ctl.Rdb.Ping(ctx).Err(); err != nil {
			redisState = "error"
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"status":  overall,
		"db":      dbState,
		"redis":   redisState,
		"time":    time.Now().Format(time.RFC3339),
	})
}
