// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/powersport/inventory-backend/internal/models"
)

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
		}).Info("request processed")
	}
}

// AuditLog records mutating requests. When a database is available the
// record is also inserted asynchronously; reads and health checks are
// skipped.
func AuditLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		c.Next()

		sessionID, _ := c.Get("session_id")
		role, _ := c.Get("role")

		entry := &models.AuditLog{
			Action:    c.Request.Method + " " + c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if s, ok := sessionID.(string); ok {
			entry.SessionID = s
		}
		if r, ok := role.(string); ok {
			entry.Role = r
		}

		if db != nil {
			go func() {
				if err := db.Create(entry).Error; err != nil {
					logrus.WithError(err).Error("failed to create audit log")
				}
			}()
		}

		logrus.WithFields(logrus.Fields{
			"action":  entry.Action,
			"status":  entry.Status,
			"role":    entry.Role,
			"session": entry.SessionID,
		}).Info("mutation audited")
	}
}
