package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/curahealth/cura/backend/go-services/internal/journal"
	"github.com/curahealth/cura/backend/go-services/pkg/logger"
)

// Journal is the subset of *journal.Store the routes use.
type Journal interface {
	Append(ctx context.Context, text string, mood, rating int) (journal.Entry, error)
	ListDescending(ctx context.Context) ([]journal.Entry, error)
}

type appendRequest struct {
	Text   string `json:"text"`
	Mood   *int   `json:"mood" binding:"required"`
	Rating *int   `json:"rating" binding:"required"`
}

// RegisterJournalRoutes mounts the journal API and the rendered list.
// Timestamps in the rendered list use loc.
func RegisterJournalRoutes(r gin.IRouter, j Journal, loc *time.Location) {
	r.POST("/api/journal", func(c *gin.Context) {
		var req appendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e, err := j.Append(c.Request.Context(), req.Text, *req.Mood, *req.Rating)
		if err != nil {
			writeError(c, "append", err)
			return
		}
		c.JSON(http.StatusCreated, e)
	})

	r.GET("/api/journal", func(c *gin.Context) {
		limit := 0
		if s := c.Query("limit"); s != "" {
			l, err := strconv.Atoi(s)
			if err != nil || l < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = l
		}
		entries, err := j.ListDescending(c.Request.Context())
		if err != nil {
			writeError(c, "list", err)
			return
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"data": entries})
	})

	r.GET("/api/journal/moods", func(c *gin.Context) {
		labels := journal.MoodLabels()
		out := make([]gin.H, 0, len(labels))
		for code, label := range labels {
			out = append(out, gin.H{"code": code, "label": label})
		}
		c.JSON(http.StatusOK, gin.H{"moods": out})
	})

	r.GET("/journal", func(c *gin.Context) {
		entries, err := j.ListDescending(c.Request.Context())
		if err != nil {
			writeError(c, "render", err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(journal.RenderHTML(entries, loc)))
	})
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, journal.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, journal.ErrStorageUnavailable):
		logger.Errorf("journal %s: %v", op, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "journal storage unavailable"})
	case errors.Is(err, journal.ErrCorruptStore):
		logger.Errorf("journal %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "journal data is unreadable"})
	default:
		logger.Errorf("journal %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
