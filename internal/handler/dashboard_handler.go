package handler

import (
	"log/slog"
	"net/http"
	"time"

	"newsjolt/internal/activity"
	"newsjolt/internal/model"

	"github.com/gin-gonic/gin"
)

// ActivityView is the dashboard's read-only window onto the run state.
type ActivityView interface {
	Snapshot() activity.Snapshot
}

// DigestStore serves the persisted digest history.
type DigestStore interface {
	Load() ([]model.NewsItem, error)
}

type DashboardHandler struct {
	activity ActivityView
	digests  DigestStore
}

func NewDashboardHandler(activity ActivityView, digests DigestStore) *DashboardHandler {
	return &DashboardHandler{activity: activity, digests: digests}
}

// GetDashboard returns everything the dashboard UI polls for in one
// payload. A broken digest history is served as empty rather than a
// 500, so the dashboard stays readable while cycles fail.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	snap := h.activity.Snapshot()

	history, err := h.digests.Load()
	if err != nil {
		slog.Error("error loading digest history", "error", err)
	}

	logs := make([]LogEntryResponse, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		logs = append(logs, LogEntryResponse{
			ID:        e.ID,
			Message:   e.Message,
			Severity:  string(e.Severity),
			Timestamp: e.Timestamp.Format(time.RFC3339),
		})
	}

	items := make([]NewsItemResponse, 0, len(history))
	for _, item := range history {
		items = append(items, NewsItemResponse{
			Title:    item.Title,
			Summary:  item.Summary,
			Category: string(item.Category),
		})
	}

	var nextRun *string
	if snap.NextRun != nil {
		formatted := snap.NextRun.Format(time.RFC3339)
		nextRun = &formatted
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Logs:              logs,
		History:           items,
		NextRun:           nextRun,
		CurrentGeneration: snap.Generation,
	})
}

func (h *DashboardHandler) GetHealth(c *gin.Context) {
	_, err := h.digests.Load()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"history": "unreadable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"history": "readable",
	})
}
