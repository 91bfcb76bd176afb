package handler

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed "static"
var staticFS embed.FS

// GetIndex serves the embedded dashboard page.
func (h *DashboardHandler) GetIndex(c *gin.Context) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dashboard page unavailable"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
