package controllers

import (
	"errors"
	"net/http"
	"strings"

	"zhuangtai/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	filterCfg = services.DefaultFilterConfig()
	renderCfg = services.DefaultRenderConfig()
)

// Configure installs the runtime filter table and render settings used
// by the status handlers.
func Configure(filter services.FilterConfig, render services.RenderConfig) {
	filterCfg = filter
	renderCfg = render
}

// GetStatusText serves the full report as plain text
func GetStatusText(c *gin.Context) {
	c.String(http.StatusOK, services.GenerateStatusReport(filterCfg))
}

// GetStatusJSON serves the raw snapshot
func GetStatusJSON(c *gin.Context) {
	c.JSON(http.StatusOK, services.GetSystemStatus(filterCfg))
}

// GetStatusImage renders the report to a PNG and serves the file.
// Rendering failures never affect the text endpoints.
func GetStatusImage(c *gin.Context) {
	lines := services.StatusReportLines(services.GetSystemStatus(filterCfg))

	path, err := services.RenderStatusImage(lines, renderCfg)
	if err != nil {
		if errors.Is(err, services.ErrNoFont) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.File(path)
}

// GetStatusLines serves the report as a JSON array of lines, the shape
// chat-bot integrations consume.
func GetStatusLines(c *gin.Context) {
	report := services.GenerateStatusReport(filterCfg)
	c.JSON(http.StatusOK, gin.H{"lines": strings.Split(report, "\n")})
}
