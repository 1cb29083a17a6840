package controllers

import (
	"net/http"
	"strconv"

	"zhuangtai/internal/services"

	"github.com/gin-gonic/gin"
)

func GetHost(c *gin.Context) {
	host, err := services.GetHostStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, host)
}

func GetLoad(c *gin.Context) {
	loadStatus, err := services.GetLoadStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loadStatus)
}

func GetCPU(c *gin.Context) {
	cpu, err := services.GetCPUStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cpu)
}

func GetMemory(c *gin.Context) {
	memory, err := services.GetMemoryStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, memory)
}

func GetDisks(c *gin.Context) {
	disks, err := services.GetReportableDisks(filterCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, disks)
}

func GetProcesses(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	processes, err := services.GetTopProcesses(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, processes)
}

func GetTemperature(c *gin.Context) {
	temperature, ok := services.GetCPUTemperature()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "celsius": temperature})
}
