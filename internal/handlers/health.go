package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "career-copilot"

// Version is overridden at build time with -ldflags "-X ...".
var Version = "dev"

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": Version,
	})
}
