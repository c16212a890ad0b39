package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/career-copilot/internal/dtos"
)

// abortWithDetail writes the error body every endpoint shares.
func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dtos.ErrorResponse{Detail: detail})
}
