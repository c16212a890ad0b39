package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/dtos"
	"github.com/justsurfingit/career-copilot/internal/services"
)

// statusClientClosedRequest is logged for requests the caller abandoned.
const statusClientClosedRequest = 499

// JobHandler serves both job search modes.
type JobHandler struct {
	JobService *services.JobService
	logger     *zap.Logger
}

func NewJobHandler(j *services.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{JobService: j, logger: logger}
}

// SearchJobs is GET /api/search. The provider body is returned untouched.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dtos.JobSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	raw, err := h.JobService.SearchRaw(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrMisconfiguredService) {
			abortWithDetail(c, http.StatusInternalServerError, "Missing API key")
			return
		}
		h.logger.Error("pass-through search failed", zap.String("query", req.Query), zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Job search failed.")
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// ListJobs is GET /api/jobs and returns normalized listings.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dtos.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	listings, err := h.JobService.ListJobs(c.Request.Context(), req.Query, req.Page)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dtos.JobListResponse{Data: listings})
	case c.Request.Context().Err() != nil:
		// caller went away; nobody reads the body
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, services.ErrMisconfiguredService):
		abortWithDetail(c, http.StatusInternalServerError, "Missing API key")
	case errors.Is(err, services.ErrUpstream):
		abortWithDetail(c, http.StatusBadGateway, "External API error")
	default:
		abortWithDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}
