package dtos

import "github.com/justsurfingit/career-copilot/internal/models"

// JobSearchRequest is the query string of GET /api/search.
type JobSearchRequest struct {
	Query          string `form:"query" binding:"required"`
	Location       string `form:"location"`
	Country        string `form:"country"`
	EmploymentType string `form:"employment_type"`
}

// JobListRequest is the query string of GET /api/jobs.
type JobListRequest struct {
	Query string `form:"query" binding:"required"`
	Page  int    `form:"page,default=1" binding:"min=1"`
}

type JobListResponse struct {
	Data []models.JobListing `json:"data"`
}
