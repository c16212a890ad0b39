package jsearch

import (
	"net/url"
	"strconv"
	"strings"
)

// ListingFields is the projection requested in normalized mode.
var ListingFields = []string{
	"job_title",
	"employer_name",
	"job_min_salary",
	"job_max_salary",
	"job_employment_type",
	"job_city",
	"job_country",
	"job_description",
	"job_highlights",
	"job_apply_link",
	"employer_logo",
	"job_is_remote",
	"job_posted_at_datetime_utc",
	"job_required_experience",
}

type SearchParams struct {
	Query           string
	Page            int
	NumPages        int
	DatePosted      string // all, today, 3days, week, month
	City            string
	Country         string
	EmploymentTypes string
	WorkFromHome    bool
	Fields          []string
}

func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("query", p.Query)

	page := p.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))

	numPages := p.NumPages
	if numPages < 1 {
		numPages = 1
	}
	v.Set("num_pages", strconv.Itoa(numPages))

	if p.DatePosted != "" {
		v.Set("date_posted", p.DatePosted)
	}
	if p.City != "" {
		v.Set("job_city", p.City)
	}
	if p.Country != "" {
		v.Set("country", p.Country)
	}
	if p.EmploymentTypes != "" {
		v.Set("employment_types", p.EmploymentTypes)
	}
	if p.WorkFromHome {
		v.Set("work_from_home", "true")
	}
	if len(p.Fields) > 0 {
		v.Set("fields", strings.Join(p.Fields, ","))
	}
	return v
}
