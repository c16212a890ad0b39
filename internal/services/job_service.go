package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/api/jsearch"
	"github.com/justsurfingit/career-copilot/internal/dtos"
	"github.com/justsurfingit/career-copilot/internal/models"
)

var (
	ErrMisconfiguredService = errors.New("missing API key")
	ErrUpstream             = errors.New("external API error")
	ErrInternal             = errors.New("internal server error")
)

// JobSearchClient is the provider call the service depends on.
type JobSearchClient interface {
	Configured() bool
	Search(ctx context.Context, params jsearch.SearchParams) ([]byte, error)
}

type JobService struct {
	Client  JobSearchClient
	Pool    *Pool
	Country string // country filter for the normalized listing
	logger  *zap.Logger
}

func NewJobService(client JobSearchClient, pool *Pool, country string, logger *zap.Logger) *JobService {
	return &JobService{
		Client:  client,
		Pool:    pool,
		Country: country,
		logger:  logger,
	}
}

// SearchRaw forwards a free-text search and returns the provider body as is.
func (s *JobService) SearchRaw(ctx context.Context, req *dtos.JobSearchRequest) (json.RawMessage, error) {
	if !s.Client.Configured() {
		return nil, ErrMisconfiguredService
	}

	params := jsearch.SearchParams{
		Query:           joinNonEmpty(req.Query, req.Location, req.Country),
		Page:            1,
		NumPages:        1,
		DatePosted:      "week",
		City:            req.Location,
		Country:         req.Country,
		EmploymentTypes: req.EmploymentType,
	}

	body, err := s.Client.Search(ctx, params)
	if err != nil {
		return nil, s.classify(err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: provider returned invalid JSON", ErrInternal)
	}
	return json.RawMessage(body), nil
}

// ListJobs runs the fixed remote, past-week search for one page on the
// worker pool and normalizes every listing. A missing key fails before
// a slot is taken.
func (s *JobService) ListJobs(ctx context.Context, query string, page int) ([]models.JobListing, error) {
	if !s.Client.Configured() {
		return nil, ErrMisconfiguredService
	}

	params := jsearch.SearchParams{
		Query:        query,
		Page:         page,
		NumPages:     1,
		Country:      s.Country,
		DatePosted:   "week",
		WorkFromHome: true,
		Fields:       jsearch.ListingFields,
	}

	body, err := Submit(ctx, s.Pool, func(ctx context.Context) ([]byte, error) {
		return s.Client.Search(ctx, params)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("job search failed", zap.String("query", query), zap.Int("page", page), zap.Error(err))
		return nil, s.classify(err)
	}

	jobs, err := jsearch.ParseJobs(body)
	if err != nil {
		s.logger.Error("unexpected provider payload", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	listings := make([]models.JobListing, 0, len(jobs))
	for _, j := range jobs {
		listings = append(listings, NormalizeJob(j))
	}

	s.logger.Info("fetched jobs",
		zap.Int("count", len(listings)),
		zap.String("query", query),
		zap.Int("page", page),
	)
	return listings, nil
}

func (s *JobService) classify(err error) error {
	switch {
	case errors.Is(err, jsearch.ErrMissingAPIKey):
		return ErrMisconfiguredService
	case errors.Is(err, jsearch.ErrUpstream):
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// NormalizeJob maps a provider listing onto the stable shape, filling
// every missing field with its placeholder.
func NormalizeJob(j jsearch.Job) models.JobListing {
	l := models.JobListing{
		Title:          orPlaceholder(j.Title),
		Company:        orPlaceholder(j.EmployerName),
		SalaryMin:      models.AmountOf(j.MinSalary),
		SalaryMax:      models.AmountOf(j.MaxSalary),
		EmploymentType: orPlaceholder(j.EmploymentType),
		Location:       orPlaceholder(j.City),
		Country:        orPlaceholder(j.Country),
		Description:    orPlaceholder(j.Description),
		Requirements:   models.Placeholder,
		Highlights:     []string{},
		Logo:           j.EmployerLogo,
		DatePosted:     orPlaceholder(j.PostedAt),
		ApplyLink:      orPlaceholder(j.ApplyLink),
	}
	if j.RequiredExperience != nil {
		l.Requirements = orPlaceholder(j.RequiredExperience.RequiredQualification)
	}
	if j.Highlights != nil && j.Highlights.Qualifications != nil {
		l.Highlights = j.Highlights.Qualifications
	}
	if j.IsRemote != nil {
		l.Remote = *j.IsRemote
	}
	return l
}

func orPlaceholder(s *string) string {
	if s == nil {
		return models.Placeholder
	}
	return *s
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
