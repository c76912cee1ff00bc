package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/news"
	"github.com/asbhive/directory/api/internal/repository"
)

const (
	defaultNewsDelay       = time.Second
	defaultNewsMaxArticles = 2

	outcomeSuccess = "success"
	outcomeError   = "error"
)

// NewsOutcome is the result of refreshing one company.
type NewsOutcome struct {
	CompanyID    uuid.UUID
	Name         string
	Success      bool
	ArticleCount int
	Error        string
}

// NewsService runs the sequential news refresh batch.
type NewsService struct {
	companies   repository.CompaniesRepository
	feed        news.FeedClient
	delay       time.Duration
	maxArticles int
	log         zerolog.Logger
	now         func() time.Time
}

// NewNewsService wires the batch. delay spaces consecutive feed requests.
func NewNewsService(companies repository.CompaniesRepository, feed news.FeedClient, delay time.Duration, maxArticles int, log zerolog.Logger) *NewsService {
	if delay <= 0 {
		delay = defaultNewsDelay
	}
	if maxArticles <= 0 {
		maxArticles = defaultNewsMaxArticles
	}
	return &NewsService{
		companies:   companies,
		feed:        feed,
		delay:       delay,
		maxArticles: maxArticles,
		log:         log,
		now:         time.Now,
	}
}

// Refresh searches the feed for each company in turn and writes the digest back.
// Consecutive companies are separated by at least delay, measured from the end of one
// search to the start of the next. A failure only affects its own company.
func (s *NewsService) Refresh(ctx context.Context, companies []entity.Company) []NewsOutcome {
	outcomes := make([]NewsOutcome, 0, len(companies))

	for i, company := range companies {
		if err := s.pause(ctx, i); err != nil {
			for _, rest := range companies[i:] {
				outcomes = append(outcomes, failed(rest, fmt.Errorf("refresh cancelled: %w", err)))
			}
			s.log.Warn().Err(err).Int("skipped", len(companies)-i).Msg("news refresh stopped")
			break
		}
		outcomes = append(outcomes, s.refreshOne(ctx, company))
	}
	return outcomes
}

// pause waits out the inter-company delay before every company but the first.
func (s *NewsService) pause(ctx context.Context, i int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if i == 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *NewsService) refreshOne(ctx context.Context, company entity.Company) NewsOutcome {
	logger := s.log.With().Str("company_id", company.ID.String()).Str("company", company.Name).Logger()

	articles, err := s.feed.Search(ctx, company.Name, s.maxArticles)
	if err != nil {
		logger.Warn().Err(err).Msg("news search failed")
		if strings.TrimSpace(company.NewsSummary) == "" {
			placeholder := entity.NewsDigest{Summary: news.Placeholder, UpdatedAt: s.now().UTC()}
			if writeErr := s.companies.UpdateNews(ctx, company.ID, placeholder); writeErr != nil {
				logger.Warn().Err(writeErr).Msg("write news placeholder failed")
			}
		}
		return failed(company, err)
	}

	digest := news.Digest(articles, s.now())
	if err := s.companies.UpdateNews(ctx, company.ID, digest); err != nil {
		logger.Warn().Err(err).Msg("write news summary failed")
		return failed(company, err)
	}

	logger.Info().Int("articles", digest.ArticleCount).Msg("news refreshed")
	return NewsOutcome{
		CompanyID:    company.ID,
		Name:         company.Name,
		Success:      true,
		ArticleCount: digest.ArticleCount,
	}
}

// RefreshRequest resolves the batch targets from a trigger request and reports the outcome.
func (s *NewsService) RefreshRequest(ctx context.Context, req dto.NewsUpdateRequest) (dto.NewsUpdateResponse, error) {
	var (
		targets  []entity.Company
		outcomes []NewsOutcome
	)

	switch {
	case req.UpdateAll:
		all, err := s.companies.FetchAll(ctx)
		if err != nil {
			return dto.NewsUpdateResponse{}, err
		}
		targets = all
	case len(req.CompanyIDs) > 0:
		ids := make([]uuid.UUID, 0, len(req.CompanyIDs))
		for _, raw := range req.CompanyIDs {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return dto.NewsUpdateResponse{}, ValidationError{Message: fmt.Sprintf("invalid company id %q", raw)}
			}
			ids = append(ids, id)
		}
		for _, id := range ids {
			company, err := s.companies.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrCompanyNotFound) {
					outcomes = append(outcomes, NewsOutcome{CompanyID: id, Name: id.String(), Error: err.Error()})
					continue
				}
				return dto.NewsUpdateResponse{}, err
			}
			targets = append(targets, *company)
		}
	default:
		return dto.NewsUpdateResponse{}, ValidationError{Message: "either updateAll or companyIds is required"}
	}

	outcomes = append(outcomes, s.Refresh(ctx, targets)...)
	return summarizeOutcomes(outcomes), nil
}

func summarizeOutcomes(outcomes []NewsOutcome) dto.NewsUpdateResponse {
	resp := dto.NewsUpdateResponse{
		Success:       true,
		UpdateResults: make([]dto.NewsUpdateResult, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		result := dto.NewsUpdateResult{Name: o.Name, ArticlesFound: o.ArticleCount}
		if o.Success {
			result.Status = outcomeSuccess
			resp.CompaniesUpdated++
		} else {
			result.Status = outcomeError
			result.Error = o.Error
			resp.CompaniesWithErrors++
		}
		resp.UpdateResults = append(resp.UpdateResults, result)
	}
	return resp
}

func failed(company entity.Company, err error) NewsOutcome {
	return NewsOutcome{
		CompanyID: company.ID,
		Name:      company.Name,
		Error:     err.Error(),
	}
}
