package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/news"
	"github.com/asbhive/directory/api/internal/repository"
)

type stubFeed struct {
	search func(ctx context.Context, companyName string, max int) ([]news.Article, error)
	calls  []string
}

func (s *stubFeed) Search(ctx context.Context, companyName string, max int) ([]news.Article, error) {
	s.calls = append(s.calls, companyName)
	if s.search != nil {
		return s.search(ctx, companyName, max)
	}
	return nil, errors.New("search not implemented")
}

func acmeArticles(ctx context.Context, companyName string, max int) ([]news.Article, error) {
	return []news.Article{{
		Title:       companyName + " wins award",
		PublishedAt: time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
		Source:      "The Star",
	}}, nil
}

func TestNewsService_RefreshWritesDigest(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	company := entity.Company{ID: uuid.New(), Name: "Acme"}

	var written entity.NewsDigest
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error {
			if id != company.ID {
				t.Fatalf("unexpected id %s", id)
			}
			written = digest
			return nil
		},
	}
	feed := &stubFeed{search: func(ctx context.Context, name string, max int) ([]news.Article, error) {
		if max != 3 {
			t.Fatalf("expected max 3, got %d", max)
		}
		return acmeArticles(ctx, name, max)
	}}
	svc := NewNewsService(repo, feed, time.Millisecond, 3, zerolog.Nop())
	svc.now = func() time.Time { return fixed }

	outcomes := svc.Refresh(context.Background(), []entity.Company{company})
	if len(outcomes) != 1 || !outcomes[0].Success || outcomes[0].ArticleCount != 1 {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
	if written.Summary != "1. Acme wins award (2 Jan 2025) - The Star" {
		t.Fatalf("unexpected summary %q", written.Summary)
	}
	if !written.UpdatedAt.Equal(fixed) || written.ArticleCount != 1 {
		t.Fatalf("unexpected digest: %+v", written)
	}
}

func TestNewsService_RefreshIsolatesFailures(t *testing.T) {
	fresh := entity.Company{ID: uuid.New(), Name: "Timeout Co"}
	known := entity.Company{ID: uuid.New(), Name: "Known Co", NewsSummary: "1. Old story (1 Jan 2024) - Bernama"}
	healthy := entity.Company{ID: uuid.New(), Name: "Healthy Co"}

	writes := map[uuid.UUID]entity.NewsDigest{}
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error {
			writes[id] = digest
			return nil
		},
	}
	feed := &stubFeed{search: func(ctx context.Context, name string, max int) ([]news.Article, error) {
		switch name {
		case "Timeout Co":
			return nil, context.DeadlineExceeded
		case "Known Co":
			return nil, news.ErrNoArticles
		}
		return acmeArticles(ctx, name, max)
	}}
	svc := NewNewsService(repo, feed, time.Millisecond, 2, zerolog.Nop())

	outcomes := svc.Refresh(context.Background(), []entity.Company{fresh, known, healthy})
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Success || outcomes[1].Success || !outcomes[2].Success {
		t.Fatalf("unexpected success flags: %+v", outcomes)
	}
	if !strings.Contains(outcomes[0].Error, "deadline") {
		t.Fatalf("expected timeout error, got %q", outcomes[0].Error)
	}
	if writes[fresh.ID].Summary != news.Placeholder {
		t.Fatalf("expected placeholder for company without news, got %+v", writes[fresh.ID])
	}
	if _, touched := writes[known.ID]; touched {
		t.Fatalf("prior summary must be preserved")
	}
	if writes[healthy.ID].ArticleCount != 1 {
		t.Fatalf("expected healthy company to be updated")
	}
}

func TestNewsService_RefreshSingleTimeout(t *testing.T) {
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error { return nil },
	}
	feed := &stubFeed{search: func(ctx context.Context, name string, max int) ([]news.Article, error) {
		return nil, context.DeadlineExceeded
	}}
	svc := NewNewsService(repo, feed, 0, 0, zerolog.Nop())

	outcomes := svc.Refresh(context.Background(), []entity.Company{{ID: uuid.New(), Name: "Acme"}})
	if len(outcomes) != 1 || outcomes[0].Success {
		t.Fatalf("expected one failed outcome, got %+v", outcomes)
	}
}

func TestNewsService_RefreshStoreWriteFailure(t *testing.T) {
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error {
			return repository.ErrStoreUnavailable
		},
	}
	svc := NewNewsService(repo, &stubFeed{search: acmeArticles}, time.Millisecond, 2, zerolog.Nop())

	outcomes := svc.Refresh(context.Background(), []entity.Company{{ID: uuid.New(), Name: "Acme"}})
	if len(outcomes) != 1 || outcomes[0].Success || outcomes[0].Error == "" {
		t.Fatalf("expected failed outcome, got %+v", outcomes)
	}
}

func TestNewsService_RefreshSpacesRequests(t *testing.T) {
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error { return nil },
	}
	companies := []entity.Company{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
		{ID: uuid.New(), Name: "C"},
	}
	svc := NewNewsService(repo, &stubFeed{search: acmeArticles}, 0, 0, zerolog.Nop())

	start := time.Now()
	outcomes := svc.Refresh(context.Background(), companies)
	elapsed := time.Since(start)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if elapsed < 2*time.Second {
		t.Fatalf("expected at least 2s between three companies, took %s", elapsed)
	}
}

func TestNewsService_RefreshDelayFollowsSlowSearch(t *testing.T) {
	const (
		delay   = 80 * time.Millisecond
		latency = 120 * time.Millisecond
	)
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error { return nil },
	}

	var starts, ends []time.Time
	feed := &stubFeed{search: func(ctx context.Context, name string, max int) ([]news.Article, error) {
		starts = append(starts, time.Now())
		time.Sleep(latency)
		ends = append(ends, time.Now())
		return acmeArticles(ctx, name, max)
	}}
	svc := NewNewsService(repo, feed, delay, 2, zerolog.Nop())

	companies := []entity.Company{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
		{ID: uuid.New(), Name: "C"},
	}
	outcomes := svc.Refresh(context.Background(), companies)
	if len(outcomes) != 3 || len(starts) != 3 {
		t.Fatalf("expected 3 searches, got %d outcomes and %d searches", len(outcomes), len(starts))
	}
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(ends[i-1]); gap < delay {
			t.Fatalf("expected at least %s between search %d and %d, got %s", delay, i-1, i, gap)
		}
	}
}

func TestNewsService_RefreshCancelledDuringDelay(t *testing.T) {
	repo := &mockCompaniesRepository{
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error { return nil },
	}
	ctx, cancel := context.WithCancel(context.Background())
	feed := &stubFeed{search: func(c context.Context, name string, max int) ([]news.Article, error) {
		cancel()
		return acmeArticles(c, name, max)
	}}
	svc := NewNewsService(repo, feed, time.Hour, 2, zerolog.Nop())

	start := time.Now()
	outcomes := svc.Refresh(ctx, []entity.Company{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	if time.Since(start) > time.Second {
		t.Fatalf("cancellation must interrupt the delay")
	}
	if len(outcomes) != 3 || !outcomes[0].Success || outcomes[1].Success || outcomes[2].Success {
		t.Fatalf("expected first company refreshed and the rest cancelled, got %+v", outcomes)
	}
	if len(feed.calls) != 1 {
		t.Fatalf("expected one search before cancellation, got %v", feed.calls)
	}
}

func TestNewsService_RefreshCancelled(t *testing.T) {
	feed := &stubFeed{search: acmeArticles}
	svc := NewNewsService(&mockCompaniesRepository{}, feed, time.Millisecond, 2, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := svc.Refresh(ctx, []entity.Company{{Name: "A"}, {Name: "B"}})
	if len(outcomes) != 2 || outcomes[0].Success || outcomes[1].Success {
		t.Fatalf("expected all companies failed, got %+v", outcomes)
	}
	if len(feed.calls) != 0 {
		t.Fatalf("feed must not be called after cancellation, got %v", feed.calls)
	}
}

func TestNewsService_RefreshRequest(t *testing.T) {
	known := entity.Company{ID: uuid.New(), Name: "Acme"}
	missing := uuid.New()
	repo := &mockCompaniesRepository{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
			if id == known.ID {
				c := known
				return &c, nil
			}
			return nil, repository.ErrCompanyNotFound
		},
		fetchAll: func(ctx context.Context) ([]entity.Company, error) {
			return []entity.Company{known}, nil
		},
		updateNews: func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error { return nil },
	}
	svc := NewNewsService(repo, &stubFeed{search: acmeArticles}, time.Millisecond, 2, zerolog.Nop())

	resp, err := svc.RefreshRequest(context.Background(), dto.NewsUpdateRequest{
		CompanyIDs: []string{known.ID.String(), missing.String()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.CompaniesUpdated != 1 || resp.CompaniesWithErrors != 1 || len(resp.UpdateResults) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.UpdateResults[0].Status != "error" || resp.UpdateResults[1].Status != "success" || resp.UpdateResults[1].ArticlesFound != 1 {
		t.Fatalf("unexpected results: %+v", resp.UpdateResults)
	}

	resp, err = svc.RefreshRequest(context.Background(), dto.NewsUpdateRequest{UpdateAll: true})
	if err != nil || resp.CompaniesUpdated != 1 {
		t.Fatalf("unexpected updateAll response %+v (%v)", resp, err)
	}

	var vErr ValidationError
	if _, err := svc.RefreshRequest(context.Background(), dto.NewsUpdateRequest{}); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for empty request, got %v", err)
	}
	if _, err := svc.RefreshRequest(context.Background(), dto.NewsUpdateRequest{CompanyIDs: []string{"nope"}}); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for bad id, got %v", err)
	}
}
