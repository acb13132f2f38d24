package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"cinemood/internal/llm"
	"cinemood/internal/models"
	"cinemood/internal/tmdb"
)

const maxSimilarTitles = 10

// TitleService serves title details enriched with generated copy, and the
// discover page.
type TitleService struct {
	catalog   Catalog
	assistant *llm.Assistant
	cache     cache
}

// NewTitleService creates a new TitleService. rdb may be nil.
func NewTitleService(catalog Catalog, assistant *llm.Assistant, rdb *redis.Client) *TitleService {
	return &TitleService{
		catalog:   catalog,
		assistant: assistant,
		cache:     cache{redis: rdb},
	}
}

func checkTitleParams(kind string, tmdbID int) error {
	if !models.ValidKind(kind) {
		return invalid("type must be movie or tv")
	}
	if tmdbID <= 0 {
		return invalid("tmdb_id must be a positive integer")
	}
	return nil
}

// GetTitle returns one title with its atmosphere description and audience fit.
func (s *TitleService) GetTitle(ctx context.Context, kind string, tmdbID int) (*models.TitleResponse, error) {
	if err := checkTitleParams(kind, tmdbID); err != nil {
		return nil, err
	}
	if !s.catalog.Configured() {
		return nil, fmt.Errorf("%w: TMDB_API_KEY is not set", ErrNotConfigured)
	}

	detail, err := s.detail(ctx, kind, tmdbID)
	if err != nil {
		return nil, err
	}

	resp := &models.TitleResponse{OK: true, TitleDetail: *detail}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp.AIDescription = s.assistant.DescribeAtmosphere(gctx, detail.Title, detail.Overview, detail.Genres).Value
		return nil
	})
	g.Go(func() error {
		resp.AIViewerFit = s.assistant.DescribeAudienceFit(gctx, detail.Title, detail.Genres, nil).Value
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *TitleService) detail(ctx context.Context, kind string, tmdbID int) (*models.TitleDetail, error) {
	key := fmt.Sprintf("title:detail:%s:%d", kind, tmdbID)
	var cached models.TitleDetail
	if s.cache.get(ctx, "title_detail", key, &cached) {
		return &cached, nil
	}

	detail, err := s.catalog.GetTitleDetails(ctx, kind, tmdbID)
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, fmt.Errorf("%s %d: %w", kind, tmdbID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch title details: %w", err)
	}

	s.cache.set(ctx, key, detail, titleDetailCacheTTL)
	return detail, nil
}

// Similar returns titles similar to the given one.
func (s *TitleService) Similar(ctx context.Context, kind string, tmdbID int) (*models.SimilarResponse, error) {
	if err := checkTitleParams(kind, tmdbID); err != nil {
		return nil, err
	}
	if !s.catalog.Configured() {
		return nil, fmt.Errorf("%w: TMDB_API_KEY is not set", ErrNotConfigured)
	}

	items := s.list(ctx, fmt.Sprintf("titles:similar:%s:%d", kind, tmdbID), func() []models.TitleRecord {
		return s.catalog.GetSimilar(ctx, kind, tmdbID, maxSimilarTitles)
	})
	return &models.SimilarResponse{OK: true, Items: nonNil(items)}, nil
}

// list serves a catalog list through the cache. Empty lists are not cached
// because they are indistinguishable from a failed fetch.
func (s *TitleService) list(ctx context.Context, key string, fetch func() []models.TitleRecord) []models.TitleRecord {
	var cached []models.TitleRecord
	if s.cache.get(ctx, "title_list", key, &cached) {
		return cached
	}
	items := fetch()
	if len(items) > 0 {
		s.cache.set(ctx, key, items, titleListCacheTTL)
	}
	return items
}
