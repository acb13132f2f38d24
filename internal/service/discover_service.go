package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cinemood/internal/models"
	"cinemood/internal/tmdb"
)

const sectionSize = 10

type section struct {
	id    string
	title string
	key   string
	fetch func(ctx context.Context, c Catalog) []models.TitleRecord
}

// discoverSections are the fixed carousels of the discover page, in display order.
var discoverSections = []section{
	{
		id: "trending", title: "Trending This Week", key: "titles:trending:all:week",
		fetch: func(ctx context.Context, c Catalog) []models.TitleRecord {
			return c.GetTrending(ctx, "all", "week", sectionSize)
		},
	},
	{
		id: "popular_movies", title: "Popular Movies", key: "titles:popular:movie",
		fetch: func(ctx context.Context, c Catalog) []models.TitleRecord {
			return c.GetPopular(ctx, models.KindMovie, sectionSize)
		},
	},
	{
		id: "popular_tv", title: "Popular Series", key: "titles:popular:tv",
		fetch: func(ctx context.Context, c Catalog) []models.TitleRecord {
			return c.GetPopular(ctx, models.KindTV, sectionSize)
		},
	},
	{
		id: "feel_good", title: "Feel-Good Picks", key: "titles:discover:movie:comedy-family",
		fetch: func(ctx context.Context, c Catalog) []models.TitleRecord {
			return c.DiscoverTitles(ctx, models.KindMovie, tmdb.MapGenresToIDs([]string{"comedy", "family"}),
				tmdb.DiscoverOptions{MaxResults: sectionSize})
		},
	},
}

// Discover builds the captioned discover sections concurrently.
func (s *TitleService) Discover(ctx context.Context) (*models.DiscoverResponse, error) {
	if !s.catalog.Configured() {
		return nil, fmt.Errorf("%w: TMDB_API_KEY is not set", ErrNotConfigured)
	}

	sections := make([]models.DiscoverSection, len(discoverSections))
	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range discoverSections {
		g.Go(func() error {
			items := s.list(gctx, sec.key, func() []models.TitleRecord { return sec.fetch(gctx, s.catalog) })
			sections[i] = models.DiscoverSection{
				ID:      sec.id,
				Title:   sec.title,
				Caption: s.assistant.CaptionSection(gctx, sec.title, items).Value,
				Items:   nonNil(items),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build discover sections: %w", err)
	}

	return &models.DiscoverResponse{OK: true, Sections: sections}, nil
}
