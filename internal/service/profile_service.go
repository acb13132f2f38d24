package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"cinemood/internal/llm"
	"cinemood/internal/models"
)

const (
	profileMoodLimit   = 20
	profileViewedLimit = 10
	topStatsSize       = 5

	noHistoryPersonality = "Start exploring moods to discover your cinema personality!"
)

// ProfileService aggregates a user's history into a profile.
type ProfileService struct {
	moods     MoodStore
	library   LibraryStore
	assistant *llm.Assistant
}

// NewProfileService creates a new ProfileService.
func NewProfileService(moods MoodStore, library LibraryStore, assistant *llm.Assistant) *ProfileService {
	return &ProfileService{moods: moods, library: library, assistant: assistant}
}

// GetProfile reads recent moods, all favorites and recent views concurrently.
// Any failed read fails the whole profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	if userID == "" {
		return nil, invalid("user_id is required")
	}

	var (
		moods     []models.MoodQuery
		favorites []models.Favorite
		viewed    []models.ViewedTitle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moods, err = s.moods.ListMoodQueries(gctx, userID, profileMoodLimit)
		if err != nil {
			return fmt.Errorf("list mood queries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		favorites, err = s.library.ListFavorites(gctx, userID)
		if err != nil {
			return fmt.Errorf("list favorites: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		viewed, err = s.library.ListViewed(gctx, userID, profileViewedLimit)
		if err != nil {
			return fmt.Errorf("list viewed titles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	personality := noHistoryPersonality
	if len(moods) > 0 {
		personality = s.assistant.SummarizeTaste(ctx, moods, favorites, viewed).Value
	}

	var tags, genres []string
	for _, m := range moods {
		tags = append(tags, m.MoodTags...)
		genres = append(genres, m.Genres...)
	}

	resp := &models.ProfileResponse{
		OK:                true,
		CinemaPersonality: personality,
		MoodHistory:       nonNil(moods),
		Favorites:         nonNil(favorites),
		ViewedTitles:      nonNil(viewed),
		Stats: models.ProfileStats{
			TotalMoods:     len(moods),
			TotalFavorites: len(favorites),
			TotalViewed:    len(viewed),
			TopMoodTags:    []models.TagCount{},
			TopGenres:      []models.GenreCount{},
		},
	}
	for _, c := range topCounts(tags, topStatsSize) {
		resp.Stats.TopMoodTags = append(resp.Stats.TopMoodTags, models.TagCount{Tag: c.name, Count: c.count})
	}
	for _, c := range topCounts(genres, topStatsSize) {
		resp.Stats.TopGenres = append(resp.Stats.TopGenres, models.GenreCount{Genre: c.name, Count: c.count})
	}
	return resp, nil
}

type count struct {
	name  string
	count int
}

// topCounts returns the n most frequent values, ties broken alphabetically.
func topCounts(values []string, n int) []count {
	freq := make(map[string]int)
	for _, v := range values {
		if v != "" {
			freq[v]++
		}
	}
	out := make([]count, 0, len(freq))
	for name, c := range freq {
		out = append(out, count{name: name, count: c})
	}
	slices.SortFunc(out, func(a, b count) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return out[:min(len(out), n)]
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
