package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cinemood/internal/llm"
	"cinemood/internal/metrics"
	"cinemood/internal/models"
	"cinemood/internal/tmdb"
)

const (
	maxMovieCandidates = 6
	maxTVCandidates    = 4
	maxRecommendations = 8

	emptyMoodSummary = "The projector came up empty for that feeling. Try describing your mood another way?"
)

// RecommendService turns a free-text mood into annotated title picks.
type RecommendService struct {
	catalog   Catalog
	assistant *llm.Assistant
	moods     MoodStore

	shuffle func([]models.TitleRecord)
	newID   func() string
}

// NewRecommendService creates a new RecommendService.
func NewRecommendService(catalog Catalog, assistant *llm.Assistant, moods MoodStore) *RecommendService {
	return &RecommendService{
		catalog:   catalog,
		assistant: assistant,
		moods:     moods,
		shuffle: func(titles []models.TitleRecord) {
			rand.Shuffle(len(titles), func(i, j int) { titles[i], titles[j] = titles[j], titles[i] })
		},
		newID: func() string { return uuid.NewString() },
	}
}

// Recommend parses moodText, fetches matching movies and series, explains
// each pick and records the query. Persistence failures never fail the call.
func (s *RecommendService) Recommend(ctx context.Context, userID, moodText string) (*models.RecommendResponse, error) {
	moodText = strings.TrimSpace(moodText)
	if moodText == "" {
		return nil, invalid("mood_text is required")
	}
	if !s.catalog.Configured() {
		return nil, fmt.Errorf("%w: TMDB_API_KEY is not set", ErrNotConfigured)
	}
	if userID == "" {
		userID = AnonymousUser
	}

	mood := s.assistant.ParseMood(ctx, moodText).Value
	genreIDs := tmdb.MapGenresToIDs(mood.Genres)

	var movies, shows []models.TitleRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movies = s.catalog.DiscoverTitles(gctx, models.KindMovie, genreIDs,
			tmdb.DiscoverOptions{MaxResults: maxMovieCandidates, RandomPage: true})
		return nil
	})
	g.Go(func() error {
		shows = s.catalog.DiscoverTitles(gctx, models.KindTV, genreIDs,
			tmdb.DiscoverOptions{MaxResults: maxTVCandidates, RandomPage: true})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("discover candidates: %w", err)
	}

	candidates := make([]models.TitleRecord, 0, len(movies)+len(shows))
	candidates = append(candidates, movies...)
	candidates = append(candidates, shows...)
	s.shuffle(candidates)
	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	resp := &models.RecommendResponse{
		OK:              true,
		MoodTags:        mood.MoodTags,
		Genres:          mood.Genres,
		Recommendations: []models.RecommendedTitle{},
	}
	if len(candidates) == 0 {
		slog.Info("no candidates for mood", "user_id", userID, "genres", mood.Genres)
		resp.MoodSummary = emptyMoodSummary
		return resp, nil
	}

	// candidates must not be reordered from here on: fits[i] belongs to candidates[i]
	fits := s.assistant.ExplainFit(ctx, moodText, mood.MoodTags, candidates).Value
	for i, c := range candidates {
		resp.Recommendations = append(resp.Recommendations, models.RecommendedTitle{TitleRecord: c, WhyItFits: fits[i]})
	}
	resp.MoodSummary = moodSummary(mood.MoodTags)

	s.record(ctx, userID, moodText, mood, resp.Recommendations)
	return resp, nil
}

// record stores the mood query and, only if that succeeded, its recommendations.
func (s *RecommendService) record(ctx context.Context, userID, moodText string, mood llm.MoodProfile, recs []models.RecommendedTitle) {
	q := models.MoodQuery{
		ID:       s.newID(),
		UserID:   userID,
		MoodText: moodText,
		MoodTags: mood.MoodTags,
		Genres:   mood.Genres,
	}
	if err := s.moods.InsertMoodQuery(ctx, q); err != nil {
		metrics.PersistenceFailures.WithLabelValues("mood_queries").Inc()
		slog.Error("failed to save mood query, skipping recommendations", "user_id", userID, "error", err)
		return
	}

	rows := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, models.Recommendation{
			UserID:    userID,
			MoodID:    q.ID,
			TMDBId:    r.TMDBId,
			Type:      r.Type,
			Title:     r.Title,
			WhyItFits: r.WhyItFits,
		})
	}
	if err := s.moods.InsertRecommendations(ctx, rows); err != nil {
		metrics.PersistenceFailures.WithLabelValues("recommendations").Inc()
		slog.Error("failed to save recommendations", "user_id", userID, "mood_id", q.ID, "error", err)
	}
}

func moodSummary(tags []string) string {
	if len(tags) == 0 || (len(tags) == 1 && tags[0] == "general") {
		return "Here's what we picked for your mood"
	}
	shown := tags[:min(len(tags), 3)]
	return fmt.Sprintf("Picks for a %s mood", strings.Join(shown, ", "))
}
