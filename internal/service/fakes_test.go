package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cinemood/internal/llm"
	"cinemood/internal/models"
	"cinemood/internal/tmdb"
)

type fakeCatalog struct {
	mu         sync.Mutex
	configured bool
	movies     []models.TitleRecord
	shows      []models.TitleRecord
	popular    []models.TitleRecord
	detail     *models.TitleDetail
	detailErr  error
	calls      int
	genreIDs   [][]int
}

func (f *fakeCatalog) Configured() bool { return f.configured }

func (f *fakeCatalog) DiscoverTitles(_ context.Context, kind string, genreIDs []int, opts tmdb.DiscoverOptions) []models.TitleRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.genreIDs = append(f.genreIDs, genreIDs)
	src := f.movies
	if kind == models.KindTV {
		src = f.shows
	}
	if opts.MaxResults > 0 && len(src) > opts.MaxResults {
		src = src[:opts.MaxResults]
	}
	return append([]models.TitleRecord(nil), src...)
}

func (f *fakeCatalog) GetTitleDetails(_ context.Context, _ string, _ int) (*models.TitleDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.detail, f.detailErr
}

func (f *fakeCatalog) GetTrending(_ context.Context, _, _ string, _ int) []models.TitleRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.popular
}

func (f *fakeCatalog) GetPopular(_ context.Context, _ string, _ int) []models.TitleRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.popular
}

func (f *fakeCatalog) GetSimilar(_ context.Context, _ string, _, _ int) []models.TitleRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.movies
}

// fakeCompleter answers by operation name. Operations without a reply get an
// upstream error, so the assistant falls back.
type fakeCompleter struct {
	mu      sync.Mutex
	replies map[string]string
	respond func(req llm.Request) string
	err     error
	calls   []llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (llm.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return llm.Reply{}, f.err
	}
	if f.respond != nil {
		if text := f.respond(req); text != "" {
			return llm.Reply{Shape: llm.ShapeOutputText, Text: text}, nil
		}
	}
	text, ok := f.replies[req.Operation]
	if !ok {
		return llm.Reply{}, fmt.Errorf("no reply for %s", req.Operation)
	}
	return llm.Reply{Shape: llm.ShapeOutputText, Text: text}, nil
}

func (f *fakeCompleter) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Operation)
	}
	return out
}

// fitsFromPrompt answers explain_fit with "fits <title>" for every numbered
// title line in the prompt, in prompt order.
func fitsFromPrompt(req llm.Request) string {
	if req.Operation != "explain_fit" {
		return ""
	}
	var fits []string
	for _, line := range strings.Split(req.Input[len(req.Input)-1].Text(), "\n") {
		_, rest, ok := strings.Cut(line, ". ")
		if !ok || line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		title, _, _ := strings.Cut(rest, " (")
		fits = append(fits, fmt.Sprintf("%q", "fits "+title))
	}
	return "[" + strings.Join(fits, ",") + "]"
}

type fakeTurns struct {
	turns     []models.Turn
	listErr   error
	insertErr error
	inserted  []models.Turn
}

func (f *fakeTurns) ListTurns(_ context.Context, _ string) ([]models.Turn, error) {
	return f.turns, f.listErr
}

func (f *fakeTurns) InsertTurn(_ context.Context, t models.Turn) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, t)
	return nil
}

type fakeMoods struct {
	mu         sync.Mutex
	queries    []models.MoodQuery
	recs       []models.Recommendation
	insertErr  error
	listErr    error
	listLimits []int
}

func (f *fakeMoods) InsertMoodQuery(_ context.Context, q models.MoodQuery) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.queries = append(f.queries, q)
	return nil
}

func (f *fakeMoods) InsertRecommendations(_ context.Context, recs []models.Recommendation) error {
	f.recs = append(f.recs, recs...)
	return nil
}

func (f *fakeMoods) ListMoodQueries(_ context.Context, _ string, limit int) ([]models.MoodQuery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listLimits = append(f.listLimits, limit)
	return f.queries, f.listErr
}

type fakeLibrary struct {
	mu        sync.Mutex
	favorites []models.Favorite
	viewed    []models.ViewedTitle
	listErr   error
	mutations int
}

func (f *fakeLibrary) ListFavorites(_ context.Context, _ string) ([]models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.favorites, f.listErr
}

func (f *fakeLibrary) AddFavorite(_ context.Context, fav models.Favorite) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	for _, existing := range f.favorites {
		if existing.UserID == fav.UserID && existing.TMDBId == fav.TMDBId {
			return false, nil
		}
	}
	f.favorites = append(f.favorites, fav)
	return true, nil
}

func (f *fakeLibrary) RemoveFavorite(_ context.Context, userID string, tmdbID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	for i, existing := range f.favorites {
		if existing.UserID == userID && existing.TMDBId == tmdbID {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLibrary) InsertViewed(_ context.Context, v models.ViewedTitle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	f.viewed = append(f.viewed, v)
	return nil
}

func (f *fakeLibrary) ListViewed(_ context.Context, _ string, _ int) ([]models.ViewedTitle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewed, f.listErr
}

func titleRecords(kind string, names ...string) []models.TitleRecord {
	out := make([]models.TitleRecord, 0, len(names))
	for i, n := range names {
		id := i + 1
		if kind == models.KindTV {
			id += 1000
		}
		out = append(out, models.TitleRecord{TMDBId: id, Type: kind, Title: n})
	}
	return out
}
