package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"cinemood/internal/models"
	"cinemood/internal/service"
)

type fakeRecommender struct {
	resp  *models.RecommendResponse
	err   error
	calls int
}

func (f *fakeRecommender) Recommend(_ context.Context, _, _ string) (*models.RecommendResponse, error) {
	f.calls++
	return f.resp, f.err
}

type fakeTitles struct {
	title *models.TitleResponse
	err   error
}

func (f *fakeTitles) GetTitle(_ context.Context, _ string, _ int) (*models.TitleResponse, error) {
	return f.title, f.err
}

func (f *fakeTitles) Similar(_ context.Context, _ string, _ int) (*models.SimilarResponse, error) {
	return &models.SimilarResponse{OK: true, Items: []models.TitleRecord{}}, f.err
}

func (f *fakeTitles) Discover(_ context.Context) (*models.DiscoverResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.DiscoverResponse{OK: true, Sections: []models.DiscoverSection{{ID: "trending"}}}, nil
}

type fakeProfiles struct{ err error }

func (f *fakeProfiles) GetProfile(_ context.Context, _ string) (*models.ProfileResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{OK: true, CinemaPersonality: "explorer"}, nil
}

// fakeLibraryStore backs a real service.LibraryService.
type fakeLibraryStore struct {
	mutations int
}

func (f *fakeLibraryStore) ListFavorites(context.Context, string) ([]models.Favorite, error) {
	return nil, nil
}

func (f *fakeLibraryStore) AddFavorite(context.Context, models.Favorite) (bool, error) {
	f.mutations++
	return true, nil
}

func (f *fakeLibraryStore) RemoveFavorite(context.Context, string, int) (bool, error) {
	f.mutations++
	return true, nil
}

func (f *fakeLibraryStore) InsertViewed(context.Context, models.ViewedTitle) error {
	f.mutations++
	return nil
}

func (f *fakeLibraryStore) ListViewed(context.Context, string, int) ([]models.ViewedTitle, error) {
	return nil, nil
}

type fakeChatter struct {
	reply   string
	err     error
	history []models.Turn
	turns   []service.NewTurn
}

func (f *fakeChatter) Chat(_ context.Context, _ string, turn service.NewTurn) (string, error) {
	f.turns = append(f.turns, turn)
	return f.reply, f.err
}

func (f *fakeChatter) History(_ context.Context, _ string) ([]models.Turn, error) {
	return f.history, f.err
}

type testDeps struct {
	recommender *fakeRecommender
	titles      *fakeTitles
	profiles    *fakeProfiles
	store       *fakeLibraryStore
	chat        *fakeChatter
}

func newTestApp(d testDeps) *fiber.App {
	if d.recommender == nil {
		d.recommender = &fakeRecommender{}
	}
	if d.titles == nil {
		d.titles = &fakeTitles{}
	}
	if d.profiles == nil {
		d.profiles = &fakeProfiles{}
	}
	if d.store == nil {
		d.store = &fakeLibraryStore{}
	}
	if d.chat == nil {
		d.chat = &fakeChatter{}
	}

	app := fiber.New(fiber.Config{JSONEncoder: json.Marshal, JSONDecoder: json.Unmarshal})
	RegisterRoutes(app, Handlers{
		Recommend: NewRecommendHandler(d.recommender),
		Title:     NewTitleHandler(d.titles),
		Profile:   NewProfileHandler(d.profiles, service.NewLibraryService(d.store)),
		Chat:      NewChatHandler(d.chat),
		Health:    NewHealthHandler(HealthStatus{Env: "test", HasTMDBKey: true}),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestRecommendHandler(t *testing.T) {
	verr := fmt.Errorf("%w: mood_text is required", service.ErrValidation)
	tests := []struct {
		name       string
		body       string
		rec        *fakeRecommender
		wantStatus int
		wantError  string
	}{
		{"success", `{"mood_text":"cozy"}`, &fakeRecommender{resp: &models.RecommendResponse{OK: true, MoodSummary: "s"}}, http.StatusOK, ""},
		{"malformed body", `{"mood_text":`, &fakeRecommender{}, http.StatusBadRequest, "invalid request body"},
		{"validation", `{"mood_text":""}`, &fakeRecommender{err: verr}, http.StatusBadRequest, verr.Error()},
		{"not configured", `{"mood_text":"x"}`, &fakeRecommender{err: fmt.Errorf("%w: TMDB_API_KEY is not set", service.ErrNotConfigured)}, http.StatusInternalServerError, "server configuration error"},
		{"internal", `{"mood_text":"x"}`, &fakeRecommender{err: errors.New("boom")}, http.StatusInternalServerError, "failed to get recommendations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(testDeps{recommender: tt.rec})
			status, body := doRequest(t, app, http.MethodPost, "/api/recommend", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if tt.wantError != "" {
				if body["ok"] != false || body["error"] != tt.wantError {
					t.Errorf("body = %v", body)
				}
				return
			}
			if body["ok"] != true || body["mood_summary"] != "s" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestTitleHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		titles     *fakeTitles
		wantStatus int
	}{
		{"found", "/api/title/movie/550", &fakeTitles{title: &models.TitleResponse{OK: true}}, http.StatusOK},
		{"non-numeric id", "/api/title/movie/abc", &fakeTitles{}, http.StatusBadRequest},
		{"not found", "/api/title/tv/9", &fakeTitles{err: fmt.Errorf("tv 9: %w", service.ErrNotFound)}, http.StatusNotFound},
		{"upstream failure", "/api/title/tv/9", &fakeTitles{err: errors.New("timeout")}, http.StatusInternalServerError},
		{"similar", "/api/title/movie/550/similar", &fakeTitles{}, http.StatusOK},
		{"discover", "/api/discover", &fakeTitles{}, http.StatusOK},
		{"discover failure", "/api/discover", &fakeTitles{err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, newTestApp(testDeps{titles: tt.titles}), http.MethodGet, tt.path, "")
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if body["ok"] != (status == http.StatusOK) {
				t.Errorf("ok = %v for status %d", body["ok"], status)
			}
		})
	}
}

func TestFavoriteInvalidActionDoesNotMutate(t *testing.T) {
	for _, action := range []string{"toggle", "", "ADD"} {
		store := &fakeLibraryStore{}
		app := newTestApp(testDeps{store: store})
		body := fmt.Sprintf(`{"user_id":"u1","tmdb_id":550,"type":"movie","title":"Fight Club","action":%q}`, action)

		status, resp := doRequest(t, app, http.MethodPost, "/api/favorite", body)
		if status != http.StatusBadRequest {
			t.Errorf("action %q: status = %d, want 400", action, status)
		}
		if resp["ok"] != false {
			t.Errorf("action %q: body = %v", action, resp)
		}
		if store.mutations != 0 {
			t.Errorf("action %q: store mutated %d times", action, store.mutations)
		}
	}
}

func TestFavoriteAndViewed(t *testing.T) {
	store := &fakeLibraryStore{}
	app := newTestApp(testDeps{store: store})

	status, body := doRequest(t, app, http.MethodPost, "/api/favorite",
		`{"user_id":"u1","tmdb_id":550,"type":"movie","title":"Fight Club","action":"add"}`)
	if status != http.StatusOK || body["success"] != true || body["message"] != "Added to favorites" {
		t.Errorf("favorite: %d %v", status, body)
	}

	status, body = doRequest(t, app, http.MethodPost, "/api/viewed", `{"user_id":"u1","tmdb_id":550,"type":"movie"}`)
	if status != http.StatusBadRequest || body["error"] != "title is required" {
		t.Errorf("viewed without title: %d %v", status, body)
	}
	if store.mutations != 1 {
		t.Errorf("mutations = %d, want 1", store.mutations)
	}
}

func TestProfileHandler(t *testing.T) {
	status, body := doRequest(t, newTestApp(testDeps{}), http.MethodGet, "/api/profile/u1", "")
	if status != http.StatusOK || body["cinema_personality"] != "explorer" {
		t.Errorf("profile: %d %v", status, body)
	}

	status, _ = doRequest(t, newTestApp(testDeps{profiles: &fakeProfiles{err: errors.New("db down")}}), http.MethodGet, "/api/profile/u1", "")
	if status != http.StatusInternalServerError {
		t.Errorf("profile failure status = %d", status)
	}
}

func TestChatHandler(t *testing.T) {
	chat := &fakeChatter{reply: "hello"}
	app := newTestApp(testDeps{chat: chat})

	status, body := doRequest(t, app, http.MethodPost, "/chat", `{"message":"hi","image":"data:image/png;base64,AA"}`)
	if status != http.StatusOK || body["reply"] != "hello" {
		t.Fatalf("chat: %d %v", status, body)
	}
	if _, hasOK := body["ok"]; hasOK {
		t.Error("chat responses carry no ok envelope")
	}
	if chat.turns[0].Image == "" {
		t.Error("image not forwarded")
	}

	status, body = doRequest(t, app, http.MethodPost, "/chat", `{"message":"hi","image":"https://example.com/cat.png"}`)
	if status != http.StatusBadRequest || body["error"] == nil {
		t.Errorf("non data-url image: %d %v", status, body)
	}

	empty := &fakeChatter{err: fmt.Errorf("%w: Message or image is required", service.ErrValidation)}
	status, body = doRequest(t, newTestApp(testDeps{chat: empty}), http.MethodPost, "/chat", `{}`)
	if status != http.StatusBadRequest || body["error"] == nil {
		t.Errorf("empty chat: %d %v", status, body)
	}
}

func TestHistoryHandler(t *testing.T) {
	app := newTestApp(testDeps{})
	req := httptest.NewRequest(http.MethodGet, "/history/u1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("history: %d %s", resp.StatusCode, raw)
	}

	status, body := doRequest(t, newTestApp(testDeps{chat: &fakeChatter{err: errors.New("db down")}}), http.MethodGet, "/history/u1", "")
	if status != http.StatusInternalServerError || body["error"] != "failed to load chat history" {
		t.Errorf("history failure: %d %v", status, body)
	}
}

func TestHealthHandler(t *testing.T) {
	status, body := doRequest(t, newTestApp(testDeps{}), http.MethodGet, "/api/health", "")
	if status != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", status, body)
	}
	env, ok := body["environment"].(map[string]any)
	if !ok || env["node_env"] != "test" || env["has_tmdb_key"] != true || env["has_openai_key"] != false {
		t.Errorf("environment = %v", body["environment"])
	}
	if _, ok := body["uptime"].(float64); !ok {
		t.Errorf("uptime = %v", body["uptime"])
	}
}
