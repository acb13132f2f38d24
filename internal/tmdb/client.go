package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"cinemood/internal/metrics"
	"cinemood/internal/models"
)

// ErrNotFound is returned when TMDB answers 404 for a title.
var ErrNotFound = errors.New("title not found")

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client

	// randomPage picks the page used when DiscoverOptions.RandomPage is set.
	randomPage func() int
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		randomPage: func() int { return rand.IntN(5) + 1 },
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// ---- TMDB Response Types (internal, not exposed to consumers) ----

type listResponse struct {
	Page    int        `json:"page"`
	Results []tmdbItem `json:"results"`
}

// tmdbItem covers movie, TV and multi-type list entries.
type tmdbItem struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
}

type detailResponse struct {
	tmdbItem
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Runtime         int    `json:"runtime"`
	NumberOfSeasons int    `json:"number_of_seasons"`
	Tagline         string `json:"tagline"`
	Videos          struct {
		Results []video `json:"results"`
	} `json:"videos"`
}

type video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// record normalizes a list entry. kind is used when the entry carries no media_type.
func (it tmdbItem) record(kind string) models.TitleRecord {
	if it.MediaType != "" {
		kind = it.MediaType
	}
	r := models.TitleRecord{
		TMDBId:     it.ID,
		Type:       kind,
		Title:      it.Title,
		Overview:   it.Overview,
		Rating:     it.VoteAverage,
		Popularity: it.Popularity,
	}
	if r.Title == "" {
		r.Title = it.Name
	}
	date := it.ReleaseDate
	if date == "" {
		date = it.FirstAirDate
	}
	r.Year = yearOf(date)
	if it.PosterPath != "" {
		r.PosterURL = models.TMDBImageBaseW500 + it.PosterPath
	}
	if it.BackdropPath != "" {
		r.BackdropURL = models.TMDBImageBaseOriginal + it.BackdropPath
	}
	return r
}

func yearOf(date string) *int {
	if len(date) < 4 {
		return nil
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &y
}

// ---- Client Methods ----

// DiscoverOptions tunes DiscoverTitles.
type DiscoverOptions struct {
	MinRating  float64
	MaxResults int
	// RandomPage picks a page in [1,5] so identical filters don't keep
	// returning the same titles.
	RandomPage bool
}

// DiscoverTitles returns titles of the given kind matching all genreIDs.
// It never fails: transport and decode errors are logged and yield an empty list.
func (c *Client) DiscoverTitles(ctx context.Context, kind string, genreIDs []int, opts DiscoverOptions) []models.TitleRecord {
	if opts.MinRating == 0 {
		opts.MinRating = 6.0
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	page := 1
	if opts.RandomPage {
		page = c.randomPage()
	}
	minVotes := "100"
	if kind == models.KindTV {
		minVotes = "50"
	}

	q := url.Values{}
	q.Set("sort_by", "popularity.desc")
	q.Set("vote_average.gte", strconv.FormatFloat(opts.MinRating, 'f', -1, 64))
	q.Set("vote_count.gte", minVotes)
	q.Set("page", strconv.Itoa(page))
	if len(genreIDs) > 0 {
		ids := make([]string, len(genreIDs))
		for i, id := range genreIDs {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("with_genres", strings.Join(ids, ","))
	}

	items, err := c.list(ctx, "discover", "/discover/"+kind, q)
	if err != nil {
		slog.Error("TMDB discover failed", "kind", kind, "genres", genreIDs, "error", err)
		return []models.TitleRecord{}
	}
	return normalize(items, kind, opts.MaxResults)
}

// GetTitleDetails fetches one title with its trailer metadata.
func (c *Client) GetTitleDetails(ctx context.Context, kind string, tmdbID int) (*models.TitleDetail, error) {
	q := url.Values{}
	q.Set("append_to_response", "videos")

	slog.Debug("fetching TMDB title detail", "kind", kind, "tmdb_id", tmdbID)
	var d detailResponse
	if err := c.getJSON(ctx, "details", fmt.Sprintf("/%s/%d", kind, tmdbID), q, &d); err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, ErrNotFound
	}

	detail := &models.TitleDetail{
		TitleRecord: d.tmdbItem.record(kind),
		Genres:      make([]string, 0, len(d.Genres)),
		Tagline:     d.Tagline,
		TrailerKey:  trailerKey(d.Videos.Results),
	}
	detail.Type = kind
	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}
	switch kind {
	case models.KindMovie:
		detail.Runtime = &d.Runtime
	case models.KindTV:
		detail.Seasons = &d.NumberOfSeasons
	}
	return detail, nil
}

// trailerKey returns the key of the first YouTube trailer, or "".
func trailerKey(videos []video) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v.Key
		}
	}
	return ""
}

// GetTrending returns trending titles. mediaType is all, movie or tv; window is day or week.
func (c *Client) GetTrending(ctx context.Context, mediaType, window string, limit int) []models.TitleRecord {
	items, err := c.list(ctx, "trending", fmt.Sprintf("/trending/%s/%s", mediaType, window), nil)
	if err != nil {
		slog.Error("TMDB trending failed", "media_type", mediaType, "error", err)
		return []models.TitleRecord{}
	}
	// multi-type results may include people
	filtered := items[:0]
	for _, it := range items {
		if it.MediaType == "" || models.ValidKind(it.MediaType) {
			filtered = append(filtered, it)
		}
	}
	return normalize(filtered, mediaType, limit)
}

// GetPopular returns the currently popular titles of one kind.
func (c *Client) GetPopular(ctx context.Context, kind string, limit int) []models.TitleRecord {
	items, err := c.list(ctx, "popular", "/"+kind+"/popular", nil)
	if err != nil {
		slog.Error("TMDB popular failed", "kind", kind, "error", err)
		return []models.TitleRecord{}
	}
	return normalize(items, kind, limit)
}

// GetSimilar returns titles similar to the given one.
func (c *Client) GetSimilar(ctx context.Context, kind string, tmdbID, limit int) []models.TitleRecord {
	items, err := c.list(ctx, "similar", fmt.Sprintf("/%s/%d/similar", kind, tmdbID), nil)
	if err != nil {
		slog.Error("TMDB similar failed", "kind", kind, "tmdb_id", tmdbID, "error", err)
		return []models.TitleRecord{}
	}
	return normalize(items, kind, limit)
}

func normalize(items []tmdbItem, kind string, limit int) []models.TitleRecord {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]models.TitleRecord, 0, len(items))
	for _, it := range items {
		out = append(out, it.record(kind))
	}
	return out
}

func (c *Client) list(ctx context.Context, op, path string, q url.Values) ([]tmdbItem, error) {
	var result listResponse
	if err := c.getJSON(ctx, op, path, q, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dst any) error {
	start := time.Now()
	err := c.doGet(ctx, path, q, dst)
	metrics.UpstreamDuration.WithLabelValues("tmdb", op).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.UpstreamRequests.WithLabelValues("tmdb", op, result).Inc()
	return err
}

func (c *Client) doGet(ctx context.Context, path string, q url.Values, dst any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
