package service

import (
	"context"
	"fmt"
	"log/slog"

	"cinemood/internal/models"
	"cinemood/internal/validation"
)

// LibraryService manages favorites and the viewed-title log.
type LibraryService struct {
	library LibraryStore
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(library LibraryStore) *LibraryService {
	return &LibraryService{library: library}
}

// UpdateFavorite adds or removes a favorite. The request is fully validated
// before the store is touched.
func (s *LibraryService) UpdateFavorite(ctx context.Context, req models.FavoriteRequest) (*models.LibraryResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err.Error())
	}

	switch req.Action {
	case models.FavoriteAdd:
		added, err := s.library.AddFavorite(ctx, models.Favorite{
			UserID:    req.UserID,
			TMDBId:    req.TMDBId,
			Type:      req.Type,
			Title:     req.Title,
			PosterURL: req.PosterURL,
		})
		if err != nil {
			return nil, fmt.Errorf("add favorite: %w", err)
		}
		if !added {
			return &models.LibraryResponse{OK: true, Success: true, Message: "Already in favorites"}, nil
		}
		slog.Info("favorite added", "user_id", req.UserID, "tmdb_id", req.TMDBId)
		return &models.LibraryResponse{OK: true, Success: true, Message: "Added to favorites"}, nil

	default:
		removed, err := s.library.RemoveFavorite(ctx, req.UserID, req.TMDBId)
		if err != nil {
			return nil, fmt.Errorf("remove favorite: %w", err)
		}
		if !removed {
			return &models.LibraryResponse{OK: true, Success: true, Message: "Not in favorites"}, nil
		}
		slog.Info("favorite removed", "user_id", req.UserID, "tmdb_id", req.TMDBId)
		return &models.LibraryResponse{OK: true, Success: true, Message: "Removed from favorites"}, nil
	}
}

// MarkViewed appends a title to the user's viewed log. Duplicates are kept.
func (s *LibraryService) MarkViewed(ctx context.Context, req models.ViewedRequest) (*models.LibraryResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err.Error())
	}

	err := s.library.InsertViewed(ctx, models.ViewedTitle{
		UserID:    req.UserID,
		TMDBId:    req.TMDBId,
		Type:      req.Type,
		Title:     req.Title,
		PosterURL: req.PosterURL,
	})
	if err != nil {
		return nil, fmt.Errorf("insert viewed title: %w", err)
	}
	return &models.LibraryResponse{OK: true, Success: true, Message: "Marked as viewed"}, nil
}
