package validation

import (
	"errors"
	"testing"

	"cinemood/internal/models"
)

func TestStructFavorite(t *testing.T) {
	valid := models.FavoriteRequest{UserID: "u1", TMDBId: 550, Type: "movie", Title: "Fight Club", Action: "add"}

	tests := []struct {
		name      string
		mutate    func(r *models.FavoriteRequest)
		wantField string
	}{
		{"valid add", func(r *models.FavoriteRequest) {}, ""},
		{"remove without title", func(r *models.FavoriteRequest) { r.Action = "remove"; r.Title = "" }, ""},
		{"bad action", func(r *models.FavoriteRequest) { r.Action = "toggle" }, "action"},
		{"missing action", func(r *models.FavoriteRequest) { r.Action = "" }, "action"},
		{"add without title", func(r *models.FavoriteRequest) { r.Title = "" }, "title"},
		{"bad type", func(r *models.FavoriteRequest) { r.Type = "book" }, "type"},
		{"zero id", func(r *models.FavoriteRequest) { r.TMDBId = 0 }, "tmdb_id"},
		{"missing user", func(r *models.FavoriteRequest) { r.UserID = "" }, "user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := Struct(&req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Struct() = %v, want nil", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Struct() = %v, want *Error", err)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	fe := FieldError{Field: "action", Tag: "oneof", Param: "add remove"}
	if got, want := fe.Error(), "action must be one of: add, remove"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStructChatImage(t *testing.T) {
	if err := Struct(&models.ChatRequest{Image: "data:image/png;base64,AAAA"}); err != nil {
		t.Errorf("data URL rejected: %v", err)
	}
	if err := Struct(&models.ChatRequest{Image: "https://example.com/cat.png"}); err == nil {
		t.Error("plain URL accepted, want error")
	}
}
