package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

const MaxMemeTitleLength = 200

// MemeService manages the meme gallery. Modification is restricted to the
// uploading user or an admin; the caller's identity comes in as plain
// arguments so the service stays HTTP-agnostic.
type MemeService struct {
	memes  repository.MemeRepository
	logger *slog.Logger
}

func NewMemeService(memes repository.MemeRepository, logger *slog.Logger) *MemeService {
	return &MemeService{memes: memes, logger: logger}
}

// Create uploads a meme. The image itself lives in external storage; the API
// stores only its URL. An empty category defaults to "general".
func (s *MemeService) Create(ctx context.Context, userID, title, imageURL, category string) (*model.Meme, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "meme title is required")
	}
	if len(title) > MaxMemeTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("meme title must be %d characters or less", MaxMemeTitleLength))
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apperror.ValidationFailed("image", "image URL is required")
	}
	if category == "" {
		category = model.MemeCategoryGeneral
	}
	if !model.ValidMemeCategory(category) {
		return nil, apperror.ValidationFailed("category",
			fmt.Sprintf("category must be one of %s", strings.Join(model.MemeCategories, ", ")))
	}

	meme := &model.Meme{
		UserID:   userID,
		Title:    title,
		ImageURL: imageURL,
		Category: category,
	}
	if err := s.memes.CreateMeme(ctx, meme); err != nil {
		s.logger.Error("failed to create meme",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating meme: %w", err)
	}

	s.logger.Info("meme created",
		slog.String("id", meme.ID),
		slog.String("category", meme.Category),
	)
	return meme, nil
}

// GetByID returns one meme.
func (s *MemeService) GetByID(ctx context.Context, id string) (*model.Meme, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "meme ID is required")
	}
	return s.memes.GetMemeByID(ctx, id)
}

// List returns all memes, newest first.
func (s *MemeService) List(ctx context.Context) ([]model.Meme, error) {
	memes, err := s.memes.ListMemes(ctx)
	if err != nil {
		s.logger.Error("failed to list memes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing memes: %w", err)
	}
	return memes, nil
}

// Update edits a meme. Only the uploader or an admin may edit.
func (s *MemeService) Update(ctx context.Context, callerID string, callerIsAdmin bool, id, title, imageURL, category string) (*model.Meme, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "meme ID is required")
	}

	meme, err := s.memes.GetMemeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meme.UserID != callerID && !callerIsAdmin {
		return nil, apperror.Forbidden("You do not have permission to modify this meme.")
	}

	if title = strings.TrimSpace(title); title != "" {
		if len(title) > MaxMemeTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("meme title must be %d characters or less", MaxMemeTitleLength))
		}
		meme.Title = title
	}
	if imageURL = strings.TrimSpace(imageURL); imageURL != "" {
		meme.ImageURL = imageURL
	}
	if category != "" {
		if !model.ValidMemeCategory(category) {
			return nil, apperror.ValidationFailed("category",
				fmt.Sprintf("category must be one of %s", strings.Join(model.MemeCategories, ", ")))
		}
		meme.Category = category
	}

	if err := s.memes.UpdateMeme(ctx, meme); err != nil {
		s.logger.Error("failed to update meme",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating meme: %w", err)
	}

	s.logger.Info("meme updated", slog.String("id", meme.ID))
	return meme, nil
}

// Delete removes a meme. Only the uploader or an admin may delete.
func (s *MemeService) Delete(ctx context.Context, callerID string, callerIsAdmin bool, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "meme ID is required")
	}

	meme, err := s.memes.GetMemeByID(ctx, id)
	if err != nil {
		return err
	}
	if meme.UserID != callerID && !callerIsAdmin {
		return apperror.Forbidden("You do not have permission to modify this meme.")
	}

	if err := s.memes.DeleteMeme(ctx, id); err != nil {
		return err
	}
	s.logger.Info("meme deleted", slog.String("id", id))
	return nil
}
