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

const MaxStoryLength = 5000

// StoryService manages user-written stories and their reactions.
type StoryService struct {
	stories repository.StoryRepository
	logger  *slog.Logger
}

func NewStoryService(stories repository.StoryRepository, logger *slog.Logger) *StoryService {
	return &StoryService{stories: stories, logger: logger}
}

// Create posts a new story for the author.
func (s *StoryService) Create(ctx context.Context, authorID, content string) (*model.Story, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "story content is required")
	}
	if len(content) > MaxStoryLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("story must be %d characters or less", MaxStoryLength))
	}

	story := &model.Story{
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		s.logger.Error("failed to create story",
			slog.String("authorID", authorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating story: %w", err)
	}

	s.logger.Info("story created",
		slog.String("id", story.ID),
		slog.String("authorID", authorID),
	)
	return story, nil
}

// List returns all stories, newest first, with author username and reaction
// counts filled in.
func (s *StoryService) List(ctx context.Context) ([]model.Story, error) {
	stories, err := s.stories.ListStories(ctx)
	if err != nil {
		s.logger.Error("failed to list stories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	return stories, nil
}

// Search returns stories whose content contains the query, case-insensitive,
// newest first. An empty query matches nothing.
func (s *StoryService) Search(ctx context.Context, query string) ([]model.Story, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Story{}, nil
	}

	stories, err := s.stories.SearchStories(ctx, query)
	if err != nil {
		s.logger.Error("failed to search stories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching stories: %w", err)
	}
	return stories, nil
}

// React records that a user liked a story. A second reaction by the same
// user on the same story fails with apperror.ErrConflict.
func (s *StoryService) React(ctx context.Context, userID, storyID string) (*model.Reaction, error) {
	storyID = strings.TrimSpace(storyID)
	if storyID == "" {
		return nil, apperror.ValidationFailed("story", "story ID is required")
	}

	if _, err := s.stories.GetStoryByID(ctx, storyID); err != nil {
		return nil, err
	}

	reaction := &model.Reaction{
		UserID:  userID,
		StoryID: storyID,
	}
	if err := s.stories.CreateReaction(ctx, reaction); err != nil {
		return nil, err
	}

	s.logger.Info("story reaction added",
		slog.String("storyID", storyID),
		slog.String("userID", userID),
	)
	return reaction, nil
}

// Delete removes a story. Admin-only, enforced at the route level.
func (s *StoryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "story ID is required")
	}
	if err := s.stories.DeleteStory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("story deleted", slog.String("id", id))
	return nil
}
