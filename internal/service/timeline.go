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

// TimelineService serves the running-history timeline. Reading is public;
// authoring is admin-only, enforced at the route level.
type TimelineService struct {
	timeline repository.TimelineRepository
	logger   *slog.Logger
}

func NewTimelineService(timeline repository.TimelineRepository, logger *slog.Logger) *TimelineService {
	return &TimelineService{timeline: timeline, logger: logger}
}

// List returns all events ordered by (position, year) with their references
// nested.
func (s *TimelineService) List(ctx context.Context) ([]model.TimelineEvent, error) {
	events, err := s.timeline.ListEvents(ctx)
	if err != nil {
		s.logger.Error("failed to list timeline events", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing timeline events: %w", err)
	}
	return events, nil
}

// CreateEvent adds a timeline entry.
func (s *TimelineService) CreateEvent(ctx context.Context, year, description string, position int) (*model.TimelineEvent, error) {
	year = strings.TrimSpace(year)
	if year == "" {
		return nil, apperror.ValidationFailed("year", "event year is required")
	}

	event := &model.TimelineEvent{
		Year:        year,
		Description: strings.TrimSpace(description),
		Position:    position,
		References:  []model.TimelineReference{},
	}
	if err := s.timeline.CreateEvent(ctx, event); err != nil {
		s.logger.Error("failed to create timeline event", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating timeline event: %w", err)
	}

	s.logger.Info("timeline event created",
		slog.String("id", event.ID),
		slog.String("year", event.Year),
	)
	return event, nil
}

// GetEvent returns one event with its references.
func (s *TimelineService) GetEvent(ctx context.Context, id string) (*model.TimelineEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "event ID is required")
	}
	return s.timeline.GetEvent(ctx, id)
}

// UpdateEvent replaces an event's fields.
func (s *TimelineService) UpdateEvent(ctx context.Context, id, year, description string, position int) (*model.TimelineEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "event ID is required")
	}

	event, err := s.timeline.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if year = strings.TrimSpace(year); year != "" {
		event.Year = year
	}
	event.Description = strings.TrimSpace(description)
	event.Position = position

	if err := s.timeline.UpdateEvent(ctx, event); err != nil {
		s.logger.Error("failed to update timeline event",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating timeline event: %w", err)
	}

	s.logger.Info("timeline event updated", slog.String("id", event.ID))
	return event, nil
}

// DeleteEvent removes an event and its references (ON DELETE CASCADE).
func (s *TimelineService) DeleteEvent(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "event ID is required")
	}
	if err := s.timeline.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.logger.Info("timeline event deleted", slog.String("id", id))
	return nil
}

// CreateReference attaches supporting material to an event.
func (s *TimelineService) CreateReference(ctx context.Context, eventID, title, description, question, answer string) (*model.TimelineReference, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "reference title is required")
	}
	if _, err := s.timeline.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	ref := &model.TimelineReference{
		EventID:     eventID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Question:    strings.TrimSpace(question),
		Answer:      strings.TrimSpace(answer),
	}
	if err := s.timeline.CreateReference(ctx, ref); err != nil {
		s.logger.Error("failed to create timeline reference",
			slog.String("eventID", eventID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating timeline reference: %w", err)
	}

	s.logger.Info("timeline reference created",
		slog.String("id", ref.ID),
		slog.String("eventID", eventID),
	)
	return ref, nil
}

// ListReferences returns the references attached to one event.
func (s *TimelineService) ListReferences(ctx context.Context, eventID string) ([]model.TimelineReference, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, apperror.ValidationFailed("event", "event ID is required")
	}
	if _, err := s.timeline.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	refs, err := s.timeline.ListReferences(ctx, eventID)
	if err != nil {
		s.logger.Error("failed to list timeline references",
			slog.String("eventID", eventID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing timeline references: %w", err)
	}
	return refs, nil
}

// UpdateReference replaces a reference's fields, keeping its event binding.
func (s *TimelineService) UpdateReference(ctx context.Context, id, title, description, question, answer string) (*model.TimelineReference, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "reference ID is required")
	}

	refs := &model.TimelineReference{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Question:    strings.TrimSpace(question),
		Answer:      strings.TrimSpace(answer),
	}
	if refs.Title == "" {
		return nil, apperror.ValidationFailed("title", "reference title is required")
	}

	if err := s.timeline.UpdateReference(ctx, refs); err != nil {
		return nil, err
	}

	s.logger.Info("timeline reference updated", slog.String("id", id))
	return refs, nil
}

// DeleteReference removes one reference.
func (s *TimelineService) DeleteReference(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "reference ID is required")
	}
	if err := s.timeline.DeleteReference(ctx, id); err != nil {
		return err
	}
	s.logger.Info("timeline reference deleted", slog.String("id", id))
	return nil
}
