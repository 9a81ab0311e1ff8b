package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

var _ repository.TimelineRepository = (*DB)(nil)

func (db *DB) CreateEvent(ctx context.Context, event *model.TimelineEvent) error {
	event.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO timeline_events (id, year, description, position) VALUES (?, ?, ?, ?)`,
		event.ID, event.Year, event.Description, event.Position,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating timeline event: %w", err)
	}
	if event.References == nil {
		event.References = []model.TimelineReference{}
	}
	return nil
}

func (db *DB) GetEvent(ctx context.Context, id string) (*model.TimelineEvent, error) {
	var e model.TimelineEvent
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, year, description, position FROM timeline_events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Year, &e.Description, &e.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("timeline event", id)
		}
		return nil, fmt.Errorf("sqlite: getting timeline event %s: %w", id, err)
	}

	refs, err := db.ListReferences(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.References = refs
	return &e, nil
}

// ListEvents returns the timeline in display order: position first, year as
// the tie-break, matching the original ordering.
func (db *DB) ListEvents(ctx context.Context) ([]model.TimelineEvent, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, year, description, position FROM timeline_events ORDER BY position, year`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing timeline events: %w", err)
	}
	defer rows.Close()

	events := []model.TimelineEvent{}
	for rows.Next() {
		var e model.TimelineEvent
		if err := rows.Scan(&e.ID, &e.Year, &e.Description, &e.Position); err != nil {
			return nil, fmt.Errorf("sqlite: scanning timeline event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating timeline events: %w", err)
	}

	for i := range events {
		refs, err := db.ListReferences(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].References = refs
	}
	return events, nil
}

func (db *DB) UpdateEvent(ctx context.Context, event *model.TimelineEvent) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE timeline_events SET year = ?, description = ?, position = ? WHERE id = ?`,
		event.Year, event.Description, event.Position, event.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating timeline event %s: %w", event.ID, err)
	}
	return checkAffected(result, "timeline event", event.ID)
}

func (db *DB) DeleteEvent(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM timeline_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting timeline event %s: %w", id, err)
	}
	return checkAffected(result, "timeline event", id)
}

func (db *DB) CreateReference(ctx context.Context, ref *model.TimelineReference) error {
	// The parent event must exist; foreign keys are on, so a bad event_id
	// fails here rather than leaving an orphan.
	ref.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO timeline_references (id, event_id, title, description, question, answer)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ref.ID, ref.EventID, ref.Title, ref.Description, ref.Question, ref.Answer,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating timeline reference: %w", err)
	}
	return nil
}

func (db *DB) ListReferences(ctx context.Context, eventID string) ([]model.TimelineReference, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, event_id, title, description, question, answer
		 FROM timeline_references WHERE event_id = ? ORDER BY id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing references for event %s: %w", eventID, err)
	}
	defer rows.Close()

	refs := []model.TimelineReference{}
	for rows.Next() {
		var r model.TimelineReference
		if err := rows.Scan(&r.ID, &r.EventID, &r.Title, &r.Description, &r.Question, &r.Answer); err != nil {
			return nil, fmt.Errorf("sqlite: scanning timeline reference: %w", err)
		}
		refs = append(refs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating timeline references: %w", err)
	}
	return refs, nil
}

func (db *DB) UpdateReference(ctx context.Context, ref *model.TimelineReference) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE timeline_references
		 SET title = ?, description = ?, question = ?, answer = ? WHERE id = ?`,
		ref.Title, ref.Description, ref.Question, ref.Answer, ref.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating timeline reference %s: %w", ref.ID, err)
	}
	return checkAffected(result, "timeline reference", ref.ID)
}

func (db *DB) DeleteReference(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM timeline_references WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting timeline reference %s: %w", id, err)
	}
	return checkAffected(result, "timeline reference", id)
}
