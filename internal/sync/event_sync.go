package sync

import (
	"context"
	"strconv"
	"strings"

	"github.com/aydocorp/portal-api/internal/domain"
	"github.com/aydocorp/portal-api/internal/gsuite"
	apperrors "github.com/aydocorp/portal-api/pkg/util"
)

// SyncEvents reconciles the events document into the database. Title plus
// start time is the natural key; new events are owned by the oldest admin
// account.
func (s *Service) SyncEvents(ctx context.Context) (Result, error) {
	if s.deps.Docs == nil || s.cfg.EventsDocID == "" {
		return Result{}, apperrors.NewNotConfigured("events document not configured")
	}
	if err := s.acquire(DomainEvents); err != nil {
		return Result{}, err
	}
	defer s.release(DomainEvents)

	parsed, skippedBlocks, err := s.deps.Docs.FetchEvents(ctx, s.cfg.EventsDocID)
	if err != nil {
		return s.failure(ctx, DomainEvents, "failed to read events document: "+err.Error(), 0, 0, 0)
	}
	skipped := len(skippedBlocks)

	existing, err := s.deps.Events.List(ctx)
	if err != nil {
		return s.failure(ctx, DomainEvents, "failed to list events: "+err.Error(), 0, 0, skipped)
	}
	byKey := make(map[string]*domain.Event, len(existing))
	for i := range existing {
		byKey[eventKey(existing[i].Title, existing[i].StartTime.Unix())] = &existing[i]
	}

	admin, err := s.fallbackAdmin(ctx)
	if err != nil {
		return s.failure(ctx, DomainEvents, "failed to resolve admin account: "+err.Error(), 0, 0, skipped)
	}

	var created, updated int
	missingAdmin := false
	for _, record := range parsed {
		if match, ok := byKey[eventKey(record.Title, record.StartTime.Unix())]; ok {
			applyParsedEvent(match, record)
			if err := s.deps.Events.Update(ctx, match); err != nil {
				return s.failure(ctx, DomainEvents, "failed to update event "+match.Title+": "+err.Error(), created, updated, skipped)
			}
			updated++
			continue
		}

		if admin == nil {
			missingAdmin = true
			continue
		}
		event := &domain.Event{
			Title:       strings.TrimSpace(record.Title),
			StartTime:   record.StartTime,
			OrganizerID: admin.ID,
		}
		applyParsedEvent(event, record)
		if err := s.deps.Events.Create(ctx, event); err != nil {
			return s.failure(ctx, DomainEvents, "failed to create event "+event.Title+": "+err.Error(), created, updated, skipped)
		}
		created++
	}

	if missingAdmin {
		return s.failure(ctx, DomainEvents, "No admin user found for event creation", created, updated, skipped)
	}

	return s.finish(ctx, Result{
		Domain:  DomainEvents,
		Success: true,
		Created: created,
		Updated: updated,
		Skipped: skipped,
		Message: "event sync complete",
	}), nil
}

func eventKey(title string, startUnix int64) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strconv.FormatInt(startUnix, 10)
}

// applyParsedEvent overwrites the document-sourced whitelist. Title, start
// time and organizer are never touched.
func applyParsedEvent(event *domain.Event, record gsuite.ParsedEvent) {
	event.Description = record.Description
	event.Type = domain.ParseEventType(record.Type)
	event.Location = record.Location
	event.EndTime = record.EndTime
}
