package google

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/studydesk/pkg/index"
	"github.com/harrisonrobin/studydesk/pkg/model"
)

// CalendarClient is a Google Calendar API client.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	loc        *time.Location
	logger     *zap.Logger
}

// NewCalendarClient creates a new Google Calendar client.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex, loc *time.Location, logger *zap.Logger) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx, loc: loc, logger: logger}
}

// SyncEvent creates a new event or patches the existing copy.
func (c *CalendarClient) SyncEvent(ctx context.Context, e model.Event) (*calendar.Event, error) {
	event, err := ConvertEvent(e, c.loc)
	if err != nil {
		return nil, err
	}

	var existing *calendar.Event
	// 1. Try local index first
	if c.index != nil {
		if eventID := c.index.Get(e.ID); eventID != "" {
			existing, err = c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err != nil {
				c.logger.Debug("Indexed calendar event not found, searching", zap.String("event", e.ID), zap.Error(err))
				existing = nil
			}
		}
	}

	// 2. Fall back to a search on the extended property
	if existing == nil {
		existing, err = c.GetEventByPlannerID(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existing != nil {
		patch, err := EventNeedsUpdate(existing, event)
		if err != nil {
			return nil, fmt.Errorf("could not compare event with its calendar copy: %w", err)
		}
		if patch == nil {
			c.remember(e.ID, existing.Id)
			return existing, nil
		}
		updated, err := c.PatchEvent(ctx, existing.Id, patch)
		if err == nil {
			c.remember(e.ID, updated.Id)
		}
		return updated, err
	}

	created, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err == nil {
		c.remember(e.ID, created.Id)
	}
	return created, err
}

// Prune deletes calendar copies of events that no longer exist locally.
func (c *CalendarClient) Prune(ctx context.Context, live []model.Event) (int, error) {
	if c.index == nil {
		return 0, nil
	}
	ids := make(map[string]bool, len(live))
	for _, e := range live {
		ids[e.ID] = true
	}
	removed := 0
	for _, id := range c.index.Orphans(ids) {
		if err := c.DeleteEvent(ctx, c.index.Get(id)); err != nil {
			return removed, fmt.Errorf("failed to delete calendar copy of %s: %w", id, err)
		}
		c.index.Remove(id)
		removed++
	}
	return removed, nil
}

func (c *CalendarClient) remember(plannerID, calendarEventID string) {
	if c.index != nil {
		c.index.Set(plannerID, calendarEventID)
	}
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// GetEventByPlannerID searches for an event carrying the planner id in its
// private extended properties.
func (c *CalendarClient) GetEventByPlannerID(ctx context.Context, id string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", PropertyID, id)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
