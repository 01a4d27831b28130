package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/studydesk/pkg/auth"
	"github.com/harrisonrobin/studydesk/pkg/index"
)

// PrimaryCalendar selects the account's default calendar without a lookup.
const PrimaryCalendar = "primary"

// NewClient authenticates and resolves calendarName to its calendar id.
func NewClient(ctx context.Context, calendarName string, idx *index.EventIndex, loc *time.Location, logger *zap.Logger) (*CalendarClient, error) {
	srv, err := auth.GetCalendarService(ctx, logger)
	if err != nil {
		return nil, err
	}

	calendarID, err := findCalendar(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	logger.Debug("Calendar resolved", zap.String("name", calendarName), zap.String("id", calendarID))
	return NewCalendarClient(srv, calendarID, idx, loc, logger), nil
}

// findCalendar matches calendarName against the summaries in the user's
// calendar list, ignoring case. An exact match wins over a folded one.
func findCalendar(ctx context.Context, srv *calendar.Service, calendarName string) (string, error) {
	if calendarName == "" || strings.EqualFold(calendarName, PrimaryCalendar) {
		return PrimaryCalendar, nil
	}

	list, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}

	folded := ""
	for _, item := range list.Items {
		if item.Summary == calendarName {
			return item.Id, nil
		}
		if folded == "" && strings.EqualFold(item.Summary, calendarName) {
			folded = item.Id
		}
	}
	if folded == "" {
		return "", fmt.Errorf("calendar '%s' not found", calendarName)
	}
	return folded, nil
}
