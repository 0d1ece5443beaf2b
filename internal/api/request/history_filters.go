package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// ParseHistoryFilters extracts and validates snapshot history filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - start_date/end_date: Must be valid date/datetime strings (YYYY-MM-DD or RFC3339)
//   - start_date must not be after end_date when both are given
//   - view: Must be "active" or "closed"
//   - sort_dir: Must be "asc" or "desc" (defaults to "asc")
func ParseHistoryFilters(startDateParam, endDateParam, viewParam, sortDirParam string) (*model.HistoryFilters, error) {
	filters := &model.HistoryFilters{}

	if startDateParam != "" {
		startTime, err := parseFilterTime(startDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date format: %w", err)
		}
		filters.StartDate = &startTime
	}

	if endDateParam != "" {
		endTime, err := parseFilterTime(endDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date format: %w", err)
		}
		filters.EndDate = &endTime
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, fmt.Errorf("invalid date range: start_date is after end_date")
	}

	if viewParam != "" {
		view := strings.ToLower(strings.TrimSpace(viewParam))
		if view != model.TradeStatusActive && view != model.TradeStatusClosed {
			return nil, fmt.Errorf("invalid view: must be 'active' or 'closed'")
		}
		filters.View = view
	}

	if sortDirParam != "" {
		sortDir := strings.ToLower(sortDirParam)
		if sortDir != "asc" && sortDir != "desc" {
			return nil, fmt.Errorf("invalid sort_dir: must be 'asc' or 'desc'")
		}
		filters.SortDir = sortDir
	} else {
		filters.SortDir = "asc" // Default
	}

	return filters, nil
}

// parseFilterTime parses date strings for filter parameters.
// Accepts YYYY-MM-DD, RFC3339, and RFC3339 with milliseconds formats.
func parseFilterTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}
