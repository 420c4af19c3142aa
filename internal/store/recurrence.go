package store

import (
	"context"
	"time"

	"tododesk/internal/model"
)

// dateLayout is the calendar-string format used for all todo dates.
const dateLayout = "2006-01-02"

// CreateNextRecurrence computes and creates the next occurrence of a
// recurring todo. Returns nil without error when the todo is missing, has
// no recurrence rule, or the rule has passed its end date. The new todo is
// a sibling: it copies descriptive fields, resets completed, and gets a
// fresh identifier and dates; the completed instance is left untouched.
func (s *SQLiteStore) CreateNextRecurrence(ctx context.Context, todoID int64) (*model.TodoWithRelations, error) {
	todo, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil || todo.RecurrenceType == nil {
		return nil, nil
	}

	interval := todo.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	base := time.Now().UTC()
	if todo.EndDate != nil {
		if parsed, err := time.Parse(dateLayout, *todo.EndDate); err == nil {
			base = parsed
		}
	}

	var next time.Time
	switch *todo.RecurrenceType {
	case model.RecurrenceDaily:
		next = base.AddDate(0, 0, interval)
	case model.RecurrenceWeekly:
		next = base.AddDate(0, 0, 7*interval)
	case model.RecurrenceMonthly:
		next = base.AddDate(0, interval, 0)
	case model.RecurrenceYearly:
		next = base.AddDate(interval, 0, 0)
	default:
		return nil, nil
	}

	// The recurrence terminates once the computed date passes its end.
	if todo.RecurrenceEndDate != nil {
		if limit, err := time.Parse(dateLayout, *todo.RecurrenceEndDate); err == nil && next.After(limit) {
			return nil, nil
		}
	}

	nextEnd := next.Format(dateLayout)
	var nextStart *string
	if todo.StartDate != nil && todo.EndDate != nil {
		start, startErr := time.Parse(dateLayout, *todo.StartDate)
		end, endErr := time.Parse(dateLayout, *todo.EndDate)
		if startErr == nil && endErr == nil {
			// Preserve the original start-to-end span.
			shifted := next.Add(-end.Sub(start)).Format(dateLayout)
			nextStart = &shifted
		}
	}

	occurrence := todo.Todo
	occurrence.ID = 0
	occurrence.Completed = false
	occurrence.StartDate = nextStart
	occurrence.EndDate = &nextEnd
	occurrence.Deadline = nil
	occurrence.DeletedAt = nil

	return s.CreateTodo(ctx, occurrence)
}
