package catalog

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusScheduled:
		return true
	}
	return false
}

// ResolveSubmit decides the publication status attached to a create
// submission. A schedule date strictly in the future yields scheduled with
// that exact date; anything else (absent, now, or past) yields active with
// no date.
func ResolveSubmit(schedule *time.Time, now time.Time) (Status, *time.Time) {
	if schedule != nil && schedule.After(now) {
		return StatusScheduled, schedule
	}
	return StatusActive, nil
}

// ResolveEditSubmit decides the status for an edit submission. The edit form
// carries no schedule picker; a product whose persisted status is scheduled
// with a still-future date stays scheduled with that date, everything else
// goes active.
func ResolveEditSubmit(current Status, schedule *time.Time, now time.Time) (Status, *time.Time) {
	if current == StatusScheduled && schedule != nil && schedule.After(now) {
		return StatusScheduled, schedule
	}
	return StatusActive, nil
}
