package domain

import (
	"context"
	"time"
)

// AvailabilityPeriod is a date range an applicant is available to work.
// Invariant: FromDate strictly precedes ToDate.
type AvailabilityPeriod struct {
	ID       int64     `json:"id,omitempty"`
	PersonID int64     `json:"person_id,omitempty"`
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
}

type AvailabilityRepository interface {
	Create(ctx context.Context, period *AvailabilityPeriod) error
	ListByPersonID(ctx context.Context, personID int64) ([]AvailabilityPeriod, error)
	ListAll(ctx context.Context) ([]AvailabilityPeriod, error)
	DeleteByPersonID(ctx context.Context, personID int64) error
}
