package domain

import "context"

// Application status values. Anything else is a client error.
const (
	StatusUnhandled = "UNHANDLED"
	StatusAccepted  = "ACCEPTED"
	StatusRejected  = "REJECTED"
)

// IsValidStatus reports whether s is a member of the closed status set.
func IsValidStatus(s string) bool {
	return s == StatusUnhandled || s == StatusAccepted || s == StatusRejected
}

// Profile is the recruitment-side record of an applicant. PersonID equals
// the Identity.ID of the owning account. Version is the optimistic-lock
// token; it increments exactly once per persisted mutation.
type Profile struct {
	PersonID       int64  `json:"person_id"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Email          string `json:"email"`
	PersonalNumber string `json:"pnr"`
	Status         string `json:"status"`
	Version        int64  `json:"version"`
}

// StatusOrDefault returns the stored status, defaulting unset to UNHANDLED.
func (p *Profile) StatusOrDefault() string {
	if p.Status == "" {
		return StatusUnhandled
	}
	return p.Status
}

// ApplicationSummary is the list-view projection of a profile.
type ApplicationSummary struct {
	PersonID int64  `json:"person_id"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

// ApplicationDetail is a profile joined with its child collections.
type ApplicationDetail struct {
	PersonID       int64                  `json:"person_id"`
	Name           string                 `json:"name"`
	Surname        string                 `json:"surname"`
	Email          string                 `json:"email"`
	PersonalNumber string                 `json:"pnr"`
	Status         string                 `json:"status"`
	Version        int64                  `json:"version"`
	Competences    []CompetenceAssignment `json:"competences"`
	Availabilities []AvailabilityPeriod   `json:"availabilities"`
}

type ProfileRepository interface {
	// Create inserts a fresh profile row with version 0. Returns
	// ErrDuplicate when a row for the person already exists.
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, personID int64) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save upserts name, surname and status, bumping the version on update.
	Save(ctx context.Context, profile *Profile) error
	// Update persists email and personal number, bumping the version.
	Update(ctx context.Context, profile *Profile) error
	// UpdateStatusVersioned performs an atomic compare-and-increment on the
	// version column. Returns ErrVersionConflict when the row's version no
	// longer matches expectedVersion, ErrNotFound when the row is absent.
	UpdateStatusVersioned(ctx context.Context, personID int64, status string, expectedVersion int64) error
}

// CompetenceInput is one competence entry of an incoming application.
type CompetenceInput struct {
	CompetenceID      int64   `json:"competence_id" validate:"required"`
	YearsOfExperience float64 `json:"years_of_experience" validate:"gte=0"`
}

// AvailabilityInput is one availability period of an incoming application.
type AvailabilityInput struct {
	FromDate string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"required,datetime=2006-01-02"`
}

// ApplicationInput is the payload for creating or replacing an application.
type ApplicationInput struct {
	Name           string              `json:"name" validate:"required"`
	Surname        string              `json:"surname" validate:"required"`
	Competences    []CompetenceInput   `json:"competences" validate:"dive"`
	Availabilities []AvailabilityInput `json:"availabilities" validate:"dive"`
}

type ApplicationUsecase interface {
	// CreateOrUpdateApplication appends the given collections to the
	// applicant's existing ones.
	CreateOrUpdateApplication(ctx context.Context, personID int64, in ApplicationInput) error
	// ReplaceApplication deletes both child collections first; the incoming
	// lists fully supersede the stored ones.
	ReplaceApplication(ctx context.Context, personID int64, in ApplicationInput) error
	GetApplicationDetail(ctx context.Context, personID int64) (*ApplicationDetail, error)
	ListApplicationSummaries(ctx context.Context) ([]ApplicationSummary, error)
	// UpdateStatus transitions the application status under optimistic
	// concurrency control.
	UpdateStatus(ctx context.Context, personID int64, status string, expectedVersion int64) error
	// CreateProfile is the saga callee: it materializes a shell profile for
	// a newly registered identity.
	CreateProfile(ctx context.Context, personID int64, email, personalNumber string) error
	// UpdateOwnProfile applies a partial email/pnr update for the caller.
	UpdateOwnProfile(ctx context.Context, personID int64, email, personalNumber string) error
	EmailExists(ctx context.Context, email string) (bool, error)
	ListCompetences(ctx context.Context) ([]CompetenceAssignment, error)
	ListAvailabilities(ctx context.Context) ([]AvailabilityPeriod, error)
}
