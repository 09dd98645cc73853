package domain

import "context"

// Competence is a definition from the competence lookup table.
type Competence struct {
	ID   int64  `json:"competence_id"`
	Name string `json:"name"`
}

// CompetenceAssignment links a profile to a competence definition with the
// applicant's years of experience. Its lifetime is bounded by the profile.
type CompetenceAssignment struct {
	ID                int64   `json:"id,omitempty"`
	PersonID          int64   `json:"person_id,omitempty"`
	CompetenceID      int64   `json:"competence_id"`
	CompetenceName    string  `json:"name,omitempty"`
	YearsOfExperience float64 `json:"years_of_experience"`
}

type CompetenceRepository interface {
	// GetDefinition resolves a competence reference. Returns ErrNotFound
	// for an unknown id.
	GetDefinition(ctx context.Context, competenceID int64) (*Competence, error)
	CreateAssignment(ctx context.Context, assignment *CompetenceAssignment) error
	ListByPersonID(ctx context.Context, personID int64) ([]CompetenceAssignment, error)
	ListAll(ctx context.Context) ([]CompetenceAssignment, error)
	DeleteByPersonID(ctx context.Context, personID int64) error
}
