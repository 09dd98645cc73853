package postgres

import (
	"context"
	"errors"
	"go-recruitment-platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type competenceRepo struct {
	db *pgxpool.Pool
}

func NewCompetenceRepository(db *pgxpool.Pool) domain.CompetenceRepository {
	return &competenceRepo{db: db}
}

func (r *competenceRepo) GetDefinition(ctx context.Context, competenceID int64) (*domain.Competence, error) {
	query := `SELECT competence_id, name FROM competence WHERE competence_id = $1`

	var c domain.Competence
	err := r.db.QueryRow(ctx, query, competenceID).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *competenceRepo) CreateAssignment(ctx context.Context, assignment *domain.CompetenceAssignment) error {
	query := `INSERT INTO competence_profile (person_id, competence_id, years_of_experience)
              VALUES ($1, $2, $3)
              RETURNING competence_profile_id`

	return r.db.QueryRow(ctx, query,
		assignment.PersonID,
		assignment.CompetenceID,
		assignment.YearsOfExperience,
	).Scan(&assignment.ID)
}

func (r *competenceRepo) ListByPersonID(ctx context.Context, personID int64) ([]domain.CompetenceAssignment, error) {
	query := `SELECT cp.competence_profile_id, cp.person_id, cp.competence_id,
                     c.name, cp.years_of_experience
              FROM competence_profile cp
              JOIN competence c ON cp.competence_id = c.competence_id
              WHERE cp.person_id = $1
              ORDER BY cp.competence_profile_id`

	return r.scanAssignments(r.db.Query(ctx, query, personID))
}

func (r *competenceRepo) ListAll(ctx context.Context) ([]domain.CompetenceAssignment, error) {
	query := `SELECT cp.competence_profile_id, cp.person_id, cp.competence_id,
                     c.name, cp.years_of_experience
              FROM competence_profile cp
              JOIN competence c ON cp.competence_id = c.competence_id
              ORDER BY cp.competence_profile_id`

	return r.scanAssignments(r.db.Query(ctx, query))
}

// DeleteByPersonID implements the bulk delete of the replace-all upsert.
func (r *competenceRepo) DeleteByPersonID(ctx context.Context, personID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM competence_profile WHERE person_id = $1`, personID)
	return err
}

func (r *competenceRepo) scanAssignments(rows pgx.Rows, err error) ([]domain.CompetenceAssignment, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.CompetenceAssignment
	for rows.Next() {
		var a domain.CompetenceAssignment
		if err := rows.Scan(
			&a.ID, &a.PersonID, &a.CompetenceID, &a.CompetenceName, &a.YearsOfExperience,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
