package postgres

import (
	"context"
	"go-recruitment-platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type availabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) domain.AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Create(ctx context.Context, period *domain.AvailabilityPeriod) error {
	query := `INSERT INTO availability (person_id, from_date, to_date)
              VALUES ($1, $2, $3)
              RETURNING availability_id`

	return r.db.QueryRow(ctx, query,
		period.PersonID,
		period.FromDate,
		period.ToDate,
	).Scan(&period.ID)
}

func (r *availabilityRepo) ListByPersonID(ctx context.Context, personID int64) ([]domain.AvailabilityPeriod, error) {
	query := `SELECT availability_id, person_id, from_date, to_date
              FROM availability
              WHERE person_id = $1
              ORDER BY from_date`

	return r.scanPeriods(r.db.Query(ctx, query, personID))
}

func (r *availabilityRepo) ListAll(ctx context.Context) ([]domain.AvailabilityPeriod, error) {
	query := `SELECT availability_id, person_id, from_date, to_date
              FROM availability
              ORDER BY from_date`

	return r.scanPeriods(r.db.Query(ctx, query))
}

// DeleteByPersonID implements the bulk delete of the replace-all upsert.
func (r *availabilityRepo) DeleteByPersonID(ctx context.Context, personID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM availability WHERE person_id = $1`, personID)
	return err
}

func (r *availabilityRepo) scanPeriods(rows pgx.Rows, err error) ([]domain.AvailabilityPeriod, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []domain.AvailabilityPeriod
	for rows.Next() {
		var p domain.AvailabilityPeriod
		if err := rows.Scan(&p.ID, &p.PersonID, &p.FromDate, &p.ToDate); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
