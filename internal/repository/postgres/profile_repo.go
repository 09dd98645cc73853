package postgres

import (
	"context"
	"errors"
	"go-recruitment-platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

// Create inserts the shell profile materialized during registration.
func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO person (person_id, email, pnr, status, version)
              VALUES ($1, $2, $3, $4, 0)`

	_, err := r.db.Exec(ctx, query,
		profile.PersonID,
		profile.Email,
		profile.PersonalNumber,
		profile.StatusOrDefault(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, personID int64) (*domain.Profile, error) {
	query := `SELECT person_id, COALESCE(name, ''), COALESCE(surname, ''),
                     COALESCE(email, ''), COALESCE(pnr, ''), COALESCE(status, ''),
                     COALESCE(version, 0)
              FROM person WHERE person_id = $1`

	var p domain.Profile
	err := r.db.QueryRow(ctx, query, personID).Scan(
		&p.PersonID, &p.Name, &p.Surname, &p.Email, &p.PersonalNumber, &p.Status, &p.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT person_id, COALESCE(name, ''), COALESCE(surname, ''),
                     COALESCE(email, ''), COALESCE(pnr, ''), COALESCE(status, ''),
                     COALESCE(version, 0)
              FROM person ORDER BY person_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.PersonID, &p.Name, &p.Surname, &p.Email, &p.PersonalNumber, &p.Status, &p.Version,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM person WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

// Save upserts the applicant-editable fields. The version bump on the update
// path keeps the optimistic-lock token moving for every persisted mutation.
func (r *profileRepo) Save(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO person (person_id, name, surname, status, version)
              VALUES ($1, $2, $3, $4, 0)
              ON CONFLICT (person_id) DO UPDATE
              SET name = EXCLUDED.name,
                  surname = EXCLUDED.surname,
                  status = EXCLUDED.status,
                  version = person.version + 1
              RETURNING version`

	return r.db.QueryRow(ctx, query,
		profile.PersonID,
		profile.Name,
		profile.Surname,
		profile.StatusOrDefault(),
	).Scan(&profile.Version)
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE person
              SET email = $2, pnr = $3, version = version + 1
              WHERE person_id = $1`

	result, err := r.db.Exec(ctx, query, profile.PersonID, profile.Email, profile.PersonalNumber)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusVersioned is the storage-level optimistic-lock check: the
// version guard in the WHERE clause makes the compare and the increment a
// single atomic statement, so a racing writer loses cleanly.
func (r *profileRepo) UpdateStatusVersioned(ctx context.Context, personID int64, status string, expectedVersion int64) error {
	query := `UPDATE person
              SET status = $2, version = version + 1
              WHERE person_id = $1 AND COALESCE(version, 0) = $3`

	result, err := r.db.Exec(ctx, query, personID, status, expectedVersion)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Distinguish a missing row from a stale version
		exists, err := r.exists(ctx, personID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *profileRepo) exists(ctx context.Context, personID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM person WHERE person_id = $1)`, personID).Scan(&exists)
	return exists, err
}
