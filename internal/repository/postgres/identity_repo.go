package postgres

import (
	"context"
	"errors"
	"go-recruitment-platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type identityRepo struct {
	db *pgxpool.Pool
}

func NewIdentityRepository(db *pgxpool.Pool) domain.IdentityRepository {
	return &identityRepo{db: db}
}

func (r *identityRepo) Create(ctx context.Context, identity *domain.Identity) error {
	query := `INSERT INTO person (username, password, role_id)
              VALUES ($1, $2, $3)
              RETURNING person_id`

	err := r.db.QueryRow(ctx, query,
		identity.Username,
		identity.PasswordHash,
		identity.RoleID,
	).Scan(&identity.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *identityRepo) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	query := `SELECT person_id, username, password, role_id FROM person WHERE username = $1`

	var identity domain.Identity
	err := r.db.QueryRow(ctx, query, username).Scan(
		&identity.ID, &identity.Username, &identity.PasswordHash, &identity.RoleID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM person WHERE username = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	return exists, err
}

// Delete is the compensating action of the registration saga.
func (r *identityRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM person WHERE person_id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
