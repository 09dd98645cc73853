package domain

import "context"

// Role discriminators stored on an identity.
const (
	RoleRecruiter int64 = 1
	RoleApplicant int64 = 2
)

// Identity is a login account owned by the auth service. It is created on
// registration and never updated afterwards, except by the compensating
// delete of the registration saga.
type Identity struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	RoleID       int64  `json:"role_id"`
}

type IdentityRepository interface {
	// Create persists the identity and fills in the store-assigned ID.
	// Returns ErrDuplicate when the username is already taken.
	Create(ctx context.Context, identity *Identity) error
	GetByUsername(ctx context.Context, username string) (*Identity, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileProvisioner asks the recruitment service to materialize a profile
// record for a newly created identity. It is the remote leg of the
// registration saga.
type ProfileProvisioner interface {
	CreateProfile(ctx context.Context, personID int64, email, personalNumber string) error
}

// RegisterInput carries the fields needed to register a new account.
type RegisterInput struct {
	Username       string
	Password       string
	Email          string
	PersonalNumber string
}

type AuthUsecase interface {
	// Register runs the two-step registration saga for an applicant and
	// returns the new identity id.
	Register(ctx context.Context, in RegisterInput) (int64, error)
	// RegisterRecruiter is the same saga with the recruiter role, guarded
	// by a secret registration code checked before any persistence.
	RegisterRecruiter(ctx context.Context, in RegisterInput, secretCode string) (int64, error)
	// Login verifies credentials and returns the matching identity.
	Login(ctx context.Context, username, password string) (*Identity, error)
}
