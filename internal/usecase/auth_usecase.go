package usecase

import (
	"context"
	"errors"
	"time"

	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/pkg/apperror"
	"go-recruitment-platform/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// invalidCredentialsMsg is shared by the "unknown username" and "wrong
// password" paths so the response does not allow username enumeration.
const invalidCredentialsMsg = "Invalid username or password"

type authUsecase struct {
	identityRepo     domain.IdentityRepository
	provisioner      domain.ProfileProvisioner
	secretCode       string
	provisionTimeout time.Duration
}

// NewAuthUsecase creates the auth usecase. secretCode is the configured
// recruiter registration code; provisionTimeout bounds the remote
// profile-provisioning call of the registration saga.
func NewAuthUsecase(
	identityRepo domain.IdentityRepository,
	provisioner domain.ProfileProvisioner,
	secretCode string,
	provisionTimeout time.Duration,
) domain.AuthUsecase {
	return &authUsecase{
		identityRepo:     identityRepo,
		provisioner:      provisioner,
		secretCode:       secretCode,
		provisionTimeout: provisionTimeout,
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (int64, error) {
	return u.register(ctx, in, domain.RoleApplicant)
}

func (u *authUsecase) RegisterRecruiter(ctx context.Context, in domain.RegisterInput, secretCode string) (int64, error) {
	// Pre-check before any persistence; nothing to compensate on failure
	if u.secretCode == "" || secretCode != u.secretCode {
		return 0, apperror.Forbidden("Invalid recruiter registration code")
	}
	return u.register(ctx, in, domain.RoleRecruiter)
}

// register runs the two-step registration saga. The identity insert comes
// first because it is the cheaper write to undo; profile provisioning has
// external side effects and runs second, so a failure there only requires
// deleting the local identity row.
func (u *authUsecase) register(ctx context.Context, in domain.RegisterInput, roleID int64) (int64, error) {
	// Fast-path duplicate check; the store's unique constraint remains the
	// authoritative guard against a concurrent registration
	exists, err := u.identityRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if exists {
		return 0, apperror.Conflict("Username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, apperror.Internal(err)
	}

	identity := &domain.Identity{
		Username:     in.Username,
		PasswordHash: string(hash),
		RoleID:       roleID,
	}
	if err := u.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return 0, apperror.Conflict("Username is already taken")
		}
		return 0, apperror.Internal(err)
	}

	provCtx, cancel := context.WithTimeout(ctx, u.provisionTimeout)
	defer cancel()

	if provErr := u.provisioner.CreateProfile(provCtx, identity.ID, in.Email, in.PersonalNumber); provErr != nil {
		// Compensating action: undo the identity insert before returning.
		// If the delete itself fails we surface the provisioning error and
		// leave an orphan identity for manual reconciliation.
		if delErr := u.identityRepo.Delete(ctx, identity.ID); delErr != nil {
			logger.Log.Error("registration compensation failed, orphan identity left behind",
				"identity_id", identity.ID,
				"username", in.Username,
				"provision_error", provErr,
				"compensation_error", delErr,
			)
		} else {
			logger.Log.Warn("registration rolled back after provisioning failure",
				"identity_id", identity.ID,
				"username", in.Username,
				"error", provErr,
			)
		}
		return 0, apperror.BadGateway("Registration failed: could not create profile in recruitment service", provErr)
	}

	return identity.ID, nil
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	identity, err := u.identityRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized(invalidCredentialsMsg)
		}
		return nil, apperror.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, apperror.Unauthorized(invalidCredentialsMsg)
	}

	return identity, nil
}
