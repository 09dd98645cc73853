package usecase

import (
	"context"
	"errors"
	"time"

	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// versionConflictMsg is the 409 message for both the explicit pre-check and
// the storage-level compare-and-increment failure.
const versionConflictMsg = "This application has been modified by another user. Please refresh and try again."

const dateLayout = "2006-01-02"

type applicationUsecase struct {
	profileRepo      domain.ProfileRepository
	competenceRepo   domain.CompetenceRepository
	availabilityRepo domain.AvailabilityRepository
	validate         *validator.Validate
}

// NewApplicationUsecase creates the recruitment application usecase.
func NewApplicationUsecase(
	profileRepo domain.ProfileRepository,
	competenceRepo domain.CompetenceRepository,
	availabilityRepo domain.AvailabilityRepository,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		profileRepo:      profileRepo,
		competenceRepo:   competenceRepo,
		availabilityRepo: availabilityRepo,
		validate:         validate,
	}
}

func (uc *applicationUsecase) CreateOrUpdateApplication(ctx context.Context, personID int64, in domain.ApplicationInput) error {
	return uc.saveApplication(ctx, personID, in, false)
}

func (uc *applicationUsecase) ReplaceApplication(ctx context.Context, personID int64, in domain.ApplicationInput) error {
	return uc.saveApplication(ctx, personID, in, true)
}

// saveApplication persists the profile and its child collections. All
// references and invariants are checked before the first child write, so a
// malformed batch never leaves partial rows behind and never destroys the
// existing collections on the replace path.
func (uc *applicationUsecase) saveApplication(ctx context.Context, personID int64, in domain.ApplicationInput, replace bool) error {
	if err := uc.validate.Struct(in); err != nil {
		return apperror.BadRequest(err.Error())
	}

	periods, err := uc.parseAvailabilities(personID, in.Availabilities)
	if err != nil {
		return err
	}

	assignments, err := uc.resolveCompetences(ctx, personID, in.Competences)
	if err != nil {
		return err
	}

	profile, err := uc.profileRepo.GetByID(ctx, personID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return apperror.Internal(err)
		}
		profile = &domain.Profile{PersonID: personID}
	}

	profile.Name = in.Name
	profile.Surname = in.Surname
	profile.Status = profile.StatusOrDefault()

	if err := uc.profileRepo.Save(ctx, profile); err != nil {
		return apperror.Internal(err)
	}

	if replace {
		// Replace-all: the incoming collections fully supersede the stored
		// ones; empty lists legitimately clear everything
		if err := uc.competenceRepo.DeleteByPersonID(ctx, personID); err != nil {
			return apperror.Internal(err)
		}
		if err := uc.availabilityRepo.DeleteByPersonID(ctx, personID); err != nil {
			return apperror.Internal(err)
		}
	}

	for i := range assignments {
		if err := uc.competenceRepo.CreateAssignment(ctx, &assignments[i]); err != nil {
			return apperror.Internal(err)
		}
	}
	for i := range periods {
		if err := uc.availabilityRepo.Create(ctx, &periods[i]); err != nil {
			return apperror.Internal(err)
		}
	}
	return nil
}

// resolveCompetences verifies every competence reference against the lookup
// table before anything is written.
func (uc *applicationUsecase) resolveCompetences(ctx context.Context, personID int64, inputs []domain.CompetenceInput) ([]domain.CompetenceAssignment, error) {
	assignments := make([]domain.CompetenceAssignment, 0, len(inputs))
	for _, in := range inputs {
		def, err := uc.competenceRepo.GetDefinition(ctx, in.CompetenceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.BadRequest("Competence not found")
			}
			return nil, apperror.Internal(err)
		}
		assignments = append(assignments, domain.CompetenceAssignment{
			PersonID:          personID,
			CompetenceID:      def.ID,
			CompetenceName:    def.Name,
			YearsOfExperience: in.YearsOfExperience,
		})
	}
	return assignments, nil
}

// parseAvailabilities parses the wire dates and enforces fromDate < toDate
// before anything is persisted.
func (uc *applicationUsecase) parseAvailabilities(personID int64, inputs []domain.AvailabilityInput) ([]domain.AvailabilityPeriod, error) {
	periods := make([]domain.AvailabilityPeriod, 0, len(inputs))
	for _, in := range inputs {
		from, err := time.Parse(dateLayout, in.FromDate)
		if err != nil {
			return nil, apperror.BadRequest("Invalid from_date, expected YYYY-MM-DD")
		}
		to, err := time.Parse(dateLayout, in.ToDate)
		if err != nil {
			return nil, apperror.BadRequest("Invalid to_date, expected YYYY-MM-DD")
		}
		if !from.Before(to) {
			return nil, apperror.BadRequest("Availability from_date must be before to_date")
		}
		periods = append(periods, domain.AvailabilityPeriod{
			PersonID: personID,
			FromDate: from,
			ToDate:   to,
		})
	}
	return periods, nil
}

func (uc *applicationUsecase) GetApplicationDetail(ctx context.Context, personID int64) (*domain.ApplicationDetail, error) {
	profile, err := uc.profileRepo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	competences, err := uc.competenceRepo.ListByPersonID(ctx, personID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	availabilities, err := uc.availabilityRepo.ListByPersonID(ctx, personID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ApplicationDetail{
		PersonID:       profile.PersonID,
		Name:           profile.Name,
		Surname:        profile.Surname,
		Email:          profile.Email,
		PersonalNumber: profile.PersonalNumber,
		Status:         profile.StatusOrDefault(),
		Version:        profile.Version,
		Competences:    competences,
		Availabilities: availabilities,
	}, nil
}

// ListApplicationSummaries skips shell profiles created by the registration
// saga that have no name and surname yet.
func (uc *applicationUsecase) ListApplicationSummaries(ctx context.Context) ([]domain.ApplicationSummary, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	summaries := make([]domain.ApplicationSummary, 0, len(profiles))
	for _, p := range profiles {
		if p.Name == "" || p.Surname == "" {
			continue
		}
		summaries = append(summaries, domain.ApplicationSummary{
			PersonID: p.PersonID,
			FullName: p.Name + " " + p.Surname,
			Status:   p.StatusOrDefault(),
		})
	}
	return summaries, nil
}

// UpdateStatus transitions the application status under optimistic
// concurrency: a cheap explicit version pre-check first, then the storage
// layer's atomic compare-and-increment closes the remaining race window.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, personID int64, status string, expectedVersion int64) error {
	if !domain.IsValidStatus(status) {
		return apperror.BadRequest("Invalid status. Must be one of: UNHANDLED, ACCEPTED, REJECTED")
	}

	profile, err := uc.profileRepo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}

	if profile.Version != expectedVersion {
		return apperror.Conflict(versionConflictMsg)
	}

	if err := uc.profileRepo.UpdateStatusVersioned(ctx, personID, status, expectedVersion); err != nil {
		switch {
		case errors.Is(err, domain.ErrVersionConflict):
			return apperror.Conflict(versionConflictMsg)
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("Application not found")
		default:
			return apperror.Internal(err)
		}
	}
	return nil
}

// CreateProfile is the saga callee invoked by the auth service.
func (uc *applicationUsecase) CreateProfile(ctx context.Context, personID int64, email, personalNumber string) error {
	profile := &domain.Profile{
		PersonID:       personID,
		Email:          email,
		PersonalNumber: personalNumber,
		Status:         domain.StatusUnhandled,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("Profile already exists for this person")
		}
		return apperror.Internal(err)
	}
	return nil
}

// UpdateOwnProfile applies a partial update of email and personal number.
// Unlike UpdateStatus there is no version check here; single-field
// self-edits are treated as lower risk.
func (uc *applicationUsecase) UpdateOwnProfile(ctx context.Context, personID int64, email, personalNumber string) error {
	profile, err := uc.profileRepo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}

	if email != "" && email != profile.Email {
		inUse, err := uc.profileRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return apperror.Internal(err)
		}
		if inUse {
			return apperror.BadRequest("Email is already in use")
		}
		profile.Email = email
	}
	if personalNumber != "" {
		profile.PersonalNumber = personalNumber
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *applicationUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := uc.profileRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (uc *applicationUsecase) ListCompetences(ctx context.Context) ([]domain.CompetenceAssignment, error) {
	competences, err := uc.competenceRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return competences, nil
}

func (uc *applicationUsecase) ListAvailabilities(ctx context.Context) ([]domain.AvailabilityPeriod, error) {
	availabilities, err := uc.availabilityRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return availabilities, nil
}
