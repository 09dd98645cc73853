package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/internal/usecase"
	"go-recruitment-platform/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, personID int64) (*domain.Profile, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepo) Save(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) UpdateStatusVersioned(ctx context.Context, personID int64, status string, expectedVersion int64) error {
	return m.Called(ctx, personID, status, expectedVersion).Error(0)
}

type MockCompetenceRepo struct {
	mock.Mock
}

func (m *MockCompetenceRepo) GetDefinition(ctx context.Context, competenceID int64) (*domain.Competence, error) {
	args := m.Called(ctx, competenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Competence), args.Error(1)
}

func (m *MockCompetenceRepo) CreateAssignment(ctx context.Context, assignment *domain.CompetenceAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *MockCompetenceRepo) ListByPersonID(ctx context.Context, personID int64) ([]domain.CompetenceAssignment, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompetenceAssignment), args.Error(1)
}

func (m *MockCompetenceRepo) ListAll(ctx context.Context) ([]domain.CompetenceAssignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompetenceAssignment), args.Error(1)
}

func (m *MockCompetenceRepo) DeleteByPersonID(ctx context.Context, personID int64) error {
	return m.Called(ctx, personID).Error(0)
}

type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) Create(ctx context.Context, period *domain.AvailabilityPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *MockAvailabilityRepo) ListByPersonID(ctx context.Context, personID int64) ([]domain.AvailabilityPeriod, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityPeriod), args.Error(1)
}

func (m *MockAvailabilityRepo) ListAll(ctx context.Context) ([]domain.AvailabilityPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityPeriod), args.Error(1)
}

func (m *MockAvailabilityRepo) DeleteByPersonID(ctx context.Context, personID int64) error {
	return m.Called(ctx, personID).Error(0)
}

type applicationMocks struct {
	profile      *MockProfileRepo
	competence   *MockCompetenceRepo
	availability *MockAvailabilityRepo
}

func newApplicationUsecase() (domain.ApplicationUsecase, applicationMocks) {
	m := applicationMocks{
		profile:      new(MockProfileRepo),
		competence:   new(MockCompetenceRepo),
		availability: new(MockAvailabilityRepo),
	}
	uc := usecase.NewApplicationUsecase(m.profile, m.competence, m.availability, validator.New())
	return uc, m
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should update when the expected version matches", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Profile{PersonID: 5, Name: "Ada", Surname: "Lovelace", Version: 3}, nil)
		m.profile.On("UpdateStatusVersioned", mock.Anything, int64(5), domain.StatusAccepted, int64(3)).
			Return(nil)

		err := uc.UpdateStatus(ctx, 5, domain.StatusAccepted, 3)
		assert.NoError(t, err)
		m.profile.AssertExpectations(t)
	})

	t.Run("Should reject a stale version before touching storage", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Profile{PersonID: 5, Version: 4}, nil)

		err := uc.UpdateStatus(ctx, 5, domain.StatusRejected, 3)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
		m.profile.AssertNotCalled(t, "UpdateStatusVersioned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should map a storage-level version race to a conflict", func(t *testing.T) {
		// Pre-check passes but another writer commits in between
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Profile{PersonID: 5, Version: 3}, nil)
		m.profile.On("UpdateStatusVersioned", mock.Anything, int64(5), domain.StatusAccepted, int64(3)).
			Return(domain.ErrVersionConflict)

		err := uc.UpdateStatus(ctx, 5, domain.StatusAccepted, 3)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
	})

	t.Run("Should reject a status outside the closed set without any repo call", func(t *testing.T) {
		uc, m := newApplicationUsecase()

		err := uc.UpdateStatus(ctx, 5, "MAYBE", 3)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		m.profile.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for an unknown application", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		err := uc.UpdateStatus(ctx, 99, domain.StatusAccepted, 0)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})
}

func validApplicationInput() domain.ApplicationInput {
	return domain.ApplicationInput{
		Name:    "Ada",
		Surname: "Lovelace",
		Competences: []domain.CompetenceInput{
			{CompetenceID: 1, YearsOfExperience: 2.5},
		},
		Availabilities: []domain.AvailabilityInput{
			{FromDate: "2026-06-01", ToDate: "2026-08-31"},
		},
	}
}

func TestCreateOrUpdateApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should persist the profile and child collections", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.competence.On("GetDefinition", mock.Anything, int64(1)).
			Return(&domain.Competence{ID: 1, Name: "ticket sales"}, nil)
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Email: "ada@example.com", Version: 1}, nil)
		m.profile.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.PersonID == 7 && p.Name == "Ada" && p.Surname == "Lovelace" && p.Status == domain.StatusUnhandled
		})).Return(nil)
		m.competence.On("CreateAssignment", mock.Anything, mock.MatchedBy(func(a *domain.CompetenceAssignment) bool {
			return a.PersonID == 7 && a.CompetenceID == 1 && a.CompetenceName == "ticket sales"
		})).Return(nil)
		m.availability.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.AvailabilityPeriod) bool {
			return p.PersonID == 7 && p.FromDate.Before(p.ToDate)
		})).Return(nil)

		err := uc.CreateOrUpdateApplication(ctx, 7, validApplicationInput())
		assert.NoError(t, err)
		m.competence.AssertExpectations(t)
		m.availability.AssertExpectations(t)
	})

	t.Run("Should start from a fresh profile when none exists", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(8)).Return(nil, domain.ErrNotFound)
		m.profile.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.PersonID == 8 && p.Name == "Ada"
		})).Return(nil)

		in := validApplicationInput()
		in.Competences = nil
		in.Availabilities = nil

		err := uc.CreateOrUpdateApplication(ctx, 8, in)
		assert.NoError(t, err)
	})

	t.Run("Should reject an unknown competence before any write", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.competence.On("GetDefinition", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

		err := uc.CreateOrUpdateApplication(ctx, 7, validApplicationInput())
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Competence not found")
		m.profile.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		m.competence.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an inverted availability range before any write", func(t *testing.T) {
		uc, m := newApplicationUsecase()

		in := validApplicationInput()
		in.Availabilities = []domain.AvailabilityInput{
			{FromDate: "2026-08-31", ToDate: "2026-06-01"},
		}

		err := uc.CreateOrUpdateApplication(ctx, 7, in)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		m.profile.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an equal from and to date", func(t *testing.T) {
		uc, _ := newApplicationUsecase()

		in := validApplicationInput()
		in.Availabilities = []domain.AvailabilityInput{
			{FromDate: "2026-06-01", ToDate: "2026-06-01"},
		}

		err := uc.CreateOrUpdateApplication(ctx, 7, in)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should reject a missing name via struct validation", func(t *testing.T) {
		uc, m := newApplicationUsecase()

		in := validApplicationInput()
		in.Name = ""

		err := uc.CreateOrUpdateApplication(ctx, 7, in)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		m.profile.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestReplaceApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should clear both collections before re-inserting", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.competence.On("GetDefinition", mock.Anything, int64(1)).
			Return(&domain.Competence{ID: 1, Name: "ticket sales"}, nil)
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Version: 2}, nil)
		m.profile.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.competence.On("DeleteByPersonID", mock.Anything, int64(7)).Return(nil)
		m.availability.On("DeleteByPersonID", mock.Anything, int64(7)).Return(nil)
		m.competence.On("CreateAssignment", mock.Anything, mock.Anything).Return(nil)
		m.availability.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := uc.ReplaceApplication(ctx, 7, validApplicationInput())
		assert.NoError(t, err)
		m.competence.AssertExpectations(t)
		m.availability.AssertExpectations(t)
	})

	t.Run("Should treat empty lists as clearing everything", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Version: 2}, nil)
		m.profile.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.competence.On("DeleteByPersonID", mock.Anything, int64(7)).Return(nil)
		m.availability.On("DeleteByPersonID", mock.Anything, int64(7)).Return(nil)

		in := validApplicationInput()
		in.Competences = []domain.CompetenceInput{}
		in.Availabilities = []domain.AvailabilityInput{}

		err := uc.ReplaceApplication(ctx, 7, in)
		assert.NoError(t, err)
		m.competence.AssertCalled(t, "DeleteByPersonID", mock.Anything, int64(7))
		m.availability.AssertCalled(t, "DeleteByPersonID", mock.Anything, int64(7))
		m.competence.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything)
		m.availability.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should keep existing collections when the batch is malformed", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.competence.On("GetDefinition", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

		err := uc.ReplaceApplication(ctx, 7, validApplicationInput())
		assert.Error(t, err)
		m.competence.AssertNotCalled(t, "DeleteByPersonID", mock.Anything, mock.Anything)
		m.availability.AssertNotCalled(t, "DeleteByPersonID", mock.Anything, mock.Anything)
	})
}

func TestListApplicationSummaries(t *testing.T) {
	ctx := context.Background()

	t.Run("Should project names and default missing statuses", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("List", mock.Anything).Return([]domain.Profile{
			{PersonID: 1, Name: "Ada", Surname: "Lovelace", Status: domain.StatusAccepted},
			{PersonID: 2, Name: "Alan", Surname: "Turing", Status: ""},
			// Shell profile from registration, not yet an application
			{PersonID: 3, Email: "shell@example.com"},
		}, nil)

		summaries, err := uc.ListApplicationSummaries(ctx)
		assert.NoError(t, err)
		assert.Len(t, summaries, 2)
		assert.Equal(t, "Ada Lovelace", summaries[0].FullName)
		assert.Equal(t, domain.StatusAccepted, summaries[0].Status)
		assert.Equal(t, domain.StatusUnhandled, summaries[1].Status)
	})
}

func TestGetApplicationDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("Should join the profile with its collections", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Name: "Ada", Surname: "Lovelace", Version: 4}, nil)
		m.competence.On("ListByPersonID", mock.Anything, int64(7)).
			Return([]domain.CompetenceAssignment{{CompetenceID: 1, CompetenceName: "ticket sales"}}, nil)
		m.availability.On("ListByPersonID", mock.Anything, int64(7)).
			Return([]domain.AvailabilityPeriod{}, nil)

		detail, err := uc.GetApplicationDetail(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), detail.Version)
		assert.Equal(t, domain.StatusUnhandled, detail.Status)
		assert.Len(t, detail.Competences, 1)
	})

	t.Run("Should return not found for an unknown person", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetApplicationDetail(ctx, 99)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})
}

func TestUpdateOwnProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should update email after the uniqueness check", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Email: "old@example.com"}, nil)
		m.profile.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
		m.profile.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.Email == "new@example.com"
		})).Return(nil)

		err := uc.UpdateOwnProfile(ctx, 7, "new@example.com", "")
		assert.NoError(t, err)
	})

	t.Run("Should reject an email already in use", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Email: "old@example.com"}, nil)
		m.profile.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		err := uc.UpdateOwnProfile(ctx, 7, "taken@example.com", "")
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Email is already in use")
		m.profile.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should skip the uniqueness check when the email is unchanged", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Profile{PersonID: 7, Email: "same@example.com"}, nil)
		m.profile.On("Update", mock.Anything, mock.Anything).Return(nil)

		err := uc.UpdateOwnProfile(ctx, 7, "same@example.com", "19900101-1234")
		assert.NoError(t, err)
		m.profile.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for an unknown person", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		err := uc.UpdateOwnProfile(ctx, 99, "x@example.com", "")
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})
}

func TestCreateProfileForNewIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("Should insert a shell profile with the default status", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.PersonID == 42 && p.Email == "jdoe@example.com" && p.Status == domain.StatusUnhandled
		})).Return(nil)

		err := uc.CreateProfile(ctx, 42, "jdoe@example.com", "19900101-1234")
		assert.NoError(t, err)
	})

	t.Run("Should conflict on a duplicate person id", func(t *testing.T) {
		uc, m := newApplicationUsecase()
		m.profile.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		err := uc.CreateProfile(ctx, 42, "jdoe@example.com", "19900101-1234")
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
	})
}
