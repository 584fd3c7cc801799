package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/core/services"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// --- Mock AcademicRepository ---
type MockAcademicRepository struct {
	mock.Mock
}

var _ portsrepo.AcademicRepositoryFacade = (*MockAcademicRepository)(nil)

func (m *MockAcademicRepository) InsertAcademicYear(ctx context.Context, year domain.AcademicYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockAcademicRepository) FindAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicYear), args.Error(1)
}

func (m *MockAcademicRepository) ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AcademicYear), args.Error(1)
}

func (m *MockAcademicRepository) UpdateAcademicYear(ctx context.Context, year domain.AcademicYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockAcademicRepository) DeleteAcademicYear(ctx context.Context, yearID string) error {
	args := m.Called(ctx, yearID)
	return args.Error(0)
}

func (m *MockAcademicRepository) SaveTerm(ctx context.Context, term domain.Term) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockAcademicRepository) FindTermByID(ctx context.Context, termID string) (*domain.Term, error) {
	args := m.Called(ctx, termID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

func (m *MockAcademicRepository) ListTerms(ctx context.Context, academicYearID string) ([]domain.Term, error) {
	args := m.Called(ctx, academicYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *MockAcademicRepository) UpdateTerm(ctx context.Context, term domain.Term) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockAcademicRepository) DeleteTerm(ctx context.Context, termID string) error {
	args := m.Called(ctx, termID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AcademicServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAcademicRepository
	service  portssvc.AcademicSvcFacade
	userID   string
}

func (suite *AcademicServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAcademicRepository)
	suite.service = services.NewAcademicService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func yearRequest(name string) dto.CreateAcademicYearRequest {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateAcademicYearRequest{
		Name:      name,
		StartDate: start,
		EndDate:   start.AddDate(0, 9, 0),
	}
}

// --- Test Cases ---

func (suite *AcademicServiceTestSuite) TestCreateAcademicYear_SlugFromName() {
	ctx := context.Background()

	var inserted domain.AcademicYear
	suite.mockRepo.On("InsertAcademicYear", ctx, mock.AnythingOfType("domain.AcademicYear")).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(domain.AcademicYear)
	}).Return(nil).Once()

	created, err := suite.service.CreateAcademicYear(ctx, yearRequest("2024/2025 Academic Year"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal("2024-2025-academic-year", created.Slug)
	suite.Equal(created.Slug, inserted.Slug)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AcademicServiceTestSuite) TestCreateAcademicYear_SlugCollisionRetries() {
	ctx := context.Background()

	// First two candidates are taken, the third wins.
	suite.mockRepo.On("InsertAcademicYear", ctx, mock.MatchedBy(func(y domain.AcademicYear) bool {
		return y.Slug == "2024-2025"
	})).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("InsertAcademicYear", ctx, mock.MatchedBy(func(y domain.AcademicYear) bool {
		return y.Slug == "2024-2025-1"
	})).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("InsertAcademicYear", ctx, mock.MatchedBy(func(y domain.AcademicYear) bool {
		return y.Slug == "2024-2025-2"
	})).Return(nil).Once()

	created, err := suite.service.CreateAcademicYear(ctx, yearRequest("2024/2025"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal("2024-2025-2", created.Slug)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AcademicServiceTestSuite) TestCreateAcademicYear_SlugRetriesExhausted() {
	ctx := context.Background()

	// Every candidate conflicts; the loop is bounded at ten attempts.
	suite.mockRepo.On("InsertAcademicYear", ctx, mock.AnythingOfType("domain.AcademicYear")).Return(apperrors.ErrDuplicate).Times(10)

	_, err := suite.service.CreateAcademicYear(ctx, yearRequest("2024/2025"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AcademicServiceTestSuite) TestCreateAcademicYear_NonDuplicateErrorStopsRetry() {
	ctx := context.Background()

	suite.mockRepo.On("InsertAcademicYear", ctx, mock.AnythingOfType("domain.AcademicYear")).Return(apperrors.ErrInternal).Once()

	_, err := suite.service.CreateAcademicYear(ctx, yearRequest("2024/2025"), suite.userID)

	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "InsertAcademicYear", 1)
}

func (suite *AcademicServiceTestSuite) TestCreateAcademicYear_EmptySlug() {
	ctx := context.Background()

	_, err := suite.service.CreateAcademicYear(ctx, yearRequest("!!!"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertAcademicYear", mock.Anything, mock.Anything)
}

func (suite *AcademicServiceTestSuite) TestCreateAcademicYear_DatesInverted() {
	ctx := context.Background()
	req := yearRequest("2024/2025")
	req.EndDate = req.StartDate.AddDate(0, -1, 0)

	_, err := suite.service.CreateAcademicYear(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AcademicServiceTestSuite) TestUpdateAcademicYear_SlugImmutable() {
	ctx := context.Background()
	yearID := uuid.NewString()
	existing := &domain.AcademicYear{
		AcademicYearID: yearID,
		Name:           "2024/2025",
		Slug:           "2024-2025",
		StartDate:      time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRepo.On("FindAcademicYearByID", ctx, yearID).Return(existing, nil).Once()

	var updated domain.AcademicYear
	suite.mockRepo.On("UpdateAcademicYear", ctx, mock.AnythingOfType("domain.AcademicYear")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(domain.AcademicYear)
	}).Return(nil).Once()

	newName := "Renamed Year"
	got, err := suite.service.UpdateAcademicYear(ctx, yearID, dto.UpdateAcademicYearRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Renamed Year", got.Name)
	// Renaming never changes the slug.
	suite.Equal("2024-2025", updated.Slug)
}

func (suite *AcademicServiceTestSuite) TestCreateTerm_YearMustExist() {
	ctx := context.Background()
	yearID := uuid.NewString()
	suite.mockRepo.On("FindAcademicYearByID", ctx, yearID).Return(nil, apperrors.ErrNotFound).Once()

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.CreateTerm(ctx, dto.CreateTermRequest{
		AcademicYearID: yearID,
		Name:           "Term 1",
		StartDate:      start,
		EndDate:        start.AddDate(0, 3, 0),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTerm", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAcademicService(t *testing.T) {
	suite.Run(t, new(AcademicServiceTestSuite))
}
