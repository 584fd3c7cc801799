package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/core/services"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, journalID, status, reversingJournalID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) UpdateJournalLine(ctx context.Context, line domain.JournalLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockJournalRepository) ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock AccountService (as used by JournalService and LedgerService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	feesAccount     domain.Account
	expenseAccount  domain.Account
	yearID          string
	termID          string
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc)

	suite.yearID = uuid.NewString()
	suite.termID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1010",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.feesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4010",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5010",
		AccountType: domain.ExpenseAccount,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) baseRequest(lines []dto.CreateJournalLineRequest) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:           time.Now(),
		Description:    "Term 1 fees received",
		PostedBy:       "bursar",
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
		Lines:          lines,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(100)},
	})

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		suite.feesAccount.AccountID: suite.feesAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.feesAccount.AccountID}).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.JournalID)
	suite.Equal(req.Description, created.Description)
	suite.Equal(domain.Posted, created.Status)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Len(created.Lines, 2)
	for _, line := range created.Lines {
		suite.Equal(created.JournalID, line.JournalID)
	}

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_MultiLineSuccess() {
	ctx := context.Background()
	// One debit split over two credits, still balanced.
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(150)},
		{AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(100)},
		{AccountID: suite.expenseAccount.AccountID, Credit: decimal.NewFromInt(50)},
	})

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.feesAccount.AccountID:    suite.feesAccount,
		suite.expenseAccount.AccountID: suite.expenseAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(created.Lines, 3)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(99)},
	})

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_LineWithBothSides() {
	ctx := context.Background()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
		{AccountID: suite.feesAccount.AccountID, Credit: decimal.Zero},
	})

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineDebitAndCredit)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_LineWithNeitherSide() {
	ctx := context.Background()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID},
		{AccountID: suite.feesAccount.AccountID},
	})

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineEmpty)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NegativeAmount() {
	ctx := context.Background()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(-100)},
		{AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(-100)},
	})

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineNegative)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NoLines() {
	ctx := context.Background()
	req := suite.baseRequest(nil)

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(created.Lines)
	// No account lookups happen for an entry without lines.
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AccountNotFound() {
	ctx := context.Background()
	unknownAccountID := uuid.NewString()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{AccountID: unknownAccountID, Credit: decimal.NewFromInt(100)},
	})

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		// unknownAccountID is missing
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AccountInactive() {
	ctx := context.Background()
	inactive := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1020",
		AccountType: domain.Asset,
		IsActive:    false,
	}
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{AccountID: inactive.AccountID, Credit: decimal.NewFromInt(100)},
	})

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SaveError() {
	ctx := context.Background()
	req := suite.baseRequest([]dto.CreateJournalLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(100)},
	})

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		suite.feesAccount.AccountID: suite.feesAccount,
	}
	repoErr := assert.AnError
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.Posted}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(10)},
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(lines, nil).Once()

	got, err := suite.service.GetJournalByID(ctx, journalID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetJournalByID(ctx, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_NotPosted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.Reversed}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()

	newDesc := "amended"
	_, err := suite.service.UpdateJournal(ctx, journalID, dto.UpdateJournalRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_ScopeChangePersisted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID:      journalID,
		Status:         domain.Posted,
		AcademicYearID: "year-old",
		TermID:         "term-old",
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("UpdateJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.AcademicYearID == "year-new" && j.TermID == "term-new"
	})).Return(nil).Once()

	newYear, newTerm := "year-new", "term-new"
	got, err := suite.service.UpdateJournal(ctx, journalID, dto.UpdateJournalRequest{
		AcademicYearID: &newYear,
		TermID:         &newTerm,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("year-new", got.AcademicYearID)
	suite.Equal("term-new", got.TermID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:      journalID,
		Description:    "Fees received",
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
		Status:         domain.Posted,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.feesAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(originalLines, nil).Once()

	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedLines = args.Get(2).([]domain.JournalLine)
	}).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatusAndLinks", ctx, journalID, domain.Reversed, mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	reversing, err := suite.service.ReverseJournal(ctx, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.NotEqual(journalID, reversing.JournalID)
	suite.Require().NotNil(reversing.OriginalJournalID)
	suite.Equal(journalID, *reversing.OriginalJournalID)

	// Debits and credits are mirrored line by line.
	suite.Require().Len(savedLines, 2)
	suite.True(savedLines[0].Debit.Equal(originalLines[0].Credit))
	suite.True(savedLines[0].Credit.Equal(originalLines[0].Debit))
	suite.True(savedLines[1].Debit.Equal(originalLines[1].Credit))
	suite.True(savedLines[1].Credit.Equal(originalLines[1].Debit))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{JournalID: journalID, Status: domain.Reversed}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_OfAReversal() {
	ctx := context.Background()
	journalID := uuid.NewString()
	origID := uuid.NewString()
	original := &domain.Journal{JournalID: journalID, Status: domain.Posted, OriginalJournalID: &origID}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalLine_RejectsBothSides() {
	ctx := context.Background()
	lineID := uuid.NewString()
	line := &domain.JournalLine{
		LineID:    lineID,
		JournalID: uuid.NewString(),
		AccountID: suite.cashAccount.AccountID,
		Debit:     decimal.NewFromInt(100),
	}
	suite.mockJournalRepo.On("FindLineByID", ctx, lineID).Return(line, nil).Once()

	credit := decimal.NewFromInt(25)
	_, err := suite.service.UpdateJournalLine(ctx, lineID, dto.UpdateJournalLineRequest{Credit: &credit}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineDebitAndCredit)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournalLine", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
