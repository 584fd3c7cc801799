package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/core/services"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SavePayment(ctx context.Context, payment domain.Payment, newStatus domain.InvoiceStatus) error {
	args := m.Called(ctx, payment, newStatus)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockInvoiceRepository) ListPayments(ctx context.Context, invoiceID string, studentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockInvoiceRepository) DeletePayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// --- Mock FeeRepository ---
type MockFeeRepository struct {
	mock.Mock
}

var _ portsrepo.FeeRepositoryFacade = (*MockFeeRepository)(nil)

func (m *MockFeeRepository) InsertFeeItem(ctx context.Context, item domain.FeeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFeeRepository) FindFeeItemByID(ctx context.Context, feeItemID string) (*domain.FeeItem, error) {
	args := m.Called(ctx, feeItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeItem), args.Error(1)
}

func (m *MockFeeRepository) FindFeeItemsByIDs(ctx context.Context, feeItemIDs []string) (map[string]domain.FeeItem, error) {
	args := m.Called(ctx, feeItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.FeeItem), args.Error(1)
}

func (m *MockFeeRepository) ListFeeItems(ctx context.Context) ([]domain.FeeItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeItem), args.Error(1)
}

func (m *MockFeeRepository) UpdateFeeItem(ctx context.Context, item domain.FeeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFeeRepository) DeleteFeeItem(ctx context.Context, feeItemID string) error {
	args := m.Called(ctx, feeItemID)
	return args.Error(0)
}

func (m *MockFeeRepository) SaveFeeStructure(ctx context.Context, structure domain.FeeStructure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockFeeRepository) FindFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, feeStructureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeRepository) ListFeeStructures(ctx context.Context, params dto.ListFeeStructuresParams) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeRepository) UpdateFeeStructure(ctx context.Context, structure domain.FeeStructure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockFeeRepository) DeleteFeeStructure(ctx context.Context, feeStructureID string) error {
	args := m.Called(ctx, feeStructureID)
	return args.Error(0)
}

// --- Mock StudentRepository ---
type MockStudentRepository struct {
	mock.Mock
}

var _ portsrepo.StudentRepositoryFacade = (*MockStudentRepository)(nil)

func (m *MockStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) DeleteStudent(ctx context.Context, studentID string) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockFeeRepo     *MockFeeRepository
	mockStudentRepo *MockStudentRepository
	service         portssvc.InvoiceSvcFacade
	student         domain.Student
	yearID          string
	termID          string
	userID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockFeeRepo = new(MockFeeRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockFeeRepo, suite.mockStudentRepo)

	suite.yearID = uuid.NewString()
	suite.termID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.student = domain.Student{
		StudentID:       uuid.NewString(),
		AdmissionNumber: "ADM-001",
		ClassLevel:      "FORM-1",
		IsActive:        true,
	}
}

func (suite *InvoiceServiceTestSuite) invoiceOnFile(total int64) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:      uuid.NewString(),
		StudentID:      suite.student.StudentID,
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
		TotalAmount:    decimal.NewFromInt(total),
		Status:         domain.Unpaid,
		DueDate:        time.Now().AddDate(0, 1, 0),
	}
}

// --- Invoice creation ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TotalDerivedFromLines() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		StudentID:      suite.student.StudentID,
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
		Lines: []dto.CreateInvoiceLineRequest{
			{FeeItemID: uuid.NewString(), Description: "Tuition", Amount: decimal.NewFromInt(300)},
			{FeeItemID: uuid.NewString(), Description: "Boarding", Amount: decimal.NewFromInt(200)},
		},
	}

	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(&suite.student, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	created, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.TotalAmount.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.Unpaid, created.Status)
	suite.Len(created.Lines, 2)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TotalMismatch() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		StudentID:      suite.student.StudentID,
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
		TotalAmount:    decimal.NewFromInt(450),
		Lines: []dto.CreateInvoiceLineRequest{
			{FeeItemID: uuid.NewString(), Amount: decimal.NewFromInt(500)},
		},
	}

	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(&suite.student, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTotalMismatch)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_StudentMissing() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		StudentID:      suite.student.StudentID,
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
		TotalAmount:    decimal.NewFromInt(100),
	}

	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Invoice generation ---

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_SkipsOptionalItems() {
	ctx := context.Background()
	tuitionID := uuid.NewString()
	lunchID := uuid.NewString()

	structures := []domain.FeeStructure{
		{FeeStructureID: uuid.NewString(), FeeItemID: tuitionID, ClassLevel: "FORM-1", AcademicYearID: suite.yearID, TermID: suite.termID, Amount: decimal.NewFromInt(400)},
		{FeeStructureID: uuid.NewString(), FeeItemID: lunchID, ClassLevel: "FORM-1", AcademicYearID: suite.yearID, TermID: suite.termID, Amount: decimal.NewFromInt(100)},
	}
	feeItems := map[string]domain.FeeItem{
		tuitionID: {FeeItemID: tuitionID, Name: "Tuition", Optional: false},
		lunchID:   {FeeItemID: lunchID, Name: "Lunch", Optional: true},
	}

	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(&suite.student, nil).Twice()
	suite.mockFeeRepo.On("ListFeeStructures", ctx, dto.ListFeeStructuresParams{
		ClassLevel:     "FORM-1",
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
	}).Return(structures, nil).Once()
	suite.mockFeeRepo.On("FindFeeItemsByIDs", ctx, []string{tuitionID, lunchID}).Return(feeItems, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	created, err := suite.service.GenerateInvoice(ctx, dto.GenerateInvoiceRequest{
		StudentID:      suite.student.StudentID,
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
	}, suite.userID)

	suite.Require().NoError(err)
	// Only the mandatory tuition line is billed.
	suite.Require().Len(created.Lines, 1)
	suite.Equal(tuitionID, created.Lines[0].FeeItemID)
	suite.True(created.TotalAmount.Equal(decimal.NewFromInt(400)))
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_NoMatchingStructures() {
	ctx := context.Background()
	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(&suite.student, nil).Once()
	suite.mockFeeRepo.On("ListFeeStructures", ctx, mock.Anything).Return([]domain.FeeStructure{}, nil).Once()

	_, err := suite.service.GenerateInvoice(ctx, dto.GenerateInvoiceRequest{
		StudentID:      suite.student.StudentID,
		AcademicYearID: suite.yearID,
		TermID:         suite.termID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoFeeStructures)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_TermChangePersisted() {
	ctx := context.Background()
	invoice := suite.invoiceOnFile(500)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.TermID == "term-2"
	})).Return(nil).Once()

	newTerm := "term-2"
	got, err := suite.service.UpdateInvoice(ctx, invoice.InvoiceID, dto.UpdateInvoiceRequest{TermID: &newTerm}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("term-2", got.TermID)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

// --- Payment reconciliation ---

func (suite *InvoiceServiceTestSuite) TestRecordPayment_StatusLadder() {
	ctx := context.Background()
	invoice := suite.invoiceOnFile(500)

	// First payment of 200 moves UNPAID -> PARTIAL.
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), domain.Partial).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, dto.RecordPaymentRequest{
		AmountPaid: decimal.NewFromInt(200),
		Method:     "CASH",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(payment.ReceiptNumber)
	suite.Contains(payment.ReceiptNumber, "RCT-")
	suite.Equal(invoice.StudentID, payment.StudentID)

	// Second payment of 300 settles it: PARTIAL -> PAID.
	existing := []domain.Payment{{PaymentID: uuid.NewString(), InvoiceID: invoice.InvoiceID, AmountPaid: decimal.NewFromInt(200)}}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), domain.Paid).Return(nil).Once()

	_, err = suite.service.RecordPayment(ctx, invoice.InvoiceID, dto.RecordPaymentRequest{
		AmountPaid: decimal.NewFromInt(300),
		Method:     "BANK",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	invoice := suite.invoiceOnFile(500)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()

	_, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, dto.RecordPaymentRequest{
		AmountPaid: decimal.NewFromInt(600),
		Method:     "CASH",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOverpayment)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_OverpaymentAllowed() {
	ctx := context.Background()
	invoice := suite.invoiceOnFile(500)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()
	// Overpaid invoices still land on PAID.
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), domain.Paid).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, dto.RecordPaymentRequest{
		AmountPaid:       decimal.NewFromInt(600),
		Method:           "CASH",
		AllowOverpayment: true,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.AmountPaid.Equal(decimal.NewFromInt(600)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	_, err := suite.service.RecordPayment(ctx, invoiceID, dto.RecordPaymentRequest{
		AmountPaid: decimal.Zero,
		Method:     "CASH",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_ReceiptConflictRetries() {
	ctx := context.Background()
	invoice := suite.invoiceOnFile(500)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()
	// First receipt collides, the regenerated one is accepted.
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), domain.Partial).Return(apperrors.ErrDuplicate).Once()
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), domain.Partial).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, dto.RecordPaymentRequest{
		AmountPaid: decimal.NewFromInt(100),
		Method:     "MOBILE",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(payment.ReceiptNumber)
	suite.mockInvoiceRepo.AssertNumberOfCalls(suite.T(), "SavePayment", 2)
}

// --- Run Test Suite ---
func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
